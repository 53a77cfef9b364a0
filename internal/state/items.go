package state

import "dormshare-cli/internal/model"

// ItemsState is the listings slice. A single Loading flag is shared by all
// items operations, so a create in flight and a fetch in flight look the
// same to the UI.
type ItemsState struct {
	Items    []model.Item
	Selected *model.Item
	Loading  bool
	Err      string

	fetchGen int
}

// BeginFetch marks a list fetch as in flight and returns its generation.
// Only the settlement carrying the newest generation is applied; anything
// older is a superseded request whose result must not overwrite state
// ("latest search wins").
func (s *ItemsState) BeginFetch() int {
	s.Loading = true
	s.Err = ""
	s.fetchGen++
	return s.fetchGen
}

// ApplyFetched replaces the whole sequence with the server's result for the
// given generation. Stale generations are ignored and reported as such.
func (s *ItemsState) ApplyFetched(gen int, items []model.Item) bool {
	if gen != s.fetchGen {
		return false
	}
	s.Loading = false
	s.Items = items
	return true
}

// RejectFetch records a failed fetch unless a newer fetch has started.
func (s *ItemsState) RejectFetch(gen int, msg string) bool {
	if gen != s.fetchGen {
		return false
	}
	s.Loading = false
	s.Err = msg
	return true
}

// Begin marks a create/update/delete call as in flight.
func (s *ItemsState) Begin() {
	s.Loading = true
	s.Err = ""
}

// ApplyCreated prepends the server-echoed item: most-recent-first for the
// creator's own view.
func (s *ItemsState) ApplyCreated(it model.Item) {
	s.Loading = false
	s.Items = append([]model.Item{it}, s.Items...)
}

// ApplyUpdated replaces the matching element in place, preserving its
// position. An unknown id is a silent no-op.
func (s *ItemsState) ApplyUpdated(it model.Item) {
	s.Loading = false
	for i := range s.Items {
		if s.Items[i].ID == it.ID {
			s.Items[i] = it
			break
		}
	}
	if s.Selected != nil && s.Selected.ID == it.ID {
		s.Selected = &it
	}
}

// ApplyDeleted removes the matching element; deleting an absent id leaves
// the sequence unchanged.
func (s *ItemsState) ApplyDeleted(id string) {
	s.Loading = false
	kept := s.Items[:0]
	for _, it := range s.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	if s.Selected != nil && s.Selected.ID == id {
		s.Selected = nil
	}
}

// Reject records a failed create/update/delete. Data is left unchanged.
func (s *ItemsState) Reject(msg string) {
	s.Loading = false
	s.Err = msg
}

func (s *ItemsState) Select(it *model.Item) {
	s.Selected = it
}

func (s *ItemsState) ClearError() {
	s.Err = ""
}
