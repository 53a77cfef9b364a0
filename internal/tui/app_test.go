package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/cache"
	"dormshare-cli/internal/model"
	"dormshare-cli/internal/session"
)

func newTestApp(t *testing.T) appModel {
	t.Helper()
	return newAppModel(Options{
		Client:   api.New("http://127.0.0.1:0"),
		Sessions: session.Store{Dir: t.TempDir()},
		Cache:    cache.Store{Dir: t.TempDir()},
	})
}

// settleInitialFetch clears the fetch newAppModel kicks off so tests start
// from a quiet state.
func settleInitialFetch(t *testing.T, m appModel, items []model.Item) appModel {
	t.Helper()
	next, _ := m.Update(itemsFetchedMsg{gen: 1, items: items})
	return next.(appModel)
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	m := newTestApp(t)

	next, _ := m.navigate(viewMine)
	got := next.(appModel)

	if got.view != viewLogin {
		t.Fatalf("expected login view, got %v", got.view)
	}
	if got.returnTo != viewMine {
		t.Fatalf("expected return target preserved, got %v", got.returnTo)
	}
}

func TestGateWaitsWhileSessionResolves(t *testing.T) {
	m := newTestApp(t)
	m.auth.Token = "stored-token"
	m.auth.Begin()

	next, _ := m.navigate(viewProfile)
	got := next.(appModel)

	if !got.gateWaiting || got.gatePending != viewProfile {
		t.Fatal("navigation during session resolution should wait, not redirect")
	}
	if got.view == viewLogin {
		t.Fatal("pending resolution must not redirect to login")
	}
	if !strings.Contains(got.View(), "Resolving session") {
		t.Fatal("expected the waiting indicator while gated")
	}

	// Resolution succeeds: proceed to the originally requested view.
	next, _ = got.Update(sessionResolvedMsg{user: model.User{ID: "u1", Name: "Asha"}})
	got = next.(appModel)
	if got.gateWaiting {
		t.Fatal("gate should release once the session settles")
	}
	if got.view != viewProfile {
		t.Fatalf("expected profile view after resolution, got %v", got.view)
	}
}

func TestGateFailedResolutionFallsBackToLogin(t *testing.T) {
	m := newTestApp(t)
	m.auth.Token = "stale-token"
	m.auth.Begin()

	next, _ := m.navigate(viewMine)
	got := next.(appModel)

	next, _ = got.Update(sessionResolvedMsg{err: "invalid token"})
	got = next.(appModel)
	if got.view != viewLogin {
		t.Fatalf("expected login after failed resolution, got %v", got.view)
	}
	if got.returnTo != viewMine {
		t.Fatalf("return target lost: %v", got.returnTo)
	}
}

func TestGatePassesAuthenticatedUserThrough(t *testing.T) {
	m := newTestApp(t)
	m.auth.ApplySession("tok", model.User{ID: "u1", Name: "Asha"})

	next, _ := m.navigate(viewProfile)
	got := next.(appModel)
	if got.view != viewProfile {
		t.Fatalf("expected profile view, got %v", got.view)
	}
}

func TestStaleListResponseDoesNotOverwrite(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), nil)

	// Two refreshes in flight; the older settles last.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)
	firstGen := 2
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)
	secondGen := 3

	next, _ = m.Update(itemsFetchedMsg{gen: secondGen, items: []model.Item{{ID: "fresh", Title: "Fresh"}}})
	m = next.(appModel)
	next, _ = m.Update(itemsFetchedMsg{gen: firstGen, items: []model.Item{{ID: "stale", Title: "Stale"}}})
	m = next.(appModel)

	if len(m.items.Items) != 1 || m.items.Items[0].ID != "fresh" {
		t.Fatalf("stale response won the race: %v", m.items.Items)
	}
	if len(m.browse.list.Items()) != 1 {
		t.Fatalf("list out of sync with state: %d entries", len(m.browse.list.Items()))
	}
}

func TestSearchDebounceOnlyNewestSeqFires(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), nil)
	m.browse.search.Focus()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = next.(appModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	m = next.(appModel)

	if m.browse.debounceSeq != 2 {
		t.Fatalf("each keystroke should bump the seq, got %d", m.browse.debounceSeq)
	}

	// The superseded timer fires: nothing happens.
	next, _ = m.Update(searchDebounceMsg{seq: 1})
	m = next.(appModel)
	if m.items.Loading {
		t.Fatal("superseded debounce tick fired a fetch")
	}

	// The newest timer fires: one fetch begins.
	next, _ = m.Update(searchDebounceMsg{seq: 2})
	m = next.(appModel)
	if !m.items.Loading {
		t.Fatal("newest debounce tick should fire a fetch")
	}
}

func TestSearchKeystrokeSchedulesDebounce(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), nil)
	m.browse.search.Focus()

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("expected a debounce timer to be armed")
	}
	if m.items.Loading {
		t.Fatal("fetch must not fire before the debounce elapses")
	}
}

func TestRentPreviewShowsTotalCost(t *testing.T) {
	m := newTestApp(t)
	m.auth.ApplySession("tok", model.User{ID: "renter"})
	it := model.Item{
		ID:       "i1",
		Title:    "Guitar",
		Category: model.CategoryOthers,
		Price:    50,
		Status:   model.StatusAvailable,
		Owner:    model.User{ID: "owner", Name: "Ravi", HostelRoom: "A-101"},
	}
	m.detail = detailModel{item: &it, days: 3}
	m.view = viewDetail

	out := m.View()
	if !strings.Contains(out, "Rent for 3 days") {
		t.Fatalf("missing rental duration line:\n%s", out)
	}
	if !strings.Contains(out, "Total cost: ₹150") {
		t.Fatalf("missing total cost line:\n%s", out)
	}
}

func TestRentSettlementUpdatesOnlyDetailCopy(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), []model.Item{
		{ID: "i1", Title: "Guitar", Status: model.StatusAvailable},
	})
	m.auth.ApplySession("tok", model.User{ID: "renter", Name: "Asha"})
	it := m.items.Items[0]
	m.detail = detailModel{item: &it, days: 2, busy: true}
	m.view = viewDetail

	renter := model.User{ID: "renter", Name: "Asha"}
	rented := it
	rented.Status = model.StatusRented
	rented.CurrentRenter = &renter

	next, _ := m.Update(itemRentedMsg{item: rented})
	m = next.(appModel)

	if m.detail.busy {
		t.Fatal("busy flag should clear on settlement")
	}
	if m.detail.item.Status != model.StatusRented {
		t.Fatalf("detail copy not updated: %q", m.detail.item.Status)
	}
	if m.items.Items[0].Status != model.StatusAvailable {
		t.Fatal("shared collection must stay untouched until the next fetch")
	}

	out := m.View()
	if !strings.Contains(out, "Rented by Asha") {
		t.Fatalf("detail view should reflect the rented state:\n%s", out)
	}
}

func TestOwnListingHidesRentAction(t *testing.T) {
	m := newTestApp(t)
	m.auth.ApplySession("tok", model.User{ID: "owner"})
	it := model.Item{
		ID:     "i1",
		Title:  "Guitar",
		Price:  50,
		Status: model.StatusAvailable,
		Owner:  model.User{ID: "owner", Name: "Ravi"},
	}
	m.detail = detailModel{item: &it, days: 1}
	m.view = viewDetail

	out := m.View()
	if strings.Contains(out, "Total cost") {
		t.Fatalf("owner should not see a rent preview:\n%s", out)
	}
	if !strings.Contains(out, "This is your listing") {
		t.Fatalf("expected the own-listing hint:\n%s", out)
	}

	// Pressing r on your own listing is a no-op.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)
	if m.detail.busy || cmd != nil {
		t.Fatal("rent must be refused on an owned listing")
	}
}

func TestRentWhileAnonymousRedirectsToLogin(t *testing.T) {
	m := newTestApp(t)
	it := model.Item{
		ID:     "i1",
		Title:  "Guitar",
		Price:  50,
		Status: model.StatusAvailable,
		Owner:  model.User{ID: "owner"},
	}
	m.detail = detailModel{item: &it, days: 1}
	m.view = viewDetail

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)
	if m.view != viewLogin {
		t.Fatalf("expected login redirect, got view %v", m.view)
	}
	if m.returnTo != viewDetail {
		t.Fatalf("expected to come back to the detail view, got %v", m.returnTo)
	}
}

func TestCreatedItemPrependsToBrowseList(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), []model.Item{{ID: "a", Title: "A"}})
	m.view = viewForm

	next, _ := m.Update(itemSavedMsg{item: model.Item{ID: "b", Title: "B"}, created: true})
	m = next.(appModel)

	if m.view != viewBrowse {
		t.Fatalf("expected return to browse after create, got %v", m.view)
	}
	if len(m.items.Items) != 2 || m.items.Items[0].ID != "b" {
		t.Fatalf("new item should lead the sequence: %v", m.items.Items)
	}
	if len(m.browse.list.Items()) != 2 {
		t.Fatalf("list out of sync: %d entries", len(m.browse.list.Items()))
	}
}

func TestDeleteSettlementLeavesDetailView(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), []model.Item{{ID: "a", Title: "A"}})
	it := m.items.Items[0]
	m.detail = detailModel{item: &it, days: 1}
	m.view = viewDetail

	next, _ := m.Update(itemDeletedMsg{id: "a"})
	m = next.(appModel)

	if m.view != viewBrowse {
		t.Fatalf("expected browse after deleting the open item, got %v", m.view)
	}
	if len(m.items.Items) != 0 {
		t.Fatalf("item not removed: %v", m.items.Items)
	}
}

func TestFailedDeleteReturnsDetailToIdle(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), []model.Item{
		{ID: "a", Title: "A", Status: model.StatusAvailable, Owner: model.User{ID: "owner"}},
	})
	m.auth.ApplySession("tok", model.User{ID: "owner"})
	it := m.items.Items[0]
	m.detail = detailModel{item: &it, days: 1}
	m.view = viewDetail

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(appModel)
	if !m.detail.busy || cmd == nil {
		t.Fatal("owner delete should go pending")
	}
	if !m.items.Loading {
		t.Fatal("delete should mark the items slice pending")
	}

	next, _ = m.Update(itemDeletedMsg{id: "a", err: "not allowed"})
	m = next.(appModel)
	if m.detail.busy {
		t.Fatal("failed delete must release the busy guard")
	}
	if m.items.Loading {
		t.Fatal("loading should clear on rejection")
	}
	if m.items.Err != "not allowed" {
		t.Fatalf("rejection not recorded: %q", m.items.Err)
	}
	if m.view != viewDetail || len(m.items.Items) != 1 {
		t.Fatal("failed delete must leave the item and view in place")
	}

	// The view is interactive again: a retry goes pending like the first try.
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	m = next.(appModel)
	if !m.detail.busy || cmd == nil {
		t.Fatal("delete should be retryable after a failure")
	}
}

func TestOnlyWinningFetchRefreshesCache(t *testing.T) {
	m := settleInitialFetch(t, newTestApp(t), nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(appModel)

	next, cmd := m.Update(itemsFetchedMsg{gen: 3, cacheable: true, items: []model.Item{{ID: "fresh"}}})
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("winning unfiltered fetch should refresh the cache")
	}

	next, cmd = m.Update(itemsFetchedMsg{gen: 2, cacheable: true, items: []model.Item{{ID: "stale"}}})
	m = next.(appModel)
	if cmd != nil {
		t.Fatal("superseded fetch must not touch the cache")
	}
	if len(m.items.Items) != 1 || m.items.Items[0].ID != "fresh" {
		t.Fatalf("stale response overwrote state: %v", m.items.Items)
	}
}

func TestStaleFlashDoesNotClearNewerOne(t *testing.T) {
	m := newTestApp(t)
	_ = (&m).setFlash("first", false)
	_ = (&m).setFlash("second", false)

	next, _ := m.Update(flashDoneMsg{seq: 1})
	m = next.(appModel)
	if m.flash != "second" {
		t.Fatalf("older timer cleared a newer flash: %q", m.flash)
	}

	next, _ = m.Update(flashDoneMsg{seq: 2})
	m = next.(appModel)
	if m.flash != "" {
		t.Fatalf("flash should clear on its own timer: %q", m.flash)
	}
}

func TestMineSettlementForOtherTabIsDropped(t *testing.T) {
	m := newTestApp(t)
	m.auth.ApplySession("tok", model.User{ID: "u1"})
	m.view = viewMine
	m.mine.tab = mineRentals
	m.mine.busy = true

	next, _ := m.Update(mineLoadedMsg{tab: mineListings, items: []model.Item{{ID: "x"}}})
	m = next.(appModel)
	if !m.mine.busy {
		t.Fatal("settlement for the other tab must be ignored")
	}
	if len(m.mine.list.Items()) != 0 {
		t.Fatal("other tab's items leaked into the view")
	}

	next, _ = m.Update(mineLoadedMsg{tab: mineRentals, items: []model.Item{{ID: "y"}}})
	m = next.(appModel)
	if m.mine.busy || len(m.mine.list.Items()) != 1 {
		t.Fatal("matching settlement should land")
	}
}
