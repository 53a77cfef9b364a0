package tui

import (
	"time"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const searchDebounce = 300 * time.Millisecond

type browseModel struct {
	search textinput.Model
	// category indexes model.Categories(); -1 means all.
	category int
	list     list.Model

	// debounceSeq coalesces keystrokes: each edit bumps it and schedules a
	// tick; only the tick carrying the newest seq fires a fetch.
	debounceSeq int
	lastSearch  string
}

func newBrowseModel() browseModel {
	search := textinput.New()
	search.Placeholder = "Search items…"
	search.CharLimit = 80

	return browseModel{
		search:   search,
		category: -1,
		list:     newList("Items", nil),
	}
}

func (b browseModel) filter() api.ListFilter {
	f := api.ListFilter{Search: b.search.Value()}
	if b.category >= 0 {
		f.Category = model.Categories()[b.category]
	}
	return f
}

func (b browseModel) categoryLabel() string {
	if b.category < 0 {
		return "All Categories"
	}
	return string(model.Categories()[b.category])
}

// scheduleSearch bumps the debounce sequence and arms a new timer.
func (b *browseModel) scheduleSearch() tea.Cmd {
	b.debounceSeq++
	seq := b.debounceSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

func (m appModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDebounceMsg:
		if msg.seq != m.browse.debounceSeq {
			return m, nil // superseded by a newer keystroke
		}
		gen := m.items.BeginFetch()
		return m, fetchItemsCmd(m.client, m.browse.filter(), gen)

	case tea.KeyMsg:
		if m.browse.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.browse.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.browse.search, cmd = m.browse.search.Update(msg)
			if m.browse.search.Value() != m.browse.lastSearch {
				m.browse.lastSearch = m.browse.search.Value()
				return m, tea.Batch(cmd, m.browse.scheduleSearch())
			}
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.browse.search.Focus()
			return m, textinput.Blink
		case "c":
			// Cycle All -> each category -> All.
			m.browse.category++
			if m.browse.category >= len(model.Categories()) {
				m.browse.category = -1
			}
			return m, m.browse.scheduleSearch()
		case "r":
			gen := m.items.BeginFetch()
			return m, fetchItemsCmd(m.client, m.browse.filter(), gen)
		case "enter":
			if card, ok := m.browse.list.SelectedItem().(itemCard); ok {
				return m.openDetail(card.item)
			}
			return m, nil
		case "n":
			m.form = newFormModel(nil)
			return m.navigate(viewForm)
		case "m":
			return m.navigate(viewMine)
		case "p":
			return m.navigate(viewProfile)
		case "l":
			if !m.auth.IsAuthenticated() {
				m.returnTo = viewBrowse
				m.view = viewLogin
				return m, textinput.Blink
			}
			return m, nil
		case "o":
			if m.auth.IsAuthenticated() {
				return m.logout()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.browse.list, cmd = m.browse.list.Update(msg)
	return m, cmd
}

// openDetail shows the item immediately and refreshes it from the server,
// whose copy is authoritative.
func (m appModel) openDetail(it model.Item) (tea.Model, tea.Cmd) {
	item := it
	m.detail = detailModel{item: &item, days: 1, loading: true}
	m.items.Select(&item)
	m.view = viewDetail
	return m, loadItemCmd(m.client, it.ID)
}

func (m appModel) logout() (tea.Model, tea.Cmd) {
	_ = m.sessions.Clear()
	m.client.Token = ""
	m.auth.Clear()
	m.view = viewBrowse
	return m, (&m).setFlash("Logged out", false)
}

func (m appModel) viewBrowse() string {
	filterLine := lipgloss.JoinHorizontal(lipgloss.Top,
		m.browse.search.View(),
		styleMuted().Render("   ["+m.browse.categoryLabel()+"]"),
	)

	var body string
	switch {
	case m.items.Loading:
		body = m.spin.View() + " Loading items…"
	case len(m.items.Items) == 0:
		body = styleMuted().Render("No items found. Try adjusting your search or filter.")
	default:
		body = m.browse.list.View()
	}

	return filterLine + "\n\n" + body
}
