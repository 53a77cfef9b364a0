package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// mineModel is the tabbed "my listings / my rentals" view. Each tab switch
// re-fetches; a settlement for the other tab is dropped as superseded.
type mineModel struct {
	tab  mineTab
	list list.Model
	busy bool
}

func newMineModel() mineModel {
	return mineModel{list: newList("Mine", nil)}
}

func (m appModel) updateMine(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "backspace":
			m.view = viewBrowse
			return m, nil
		case "tab":
			if m.mine.tab == mineListings {
				m.mine.tab = mineRentals
			} else {
				m.mine.tab = mineListings
			}
			m.mine.busy = true
			m.mine.list.SetItems(nil)
			return m, loadMineCmd(m.client, m.mine.tab)
		case "enter":
			if card, ok := m.mine.list.SelectedItem().(itemCard); ok {
				return m.openDetail(card.item)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.mine.list, cmd = m.mine.list.Update(msg)
	return m, cmd
}

func (m appModel) viewMine() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	inactive := styleMuted()

	listings := inactive.Render("My Listings")
	rentals := inactive.Render("My Rentals")
	if m.mine.tab == mineListings {
		listings = active.Render("My Listings")
	} else {
		rentals = active.Render("My Rentals")
	}
	tabs := listings + "   " + rentals

	var body string
	switch {
	case m.mine.busy:
		body = m.spin.View() + " Loading…"
	case len(m.mine.list.Items()) == 0:
		if m.mine.tab == mineListings {
			body = styleMuted().Render("No listings found. Press esc, then n to create one.")
		} else {
			body = styleMuted().Render("No rentals found.")
		}
	default:
		body = m.mine.list.View()
	}

	return strings.Join([]string{tabs, body}, "\n\n")
}
