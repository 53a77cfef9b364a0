package tui

import (
	"fmt"
	"strings"
	"time"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/cache"
	"dormshare-cli/internal/session"
	"dormshare-cli/internal/state"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	Client   *api.Client
	Sessions session.Store
	Cache    cache.Store
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type appModel struct {
	client   *api.Client
	sessions session.Store
	cache    cache.Store

	// Shared slices. Views read them; only settlement handlers write them.
	auth  state.AuthState
	items state.ItemsState

	view     view
	returnTo view

	// Auth gate: a protected navigation requested while session resolution
	// is still in flight waits here instead of redirecting.
	gateWaiting bool
	gatePending view

	width  int
	height int

	spin spinner.Model

	browse   browseModel
	detail   detailModel
	form     formModel
	login    loginModel
	register registerModel
	profile  profileModel
	mine     mineModel

	flash    string
	flashErr bool
	flashSeq int

	initCmds []tea.Cmd
}

func newAppModel(opts Options) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := appModel{
		client:   opts.Client,
		sessions: opts.Sessions,
		cache:    opts.Cache,
		view:     viewBrowse,
		returnTo: viewBrowse,
		spin:     sp,
		browse:   newBrowseModel(),
		login:    newLoginModel(),
		register: newRegisterModel(),
		profile:  newProfileModel(),
		mine:     newMineModel(),
	}

	cmds := []tea.Cmd{sp.Tick, textinput.Blink}

	gen := m.items.BeginFetch()
	cmds = append(cmds, fetchItemsCmd(m.client, api.ListFilter{}, gen))

	// Rehydrate the session from a stored token; isAuthenticated stays
	// false until the profile fetch settles.
	m.auth.Token = opts.Client.Token
	if m.auth.Token != "" {
		m.auth.Begin()
		cmds = append(cmds, meCmd(m.client))
	}

	m.initCmds = cmds
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case sessionResolvedMsg:
		if msg.err != "" {
			// Failed rehydrate: keep browsing anonymously, token stays put.
			m.auth.Reject(msg.err)
			if m.gateWaiting {
				m.gateWaiting = false
				m.returnTo = m.gatePending
				m.view = viewLogin
			}
			return m, nil
		}
		m.auth.ApplyUser(msg.user)
		_ = m.sessions.Save(session.Session{Token: m.auth.Token, User: m.auth.User})
		if m.gateWaiting {
			m.gateWaiting = false
			return m.navigate(m.gatePending)
		}
		return m, nil

	case authResultMsg:
		m.login.busy = false
		m.register.busy = false
		if msg.err != "" {
			m.auth.Reject(msg.err)
			return m, m.setFlash(msg.err, true)
		}
		m.auth.ApplySession(msg.sess.Token, msg.sess.User)
		m.client.Token = msg.sess.Token
		_ = m.sessions.Save(session.Session{Token: msg.sess.Token, User: m.auth.User})
		m.login = newLoginModel()
		m.register = newRegisterModel()
		target := m.returnTo
		m.returnTo = viewBrowse
		flashCmd := (&m).setFlash(fmt.Sprintf("Welcome, %s!", msg.sess.User.Name), false)
		next, cmd := m.navigate(target)
		return next, tea.Batch(cmd, flashCmd)

	case itemsFetchedMsg:
		if msg.err != "" {
			if m.items.RejectFetch(msg.gen, msg.err) {
				return m, m.setFlash(msg.err, true)
			}
			return m, nil
		}
		if m.items.ApplyFetched(msg.gen, msg.items) {
			m.browse.list.SetItems(cardsFor(m.items.Items))
			// Only the response that won the race refreshes the offline
			// cache; a superseded fetch must not overwrite it either.
			if msg.cacheable {
				return m, saveListingCmd(m.cache, msg.items)
			}
		}
		return m, nil

	case itemLoadedMsg:
		m.detail.loading = false
		if msg.err != "" {
			m.view = viewBrowse
			return m, m.setFlash("Failed to fetch item details", true)
		}
		it := msg.item
		m.detail.item = &it
		m.items.Select(&it)
		return m, nil

	case itemSavedMsg:
		m.form.busy = false
		if msg.err != "" {
			m.items.Reject(msg.err)
			return m, m.setFlash(msg.err, true)
		}
		if msg.created {
			m.items.ApplyCreated(msg.item)
			m.browse.list.SetItems(cardsFor(m.items.Items))
			m.view = viewBrowse
			return m, m.setFlash("Item listed successfully!", false)
		}
		m.items.ApplyUpdated(msg.item)
		m.browse.list.SetItems(cardsFor(m.items.Items))
		if m.detail.item != nil && m.detail.item.ID == msg.item.ID {
			it := msg.item
			m.detail.item = &it
		}
		m.view = viewDetail
		return m, m.setFlash("Item updated successfully!", false)

	case itemDeletedMsg:
		m.detail.busy = false
		if msg.err != "" {
			m.items.Reject(msg.err)
			return m, m.setFlash(msg.err, true)
		}
		m.items.ApplyDeleted(msg.id)
		m.browse.list.SetItems(cardsFor(m.items.Items))
		if m.view == viewDetail && m.detail.item != nil && m.detail.item.ID == msg.id {
			m.detail.item = nil
			m.view = viewBrowse
		}
		return m, m.setFlash("Item deleted", false)

	case itemRentedMsg:
		// Rent/return replace only the locally held detail copy; the shared
		// collection stays as-is until the next list fetch.
		m.detail.busy = false
		if msg.err != "" {
			return m, m.setFlash(msg.err, true)
		}
		it := msg.item
		m.detail.item = &it
		return m, m.setFlash("Item rented successfully!", false)

	case itemReturnedMsg:
		m.detail.busy = false
		if msg.err != "" {
			return m, m.setFlash(msg.err, true)
		}
		it := msg.item
		m.detail.item = &it
		return m, m.setFlash("Item returned successfully!", false)

	case mineLoadedMsg:
		if msg.tab != m.mine.tab {
			return m, nil // superseded by a tab switch
		}
		m.mine.busy = false
		if msg.err != "" {
			return m, m.setFlash(msg.err, true)
		}
		m.mine.list.SetItems(cardsFor(msg.items))
		return m, nil

	case profileSavedMsg:
		m.profile.busy = false
		if msg.err != "" {
			return m, m.setFlash(msg.err, true)
		}
		m.auth.ApplyUser(msg.user)
		_ = m.sessions.Save(session.Session{Token: m.auth.Token, User: m.auth.User})
		m.profile.editing = false
		return m, m.setFlash("Profile updated successfully!", false)

	case passwordChangedMsg:
		m.profile.busy = false
		if msg.err != "" {
			return m, m.setFlash(msg.err, true)
		}
		m.profile.resetPassword()
		return m, m.setFlash("Password changed successfully!", false)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.gateWaiting {
		return m, nil
	}

	switch m.view {
	case viewBrowse:
		return m.updateBrowse(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewForm:
		return m.updateForm(msg)
	case viewLogin:
		return m.updateLogin(msg)
	case viewRegister:
		return m.updateRegister(msg)
	case viewProfile:
		return m.updateProfile(msg)
	case viewMine:
		return m.updateMine(msg)
	default:
		return m, nil
	}
}

// navigate applies the route gate: protected targets wait while session
// resolution is in flight and fall back to login when unauthenticated. The
// gate is advisory; every protected call is still enforced server-side.
func (m appModel) navigate(target view) (tea.Model, tea.Cmd) {
	if protectedView(target) {
		if m.auth.Loading {
			m.gateWaiting = true
			m.gatePending = target
			return m, nil
		}
		if !m.auth.IsAuthenticated() {
			m.returnTo = target
			m.view = viewLogin
			return m, textinput.Blink
		}
	}

	m.view = target
	switch target {
	case viewMine:
		m.mine.busy = true
		return m, loadMineCmd(m.client, m.mine.tab)
	case viewProfile:
		m.profile.syncFrom(m.auth.User)
		return m, nil
	case viewForm:
		return m, textinput.Blink
	}
	return m, nil
}

func (m appModel) View() string {
	who := "anonymous"
	if m.auth.User != nil {
		who = m.auth.User.Name
	}
	header := styleHeader().Render(fmt.Sprintf("Dormshare  ·  %s", who))

	var body string
	switch {
	case m.gateWaiting:
		body = m.spin.View() + " Resolving session…"
	case m.view == viewBrowse:
		body = m.viewBrowse()
	case m.view == viewDetail:
		body = m.viewDetail()
	case m.view == viewForm:
		body = m.viewForm()
	case m.view == viewLogin:
		body = m.viewLogin()
	case m.view == viewRegister:
		body = m.viewRegister()
	case m.view == viewProfile:
		body = m.viewProfile()
	case m.view == viewMine:
		body = m.viewMine()
	}

	footer := styleMuted().Render(m.footerHelp())
	if m.flash != "" {
		color := colorFlashOK
		if m.flashErr {
			color = colorFlashErr
		}
		footer = lipgloss.NewStyle().Foreground(color).Render(m.flash) + "\n" + footer
	}

	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m appModel) footerHelp() string {
	switch m.view {
	case viewBrowse:
		return "/ search  c category  enter open  n new  m mine  p profile  r refresh  q quit"
	case viewDetail:
		return "+/- days  r rent  R return  e edit  d delete  esc back"
	case viewForm:
		return "tab next field  ctrl+s save  esc cancel"
	case viewLogin:
		return "tab next field  enter submit  ctrl+r register  esc back"
	case viewRegister:
		return "tab next field  enter submit  esc back to login"
	case viewProfile:
		return "e edit  w password  o log out  esc back"
	case viewMine:
		return "tab switch  enter open  esc back"
	}
	return ""
}

func (m *appModel) resize() {
	h := m.height - 8
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.browse.list.SetSize(w, h)
	m.mine.list.SetSize(w, h)
	m.browse.search.Width = min(w-8, 48)
}

// setFlash shows a transient notification in the footer for a few seconds.
func (m *appModel) setFlash(text string, isErr bool) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = text
	m.flashErr = isErr
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}
