package tui

import (
	"fmt"
	"strings"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	profName = iota
	profEmail
	profHostelRoom
	profPhone
	profFieldCount
)

const (
	pwCurrent = iota
	pwNew
	pwConfirm
	pwFieldCount
)

type profileModel struct {
	editing bool
	inputs  []textinput.Model
	focus   int

	changingPassword bool
	pwInputs         []textinput.Model
	pwFocus          int

	busy bool
}

func newProfileModel() profileModel {
	labels := [profFieldCount]string{"Full name", "Email", "Hostel room", "Phone number"}
	inputs := make([]textinput.Model, profFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}

	pwLabels := [pwFieldCount]string{"Current password", "New password", "Confirm new password"}
	pwInputs := make([]textinput.Model, pwFieldCount)
	for i := range pwInputs {
		ti := textinput.New()
		ti.Placeholder = pwLabels[i]
		ti.EchoMode = textinput.EchoPassword
		ti.CharLimit = 120
		ti.Width = 40
		pwInputs[i] = ti
	}

	return profileModel{inputs: inputs, pwInputs: pwInputs}
}

// syncFrom resets the form fields to the current snapshot (also used to
// discard edits on cancel).
func (p *profileModel) syncFrom(u *model.User) {
	p.editing = false
	p.changingPassword = false
	p.busy = false
	if u == nil {
		return
	}
	p.inputs[profName].SetValue(u.Name)
	p.inputs[profEmail].SetValue(u.Email)
	p.inputs[profHostelRoom].SetValue(u.HostelRoom)
	p.inputs[profPhone].SetValue(u.PhoneNumber)
}

func (p *profileModel) resetPassword() {
	p.changingPassword = false
	for i := range p.pwInputs {
		p.pwInputs[i].SetValue("")
	}
}

func (p *profileModel) setFocus(i int) tea.Cmd {
	p.focus = (i + profFieldCount) % profFieldCount
	for j := range p.inputs {
		p.inputs[j].Blur()
	}
	return p.inputs[p.focus].Focus()
}

func (p *profileModel) setPwFocus(i int) tea.Cmd {
	p.pwFocus = (i + pwFieldCount) % pwFieldCount
	for j := range p.pwInputs {
		p.pwInputs[j].Blur()
	}
	return p.pwInputs[p.pwFocus].Focus()
}

func (m appModel) updateProfile(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.profile.changingPassword {
		return m.updatePasswordForm(key)
	}
	if m.profile.editing {
		return m.updateProfileForm(key)
	}

	switch key.String() {
	case "esc", "backspace":
		m.view = viewBrowse
		return m, nil
	case "e":
		m.profile.editing = true
		return m, m.profile.setFocus(profName)
	case "w":
		m.profile.changingPassword = true
		return m, m.profile.setPwFocus(pwCurrent)
	case "o":
		return m.logout()
	}
	return m, nil
}

func (m appModel) updateProfileForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.profile.syncFrom(m.auth.User)
		return m, nil
	case "tab", "down":
		return m, m.profile.setFocus(m.profile.focus + 1)
	case "shift+tab", "up":
		return m, m.profile.setFocus(m.profile.focus - 1)
	case "enter", "ctrl+s":
		if key.String() == "enter" && m.profile.focus != profFieldCount-1 {
			return m, m.profile.setFocus(m.profile.focus + 1)
		}
		if m.profile.busy {
			return m, nil
		}
		m.profile.busy = true
		return m, saveProfileCmd(m.client, api.ProfilePatch{
			Name:        strings.TrimSpace(m.profile.inputs[profName].Value()),
			Email:       strings.TrimSpace(m.profile.inputs[profEmail].Value()),
			HostelRoom:  strings.TrimSpace(m.profile.inputs[profHostelRoom].Value()),
			PhoneNumber: strings.TrimSpace(m.profile.inputs[profPhone].Value()),
		})
	}

	var cmd tea.Cmd
	m.profile.inputs[m.profile.focus], cmd = m.profile.inputs[m.profile.focus].Update(key)
	return m, cmd
}

func (m appModel) updatePasswordForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.profile.resetPassword()
		return m, nil
	case "tab", "down":
		return m, m.profile.setPwFocus(m.profile.pwFocus + 1)
	case "shift+tab", "up":
		return m, m.profile.setPwFocus(m.profile.pwFocus - 1)
	case "enter":
		if m.profile.pwFocus != pwFieldCount-1 {
			return m, m.profile.setPwFocus(m.profile.pwFocus + 1)
		}
		if m.profile.busy {
			return m, nil
		}
		current := m.profile.pwInputs[pwCurrent].Value()
		next := m.profile.pwInputs[pwNew].Value()
		confirm := m.profile.pwInputs[pwConfirm].Value()
		// Caught client-side; nothing goes on the wire.
		if next != confirm {
			return m, (&m).setFlash("Passwords do not match", true)
		}
		if current == "" || next == "" {
			return m, (&m).setFlash("Both passwords are required", true)
		}
		m.profile.busy = true
		return m, changePasswordCmd(m.client, current, next)
	}

	var cmd tea.Cmd
	m.profile.pwInputs[m.profile.pwFocus], cmd = m.profile.pwInputs[m.profile.pwFocus].Update(key)
	return m, cmd
}

func (m appModel) viewProfile() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render("Profile Settings") + "\n\n")

	switch {
	case m.profile.changingPassword:
		for _, in := range m.profile.pwInputs {
			b.WriteString(in.View() + "\n")
		}
		if m.profile.busy {
			b.WriteString("\n" + m.spin.View() + " Changing password…")
		}
	case m.profile.editing:
		for _, in := range m.profile.inputs {
			b.WriteString(in.View() + "\n")
		}
		if m.profile.busy {
			b.WriteString("\n" + m.spin.View() + " Saving…")
		}
	default:
		u := m.auth.User
		if u == nil {
			return styleMuted().Render("No profile loaded.")
		}
		b.WriteString(fmt.Sprintf("%s\n", u.Name))
		b.WriteString(fmt.Sprintf("%s\n", u.Email))
		b.WriteString(fmt.Sprintf("Room %s · %s\n", u.HostelRoom, u.PhoneNumber))
	}
	return b.String()
}
