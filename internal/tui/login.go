package tui

import (
	"strings"

	"dormshare-cli/internal/api"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 120
	password.Width = 40

	return loginModel{email: email, password: password}
}

func (l *loginModel) setFocus(i int) tea.Cmd {
	l.focus = (i + 2) % 2
	l.email.Blur()
	l.password.Blur()
	if l.focus == 0 {
		return l.email.Focus()
	}
	return l.password.Focus()
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.view = viewBrowse
		return m, nil
	case "ctrl+r":
		m.view = viewRegister
		return m, textinput.Blink
	case "tab", "down":
		return m, m.login.setFocus(m.login.focus + 1)
	case "shift+tab", "up":
		return m, m.login.setFocus(m.login.focus - 1)
	case "enter":
		if m.login.busy {
			return m, nil
		}
		email := strings.TrimSpace(m.login.email.Value())
		password := m.login.password.Value()
		if email == "" || password == "" {
			return m, (&m).setFlash("Email and password are required", true)
		}
		m.login.busy = true
		m.auth.Begin()
		return m, loginCmd(m.client, api.Credentials{Email: email, Password: password})
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render("Log in") + "\n\n")
	b.WriteString(m.login.email.View() + "\n")
	b.WriteString(m.login.password.View() + "\n")
	if m.login.busy {
		b.WriteString("\n" + m.spin.View() + " Signing in…")
	}
	b.WriteString("\n" + styleMuted().Render("No account yet? ctrl+r to register."))
	return b.String()
}

const (
	regName = iota
	regEmail
	regPassword
	regHostelRoom
	regPhone
	regFieldCount
)

type registerModel struct {
	inputs []textinput.Model
	focus  int
	busy   bool
}

func newRegisterModel() registerModel {
	labels := [regFieldCount]string{"Full name", "Email", "Password", "Hostel room", "Phone number"}

	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regName].Focus()

	return registerModel{inputs: inputs}
}

func (r *registerModel) setFocus(i int) tea.Cmd {
	r.focus = (i + regFieldCount) % regFieldCount
	for j := range r.inputs {
		r.inputs[j].Blur()
	}
	return r.inputs[r.focus].Focus()
}

func (m appModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.view = viewLogin
		return m, textinput.Blink
	case "tab", "down":
		return m, m.register.setFocus(m.register.focus + 1)
	case "shift+tab", "up":
		return m, m.register.setFocus(m.register.focus - 1)
	case "enter":
		if m.register.focus != regFieldCount-1 {
			return m, m.register.setFocus(m.register.focus + 1)
		}
		if m.register.busy {
			return m, nil
		}
		reg := api.Registration{
			Name:        strings.TrimSpace(m.register.inputs[regName].Value()),
			Email:       strings.TrimSpace(m.register.inputs[regEmail].Value()),
			Password:    m.register.inputs[regPassword].Value(),
			HostelRoom:  strings.TrimSpace(m.register.inputs[regHostelRoom].Value()),
			PhoneNumber: strings.TrimSpace(m.register.inputs[regPhone].Value()),
		}
		if reg.Name == "" || reg.Email == "" || reg.Password == "" {
			return m, (&m).setFlash("Name, email and password are required", true)
		}
		m.register.busy = true
		m.auth.Begin()
		return m, registerCmd(m.client, reg)
	}

	var cmd tea.Cmd
	m.register.inputs[m.register.focus], cmd = m.register.inputs[m.register.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewRegister() string {
	var b strings.Builder
	b.WriteString(styleHeader().Render("Create an account") + "\n\n")
	for _, in := range m.register.inputs {
		b.WriteString(in.View() + "\n")
	}
	if m.register.busy {
		b.WriteString("\n" + m.spin.View() + " Registering…")
	}
	return b.String()
}
