package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	formTitle = iota
	formCategory
	formPrice
	formDescription
	formImages
	formFieldCount
)

// formModel is the create/edit listing form. Image references live only in
// memory until submit; cancelling the form releases them.
type formModel struct {
	inputs  []textinput.Model
	focus   int
	editing *model.Item // nil means create
	busy    bool
}

func newFormModel(editing *model.Item) formModel {
	labels := [formFieldCount]string{"Title", "Category", "Price per day", "Description", "Image URLs (comma-separated)"}

	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 200
		ti.Width = 48
		inputs[i] = ti
	}
	inputs[formCategory].Placeholder = "Category (Electronics, Books, Sports, Furniture, Clothing, Others)"
	inputs[formDescription].CharLimit = 2000

	if editing != nil {
		inputs[formTitle].SetValue(editing.Title)
		inputs[formCategory].SetValue(string(editing.Category))
		inputs[formPrice].SetValue(fmtPrice(editing.Price))
		inputs[formDescription].SetValue(editing.Description)
		inputs[formImages].SetValue(strings.Join(editing.Images, ", "))
	}
	inputs[formTitle].Focus()

	return formModel{inputs: inputs, editing: editing}
}

func (f *formModel) setFocus(i int) tea.Cmd {
	if i < 0 {
		i = formFieldCount - 1
	}
	if i >= formFieldCount {
		i = 0
	}
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

func (f formModel) images() []string {
	var out []string
	for _, part := range strings.Split(f.inputs[formImages].Value(), ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// validate checks the form client-side before anything goes on the wire.
func (f formModel) validate() (api.ItemDraft, error) {
	title := strings.TrimSpace(f.inputs[formTitle].Value())
	if title == "" {
		return api.ItemDraft{}, fmt.Errorf("title is required")
	}
	cat, err := model.ParseCategory(f.inputs[formCategory].Value())
	if err != nil {
		return api.ItemDraft{}, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.inputs[formPrice].Value()), 64)
	// ParseFloat accepts "NaN" and "Inf"; neither may go on the wire.
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return api.ItemDraft{}, fmt.Errorf("price must be a non-negative number")
	}
	return api.ItemDraft{
		Title:       title,
		Description: strings.TrimSpace(f.inputs[formDescription].Value()),
		Category:    cat,
		Price:       price,
		Images:      f.images(),
	}, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		if m.form.editing != nil {
			m.view = viewDetail
		} else {
			m.view = viewBrowse
		}
		return m, nil
	case "tab", "down":
		return m, m.form.setFocus(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.setFocus(m.form.focus - 1)
	case "ctrl+s", "enter":
		if key.String() == "enter" && m.form.focus != formFieldCount-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		if m.form.busy {
			return m, nil
		}
		draft, err := m.form.validate()
		if err != nil {
			return m, (&m).setFlash(err.Error(), true)
		}
		m.form.busy = true
		m.items.Begin()
		if m.form.editing == nil {
			return m, createItemCmd(m.client, draft)
		}
		p := api.ItemPatch{
			Title:       &draft.Title,
			Description: &draft.Description,
			Category:    &draft.Category,
			Price:       &draft.Price,
			Images:      draft.Images,
		}
		return m, updateItemCmd(m.client, m.form.editing.ID, p)
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewForm() string {
	heading := "List a New Item"
	if m.form.editing != nil {
		heading = "Edit Listing"
	}

	var b strings.Builder
	b.WriteString(styleHeader().Render(heading) + "\n\n")
	labels := [formFieldCount]string{"Title", "Category", "Price per day (₹)", "Description", "Images"}
	for i, in := range m.form.inputs {
		b.WriteString(styleMuted().Render(labels[i]) + "\n")
		b.WriteString(in.View() + "\n")
	}
	if m.form.busy {
		b.WriteString("\n" + m.spin.View() + " Saving…")
	}
	return b.String()
}
