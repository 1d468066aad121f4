package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m *Model) openAddForm() {
	m.Form = FormState{
		Mode:     FormModeAdd,
		Focus:    FieldTitle,
		Category: model.CategoryOther,
	}
	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.titleInput.Focus()
	m.descInput.Blur()
	m.CurrentView = ViewForm
}

func (m *Model) openEditForm() {
	act, ok := m.selectedActivity()
	if !ok {
		return
	}
	m.Form = FormState{
		Mode:      FormModeEdit,
		EditingID: act.ID,
		Focus:     FieldTitle,
		Category:  act.Category,
	}
	m.titleInput.SetValue(act.Title)
	m.descInput.SetValue(act.Description)
	m.titleInput.Focus()
	m.descInput.Blur()
	m.CurrentView = ViewForm
}

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewActivities
		m.Status = StatusBar{Text: "form cancelled", IsError: false}
		return m
	case "tab":
		if m.Form.Focus == FieldTitle {
			m.Form.Focus = FieldDescription
			m.titleInput.Blur()
			m.descInput.Focus()
		} else {
			m.Form.Focus = FieldTitle
			m.descInput.Blur()
			m.titleInput.Focus()
		}
		return m
	case "up":
		m.Form.Category = categoryBefore(m.Form.Category)
		return m
	case "down":
		m.Form.Category = categoryAfter(m.Form.Category)
		return m
	case "enter":
		return m.submitForm()
	}

	if msg.Type == tea.KeyRunes {
		if m.Form.Focus == FieldTitle {
			m.titleInput.SetValue(m.titleInput.Value() + string(msg.Runes))
		} else {
			m.descInput.SetValue(m.descInput.Value() + string(msg.Runes))
		}
		return m
	}
	var cmd tea.Cmd
	if m.Form.Focus == FieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	_ = cmd
	return m
}

func (m Model) submitForm() Model {
	title := m.titleInput.Value()
	desc := m.descInput.Value()

	if m.Form.Mode == FormModeEdit {
		if err := m.store.Update(m.ctx, m.Form.EditingID, title, desc, m.Form.Category); err != nil {
			m.Form.Err = err.Error()
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", title), IsError: false}
	} else {
		act, err := m.store.Add(m.ctx, title, desc, m.Form.Category)
		if err != nil {
			m.Form.Err = err.Error()
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", act.Title), IsError: false}
	}

	m.Form.Err = ""
	m.CurrentView = ViewActivities
	m.syncSelection()
	return m
}

func categoryAfter(c model.Category) model.Category {
	cats := model.Categories()
	for i, cat := range cats {
		if cat == c {
			return cats[(i+1)%len(cats)]
		}
	}
	return cats[0]
}

func categoryBefore(c model.Category) model.Category {
	cats := model.Categories()
	for i, cat := range cats {
		if cat == c {
			return cats[(i+len(cats)-1)%len(cats)]
		}
	}
	return cats[0]
}

func (m Model) renderFormView() string {
	focus := "title"
	if m.Form.Focus == FieldDescription {
		focus = "description"
	}
	return views.RenderFormPanel(views.FormPanelData{
		Mode:      string(m.Form.Mode),
		TitleView: m.titleInput.View(),
		DescView:  m.descInput.View(),
		Category:  string(m.Form.Category),
		FocusHint: focus,
		ErrorText: m.Form.Err,
	})
}
