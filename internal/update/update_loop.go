package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.engine != nil {
		return waitForReminderCmd(m.engine.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		if m.CurrentView == ViewForm {
			next := m.handleFormKey(typed)
			return next, nil
		}

		if m.CurrentView == ViewDetail && m.Detail.RemindActive {
			next := m.handleRemindInputKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		if m.CurrentView == ViewActivities {
			return m.handleActivitiesKey(typed), nil
		}
		if m.CurrentView == ViewDetail {
			return m.handleDetailKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case ReminderFiredMsg:
		return m.onReminderFired(typed.Trigger)
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewActivities:
		leftPane = m.renderActivitiesView()
		rightPane = m.renderDetailView() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewDetail:
		leftPane = m.renderDetailView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewForm:
		leftPane = m.renderFormView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.Body, last.FireAt.Format("15:04:05"))
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("habitd | view: %s | selected: %s", m.CurrentView, m.SelectedID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: j/k move | enter detail | a add | e edit | d delete | c filter | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewActivities, ViewDetail, ViewForm:
		return true
	default:
		return false
	}
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return "\ncommand: " + m.commandInput.View()
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	panel := views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
	})
	bindings := m.helpBindings()
	return panel + "\n" + m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewActivities:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "J/K", Action: "move activity down/up"},
			{Key: "enter", Action: "open detail"},
			{Key: "a/e", Action: "add / edit activity"},
			{Key: "d", Action: "delete activity"},
			{Key: "c", Action: "cycle category filter"},
		}
	case ViewDetail:
		return []KeyBinding{
			{Key: "+/-", Action: "increment / decrement counter"},
			{Key: "0", Action: "reset counter"},
			{Key: "w/m/y", Action: "week/month/year chart"},
			{Key: "r", Action: "schedule reminder"},
			{Key: "esc", Action: "back to activities"},
		}
	case ViewForm:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "up/down", Action: "cycle category"},
			{Key: "enter", Action: "save"},
			{Key: "esc", Action: "cancel"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}
