package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

// onReminderFired surfaces a due trigger in the status bar, forwards it to
// the desktop notifier when enabled, and re-arms the channel listener.
func (m Model) onReminderFired(tr scheduler.Trigger) (tea.Model, tea.Cmd) {
	m.ReminderLog = append(m.ReminderLog, tr)
	if len(m.ReminderLog) > 20 {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
	}

	m.Status = StatusBar{Text: fmt.Sprintf("reminder fired: %s", tr.Body), IsError: false}
	if m.DesktopEnabled && m.notifier != nil {
		err := m.notifier.Send(notify.Notification{
			ID:         tr.ID,
			ActivityID: tr.ActivityID,
			Title:      tr.Title,
			Body:       tr.Body,
		})
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("notification delivery failed: %v", err), IsError: true}
		}
	}

	if m.engine != nil {
		return m, waitForReminderCmd(m.engine.C())
	}
	return m, nil
}

func waitForReminderCmd(ch <-chan scheduler.Trigger) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		tr, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderFiredMsg{Trigger: tr}
	}
}
