package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/reminder"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			act, err := m.store.Add(m.ctx, a.Title, "", a.Category)
			if err != nil {
				return commands.Result{}, err
			}
			m.syncSelection()
			return commands.Result{Message: fmt.Sprintf("added activity: %s", act.Title)}, nil
		},
		Done: func() (commands.Result, error) {
			act, ok := m.selectedActivity()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity selected"}
			}
			if err := m.store.Increment(m.ctx, act.ID); err != nil {
				return commands.Result{}, err
			}
			next, _ := m.store.Get(act.ID)
			return commands.Result{Message: fmt.Sprintf("%s: x%d", next.Title, next.CompletionCount)}, nil
		},
		Count: func(c commands.CountArgs) (commands.Result, error) {
			act, ok := m.selectedActivity()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity selected"}
			}
			if err := m.store.SetCompletionCount(m.ctx, act.ID, c.Count); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: count set to %d", act.Title, max(c.Count, 0))}, nil
		},
		Remind: func(r commands.RemindArgs) (commands.Result, error) {
			act, ok := m.selectedActivity()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no activity selected"}
			}
			outcome := m.scheduleReminder(act, r.At)
			if outcome != reminder.OutcomeScheduled {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("reminder %s", outcome)}
			}
			return commands.Result{Message: fmt.Sprintf("reminder for %q at %s", act.Title, r.At.Format(remindLayout))}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if s.All {
				m.Filter = ""
			} else {
				m.Filter = s.Category
			}
			m.Cursor = 0
			m.syncSelection()
			label := string(m.Filter)
			if label == "" {
				label = "all"
			}
			return commands.Result{Message: fmt.Sprintf("showing: %s", label)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}
