package update

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/history"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/reminder"
	"github.com/sandeepkv93/habitd/internal/views"
)

const remindLayout = "2006-01-02 15:04"

func (m Model) handleDetailKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewActivities
	case "+", "=":
		m.adjustCount(1)
	case "-":
		m.adjustCount(-1)
	case "0":
		m.resetCount()
	case "w":
		m.Detail.Range = model.TimeRangeWeek
	case "m":
		m.Detail.Range = model.TimeRangeMonth
	case "y":
		m.Detail.Range = model.TimeRangeYear
	case "r":
		if m.SelectedID != "" {
			m.Detail.RemindActive = true
			m.remindInput.SetValue("")
			m.remindInput.Focus()
			m.Status = StatusBar{Text: "enter reminder time (YYYY-MM-DD HH:MM)", IsError: false}
		}
	}
	return m
}

func (m Model) handleRemindInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Detail.RemindActive = false
		m.remindInput.Blur()
		m.Status = StatusBar{Text: "reminder cancelled", IsError: false}
	case "enter":
		m = m.submitReminder(m.remindInput.Value())
	default:
		if msg.Type == tea.KeyRunes {
			m.remindInput.SetValue(m.remindInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.remindInput, cmd = m.remindInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) submitReminder(raw string) Model {
	at, err := time.ParseInLocation(remindLayout, raw, time.Local)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("bad reminder time: %s", raw), IsError: true}
		return m
	}
	act, ok := m.selectedActivity()
	if !ok {
		m.Detail.RemindActive = false
		return m
	}
	m.Detail.RemindActive = false
	m.remindInput.Blur()
	m.applyReminderOutcome(act, m.scheduleReminder(act, at), at)
	return m
}

func (m Model) scheduleReminder(act model.Activity, at time.Time) reminder.Outcome {
	if m.reminders == nil {
		return reminder.OutcomeUnsupported
	}
	return m.reminders.Schedule(m.ctx, act, at)
}

func (m *Model) applyReminderOutcome(act model.Activity, outcome reminder.Outcome, at time.Time) {
	switch outcome {
	case reminder.OutcomeScheduled:
		m.Status = StatusBar{Text: fmt.Sprintf("reminder for %q at %s", act.Title, at.Format(remindLayout)), IsError: false}
	case reminder.OutcomeDenied:
		m.Status = StatusBar{Text: "reminder denied: notifications not authorized", IsError: true}
	case reminder.OutcomeUnsupported:
		m.Status = StatusBar{Text: "reminders unsupported on this platform", IsError: true}
	default:
		m.Status = StatusBar{Text: "reminder registration failed", IsError: true}
	}
}

func (m *Model) adjustCount(delta int) {
	act, ok := m.selectedActivity()
	if !ok {
		return
	}
	var err error
	if delta > 0 {
		err = m.store.Increment(m.ctx, act.ID)
	} else {
		err = m.store.Decrement(m.ctx, act.ID)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("count update failed: %v", err), IsError: true}
		return
	}
	if next, ok := m.store.Get(act.ID); ok {
		m.Status = StatusBar{Text: fmt.Sprintf("%s: x%d", next.Title, next.CompletionCount), IsError: false}
	}
}

func (m *Model) resetCount() {
	act, ok := m.selectedActivity()
	if !ok {
		return
	}
	if err := m.store.ResetCount(m.ctx, act.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("reset failed: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: counter reset", act.Title), IsError: false}
}

func (m Model) renderDetailView() string {
	act, ok := m.selectedActivity()
	if !ok {
		return "detail:\n(no selection)"
	}
	now := time.Now()
	series := history.Bucket(act.History, m.Detail.Range, now)
	chart := views.RenderBarChart(series, chartLabels(m.Detail.Range, now))

	reminderView := ""
	if m.Detail.RemindActive {
		reminderView = m.remindInput.View()
	}

	tbl := m.historyTable
	tbl.SetRows(historyRows(act.History, 6))

	return views.RenderDetailPanel(views.DetailPanelData{
		Title:           act.Title,
		DescriptionView: m.descViewport.View(),
		Category:        string(act.Category),
		Count:           act.CompletionCount,
		Total:           history.Total(act.History),
		Streak:          history.CurrentStreak(act.History, now),
		Range:           string(m.Detail.Range),
		ChartView:       chart,
		HistoryView:     tbl.View(),
		ReminderView:    reminderView,
	})
}

// chartLabels produces one axis label per bucket: weekday initials for the
// week range, sparse day numbers for the month range, month initials for
// the year range.
func chartLabels(r model.TimeRange, now time.Time) []string {
	n := r.BucketCount()
	labels := make([]string, n)
	switch r {
	case model.TimeRangeMonth:
		for i := 0; i < n; i++ {
			day := now.AddDate(0, 0, -(n - 1 - i))
			if i%5 == 0 || i == n-1 {
				labels[i] = strconv.Itoa(day.Day())
			}
		}
	case model.TimeRangeYear:
		anchor := history.StartOfMonth(now)
		for i := 0; i < n; i++ {
			month := anchor.AddDate(0, -(n - 1 - i), 0)
			labels[i] = month.Format("Jan")[:1]
		}
	default:
		for i := 0; i < n; i++ {
			day := now.AddDate(0, 0, -(n - 1 - i))
			labels[i] = day.Weekday().String()[:2]
		}
	}
	return labels
}
