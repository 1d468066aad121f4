package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/history"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handleActivitiesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "down", "j":
		if m.Cursor < len(m.visibleActivities())-1 {
			m.Cursor++
		}
		m.syncSelection()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelection()
	case "J":
		m.moveSelected(1)
	case "K":
		m.moveSelected(-1)
	case "d":
		m.deleteSelected()
	case "c":
		m.cycleFilter()
	case "a":
		m.openAddForm()
	case "e":
		m.openEditForm()
	case "enter":
		if m.SelectedID != "" {
			m.CurrentView = ViewDetail
		}
	}
	return m
}

// moveSelected shifts the selected activity one slot within the current
// scope. Unfiltered it reorders the canonical collection; filtered it
// reorders only that category's subsequence, leaving every other
// activity's absolute position alone.
func (m *Model) moveSelected(delta int) {
	visible := m.visibleActivities()
	from := m.Cursor
	to := from + delta
	if from < 0 || from >= len(visible) || to < 0 || to >= len(visible) {
		return
	}

	var err error
	if m.Filter == "" {
		err = m.store.Move(m.ctx, from, to)
	} else {
		err = m.store.MoveWithinCategory(m.ctx, m.Filter, from, to)
	}
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("move failed: %v", err), IsError: true}
		return
	}
	m.Cursor = to
	m.syncSelection()
	m.Status = StatusBar{Text: "activity moved", IsError: false}
}

func (m *Model) deleteSelected() {
	act, ok := m.selectedActivity()
	if !ok {
		return
	}
	if err := m.store.Remove(m.ctx, act.ID); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("delete failed: %v", err), IsError: true}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", act.Title), IsError: false}
	}
	m.syncSelection()
}

// cycleFilter walks all -> fitness -> ... -> other -> all.
func (m *Model) cycleFilter() {
	cats := model.Categories()
	if m.Filter == "" {
		m.Filter = cats[0]
	} else {
		next := model.Category("")
		for i, c := range cats {
			if c == m.Filter && i+1 < len(cats) {
				next = cats[i+1]
			}
		}
		m.Filter = next
	}
	m.Cursor = 0
	m.syncSelection()
	label := string(m.Filter)
	if label == "" {
		label = "all"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", label), IsError: false}
}

func (m Model) renderActivitiesView() string {
	now := time.Now()
	visible := m.visibleActivities()
	rows := make([]views.ActivityRowData, 0, len(visible))
	for _, act := range visible {
		rows = append(rows, views.ActivityRowData{
			ID:       act.ID,
			Title:    act.Title,
			Category: string(act.Category),
			Count:    act.CompletionCount,
			Streak:   history.CurrentStreak(act.History, now),
		})
	}
	return views.RenderActivitiesPanel(views.ActivitiesPanelData{
		ListView:   m.activityList.View(),
		Filter:     string(m.Filter),
		Rows:       rows,
		SelectedID: m.SelectedID,
	})
}
