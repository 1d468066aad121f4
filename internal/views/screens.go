package views

import (
	"fmt"
	"strings"
)

type ActivityRowData struct {
	ID       string
	Title    string
	Category string
	Count    int
	Streak   int
}

type ActivitiesPanelData struct {
	ListView   string
	Filter     string
	Rows       []ActivityRowData
	SelectedID string
}

type DetailPanelData struct {
	Title           string
	DescriptionView string
	Category        string
	Count           int
	Total           int
	Streak          int
	Range           string
	ChartView       string
	HistoryView     string
	ReminderView    string
}

type FormPanelData struct {
	Mode      string
	TitleView string
	DescView  string
	Category  string
	FocusHint string
	ErrorText string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
}

func RenderActivitiesPanel(data ActivitiesPanelData) string {
	var b strings.Builder
	b.WriteString("activities")
	if data.Filter != "" {
		b.WriteString(fmt.Sprintf(" [%s]", data.Filter))
	}
	b.WriteString(":\n")
	b.WriteString("actions: [enter]open [a]dd [e]dit [d]elete [J/K]move [c]ategory\n")
	b.WriteString(data.ListView + "\n")
	for _, row := range data.Rows {
		marker := "  "
		if row.ID == data.SelectedID {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-26s %-9s x%-4d", marker, clip(row.Title, 26), row.Category, row.Count))
		if row.Streak > 0 {
			b.WriteString(fmt.Sprintf(" %dd streak", row.Streak))
		}
		b.WriteString("\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no activities yet — press a to add one)\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderDetailPanel(data DetailPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s)\n", data.Title, data.Category))
	if data.DescriptionView != "" {
		b.WriteString(data.DescriptionView + "\n")
	}
	b.WriteString(fmt.Sprintf("count: %d | total recorded: %d | streak: %dd\n", data.Count, data.Total, data.Streak))
	b.WriteString("actions: [+]inc [-]dec [0]reset [w/m/y]range [r]emind [esc]back\n")
	b.WriteString(fmt.Sprintf("%s chart:\n", data.Range))
	b.WriteString(data.ChartView + "\n")
	if data.HistoryView != "" {
		b.WriteString("recent days:\n")
		b.WriteString(data.HistoryView + "\n")
	}
	if data.ReminderView != "" {
		b.WriteString(data.ReminderView + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	b.WriteString(data.Mode + " activity:\n")
	b.WriteString("title: " + data.TitleView + "\n")
	b.WriteString("description: " + data.DescView + "\n")
	b.WriteString(fmt.Sprintf("category: < %s >\n", data.Category))
	b.WriteString("actions: [tab]next field [left/right]category [enter]save [esc]cancel\n")
	if data.FocusHint != "" {
		b.WriteString("editing: " + data.FocusHint + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", data.CurrentView))
	for _, binding := range data.Bindings {
		b.WriteString("  " + binding + "\n")
	}
	return strings.TrimSpace(b.String())
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
