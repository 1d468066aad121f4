package update

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/reminder"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/store"
	"github.com/sandeepkv93/habitd/internal/views"
)

type View string

const (
	ViewActivities View = "Activities"
	ViewDetail     View = "Detail"
	ViewForm       View = "Form"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

type FormMode string

const (
	FormModeAdd  FormMode = "add"
	FormModeEdit FormMode = "edit"
)

type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
)

type FormState struct {
	Mode      FormMode
	EditingID string
	Focus     FormField
	Category  model.Category
	Err       string
}

type DetailState struct {
	Range        model.TimeRange
	RemindActive bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Cursor      int
	SelectedID  string
	// Filter narrows the list to one category; empty means all.
	Filter      model.Category
	Detail      DetailState
	Form        FormState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	ReminderLog []scheduler.Trigger

	DesktopEnabled bool

	store     *store.Store
	reminders *reminder.Scheduler
	engine    *scheduler.Engine
	notifier  notify.Notifier
	ctx       context.Context

	// Bubble components used for rich TUI controls
	activityList list.Model
	historyTable table.Model
	titleInput   textinput.Model
	descInput    textinput.Model
	commandInput textinput.Model
	remindInput  textinput.Model
	descViewport viewport.Model
	helpModel    help.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderFiredMsg struct {
	Trigger scheduler.Trigger
}

func NewModel(st *store.Store) Model {
	m := Model{
		CurrentView: ViewActivities,
		Detail: DetailState{
			Range: model.TimeRangeWeek,
		},
		Form: FormState{
			Category: model.CategoryOther,
		},
		Keys: GlobalKeyMap{
			Help: "?",
			Quit: "q",
		},
		store:    st,
		notifier: notify.NoopNotifier{},
		ctx:      context.Background(),
	}
	m.initBubbleComponents()
	m.syncSelection()
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(st *store.Store, rem *reminder.Scheduler, engine *scheduler.Engine, notifier notify.Notifier, cfg RuntimeConfig) Model {
	m := NewModel(st)
	m.reminders = rem
	m.engine = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.activityList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.activityList.Title = "Activities (list)"
	m.activityList.SetShowHelp(false)
	m.activityList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Done", Width: 6},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(6))

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.CharLimit = 128
	m.titleInput.Width = 42

	m.descInput = textinput.New()
	m.descInput.Prompt = "desc> "
	m.descInput.CharLimit = 256
	m.descInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.remindInput = textinput.New()
	m.remindInput.Prompt = "remind at> "
	m.remindInput.Placeholder = "2026-03-01 09:00"
	m.remindInput.CharLimit = 32
	m.remindInput.Width = 28

	m.helpModel = help.New()
	m.descViewport = viewport.New(54, 8)
}

// visibleActivities is the list the cursor walks: the full canonical order,
// or one category's subsequence when a filter is set.
func (m Model) visibleActivities() []model.Activity {
	all := m.store.List()
	if m.Filter == "" {
		return all
	}
	out := make([]model.Activity, 0, len(all))
	for _, act := range all {
		if act.Category == m.Filter {
			out = append(out, act)
		}
	}
	return out
}

func (m Model) selectedActivity() (model.Activity, bool) {
	if m.SelectedID == "" {
		return model.Activity{}, false
	}
	return m.store.Get(m.SelectedID)
}

func (m *Model) syncSelection() {
	visible := m.visibleActivities()
	if len(visible) == 0 {
		m.Cursor = 0
		m.SelectedID = ""
		return
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	m.SelectedID = visible[m.Cursor].ID
}

func (m *Model) syncBubbleData() {
	visible := m.visibleActivities()
	items := make([]list.Item, 0, len(visible))
	for _, act := range visible {
		items = append(items, listItem{
			title:       act.Title,
			description: string(act.Category) + " | x" + strconv.Itoa(act.CompletionCount),
		})
	}
	m.activityList.SetItems(items)
	if len(items) > 0 {
		m.activityList.Select(m.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Detail.RemindActive {
		m.remindInput.Focus()
	}

	if act, ok := m.selectedActivity(); ok {
		md := act.Description
		if strings.TrimSpace(md) == "" {
			md = "_No description_"
		}
		m.descViewport.SetContent(views.RenderMarkdown(md))
		m.historyTable.SetRows(historyRows(act.History, 6))
	}
}

// historyRows lists the most recent recorded days, newest first.
func historyRows(h model.History, limit int) []table.Row {
	days := make([]string, 0, len(h))
	for day := range h {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > limit {
		days = days[:limit]
	}
	rows := make([]table.Row, 0, len(days))
	for _, day := range days {
		rows = append(rows, table.Row{day, strconv.Itoa(h[day])})
	}
	return rows
}
