package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskdesk/internal/controllers"
	"github.com/tgienger/taskdesk/internal/ui/keys"
	"github.com/tgienger/taskdesk/internal/ui/styles"
	"github.com/tgienger/taskdesk/internal/ui/views"
)

const lastTabSetting = "last_tab"

// Settings persists small bits of UI state between runs
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Controllers bundles what the views call into
type Controllers struct {
	Users    *controllers.UserController
	Projects *controllers.ProjectController
	Tasks    *controllers.TaskController
}

type App struct {
	settings Settings
	tabs     []views.Tab
	current  int
	styles   *styles.Styles
	keys     keys.KeyMap
	status   views.StatusMsg
	width    int
	height   int
}

// Creates a new application
func NewApp(c Controllers, settings Settings) *App {
	return &App{
		settings: settings,
		tabs: []views.Tab{
			views.NewProjectListView(c.Projects, c.Tasks),
			views.NewTaskListView(c.Tasks),
			views.NewUserListView(c.Users),
		},
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	// Reopen the last tab
	if last, err := a.settings.GetSetting(lastTabSetting); err == nil && last != "" {
		if i, err := strconv.Atoi(last); err == nil && i >= 0 && i < len(a.tabs) {
			a.current = i
		}
	}

	cmds := make([]tea.Cmd, len(a.tabs))
	for i, t := range a.tabs {
		cmds[i] = t.Init()
	}
	return tea.Batch(cmds...)
}

func (a *App) switchTab(i int) {
	a.current = i
	a.status = views.StatusMsg{}
	a.settings.SetSetting(lastTabSetting, strconv.Itoa(i))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, t := range a.tabs {
			t.SetSize(msg.Width, msg.Height-4)
		}
		return a, nil

	case views.StatusMsg:
		a.status = msg
		return a, nil

	case tea.KeyMsg:
		active := a.tabs[a.current]
		if !active.Busy() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.NextTab):
				a.switchTab((a.current + 1) % len(a.tabs))
				return a, nil
			case msg.String() == "shift+tab" || msg.String() == "left" || msg.String() == "h":
				a.switchTab((a.current + len(a.tabs) - 1) % len(a.tabs))
				return a, nil
			}
		}
		return a, active.Update(msg)
	}

	// Everything else (loads, reloads) goes to every tab
	cmds := make([]tea.Cmd, len(a.tabs))
	for i, t := range a.tabs {
		cmds[i] = t.Update(msg)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTabs(),
		"",
		a.tabs[a.current].View(),
		a.renderStatus(),
	)
}

func (a *App) renderTabs() string {
	names := make([]string, len(a.tabs))
	for i, t := range a.tabs {
		style := a.styles.Tab
		if i == a.current {
			style = a.styles.TabActive
		}
		names[i] = style.Render(t.Name())
	}
	return styles.CenterView(lipgloss.JoinHorizontal(lipgloss.Top, names...), a.width, 1)
}

func (a *App) renderStatus() string {
	if a.status.Err != nil {
		return a.styles.StatusBarError.Render("error: " + a.status.Err.Error())
	}
	if a.status.Text != "" {
		return a.styles.StatusBar.Render(a.status.Text)
	}

	bindings := a.tabs[a.current].Help()
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = fmt.Sprintf("%s %s", a.styles.HelpKey.Render(h.Key), h.Desc)
	}
	return a.styles.Help.Render(strings.Join(parts, " • "))
}
