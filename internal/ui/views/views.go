package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

// Tab is one screen of the tab bar
type Tab interface {
	Name() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Busy is true while a form, prompt or search owns the keyboard
	Busy() bool
	Help() []key.Binding
}

// StatusMsg is shown in the app status line
type StatusMsg struct {
	Text string
	Err  error
}

// DataChangedMsg asks every tab to reload
type DataChangedMsg struct{}

func reportErr(err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Err: err} }
}

func report(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func dataChanged() tea.Msg {
	return DataChangedMsg{}
}

// rowDelegate draws a list item as a title line and a dimmed detail line
type rowDelegate struct {
	styles *styles.Styles
	width  int
}

func (d *rowDelegate) Height() int                               { return 2 }
func (d *rowDelegate) Spacing() int                              { return 1 }
func (d *rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d *rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(list.DefaultItem)
	if !ok {
		return
	}

	width := max(d.width-4, 20)
	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(styles.Current.Muted).Width(width)
	if index == m.Index() {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.Muted).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(it.Title()), descStyle.Render(it.Description()))
}

func newList(title string, s *styles.Styles, delegate *rowDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// confirmView renders a yes/no prompt
func confirmView(s *styles.Styles, question string, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Danger).Render(question),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// emptyView is shown when a list has no items
func emptyView(s *styles.Styles, title, hint string, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render(title),
		"",
		s.TitleMuted.Render(hint),
	)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

func nextInCycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
