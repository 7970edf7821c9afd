package views

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskdesk/internal/ui/keys"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return formField{label: label, input: in}
}

// form is a column of text inputs followed by a submit button
type form struct {
	title    string
	fields   []formField
	focusIdx int // len(fields) is the button
	err      string
}

func newForm(title string, fields ...formField) *form {
	return &form{title: title, fields: fields}
}

func (f *form) reset() tea.Cmd {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.err = ""
	f.focusIdx = 0
	f.updateFocus()
	return textinput.Blink
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) updateFocus() {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	if f.focusIdx < len(f.fields) {
		f.fields[f.focusIdx].input.Focus()
	}
}

type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

func (f *form) update(msg tea.KeyMsg, km keys.KeyMap) (formResult, tea.Cmd) {
	n := len(f.fields) + 1
	switch {
	case key.Matches(msg, km.Back):
		return formCancelled, nil

	case key.Matches(msg, km.Save):
		return formSubmitted, nil

	case msg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + n - 1) % n
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, km.Tab):
		f.focusIdx = (f.focusIdx + 1) % n
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, km.Enter):
		if f.focusIdx == len(f.fields) {
			return formSubmitted, nil
		}
		f.focusIdx++
		f.updateFocus()
		return formEditing, nil
	}

	if f.focusIdx >= len(f.fields) {
		return formEditing, nil
	}
	var cmd tea.Cmd
	f.fields[f.focusIdx].input, cmd = f.fields[f.focusIdx].input.Update(msg)
	return formEditing, cmd
}

func (f *form) view(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{s.Title.Render(f.title), ""}
	for i, fld := range f.fields {
		style := s.Input
		if i == f.focusIdx {
			style = s.InputFocused
		}
		rows = append(rows, fld.label+":", style.Width(inputWidth).Render(fld.input.View()))
	}

	btn := s.Button
	if f.focusIdx == len(f.fields) {
		btn = s.ButtonFocused
	}
	rows = append(rows, "", btn.Render(" Save "))
	if f.err != "" {
		rows = append(rows, "", s.StatusBarError.Render(f.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, width, height)
}

// parseDate reads YYYY-MM-DD as the end of that local day, so a date of
// today is still in the future
func parseDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.Local), nil
}

// parseRef reads an optional numeric id
func parseRef(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
