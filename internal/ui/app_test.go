package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskdesk/internal/controllers"
	"github.com/tgienger/taskdesk/internal/db"
)

func newTestApp(t *testing.T) (*App, *db.DB) {
	t.Helper()
	store, err := db.New(db.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	app := NewApp(Controllers{
		Users:    controllers.NewUserController(store, nil),
		Projects: controllers.NewProjectController(store, nil),
		Tasks:    controllers.NewTaskController(store, nil),
	}, store)
	return app, store
}

func TestAppSwitchesTabs(t *testing.T) {
	app, store := newTestApp(t)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, app.current)

	last, err := store.GetSetting(lastTabSetting)
	require.NoError(t, err)
	assert.Equal(t, "1", last)

	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	app.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 2, app.current, "switching wraps around")
	assert.Contains(t, app.View(), "Users")
}

func TestAppRestoresLastTab(t *testing.T) {
	app, store := newTestApp(t)
	require.NoError(t, store.SetSetting(lastTabSetting, "2"))

	app.Init()
	assert.Equal(t, 2, app.current)

	require.NoError(t, store.SetSetting(lastTabSetting, "7"))
	other, _ := newTestApp(t)
	other.settings = store
	other.Init()
	assert.Equal(t, 0, other.current, "out of range values are ignored")
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppKeepsKeysInBusyTab(t *testing.T) {
	app, _ := newTestApp(t)

	// open the new project form, then type a q into it
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.True(t, app.tabs[0].Busy())
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, app.current, "tab moves between form fields instead")
}
