package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskdesk/internal/controllers"
	"github.com/tgienger/taskdesk/internal/models"
	"github.com/tgienger/taskdesk/internal/ui/keys"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

type taskItem struct {
	task    models.Task
	overdue bool
}

func (i taskItem) Title() string {
	title := fmt.Sprintf("#%d [%s] %s", i.task.ID, i.task.Priority, i.task.Title)
	if i.overdue {
		title += "  ⚠ overdue"
	}
	return title
}

func (i taskItem) Description() string {
	parts := []string{
		string(i.task.Status),
		"due " + i.task.DueDate.Local().Format("2006-01-02"),
	}
	if i.task.ProjectID != nil {
		parts = append(parts, fmt.Sprintf("project #%d", *i.task.ProjectID))
	}
	if i.task.AssigneeID != nil {
		parts = append(parts, fmt.Sprintf("user #%d", *i.task.AssigneeID))
	}
	return strings.Join(parts, " • ")
}

func (i taskItem) FilterValue() string { return i.task.Title }

type tasksLoadedMsg struct {
	tasks []models.Task
	now   time.Time
}

// TaskListView lists tasks with search and an overdue filter
type TaskListView struct {
	tasks    *controllers.TaskController
	list     list.Model
	delegate *rowDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	searching   bool
	searchInput textinput.Model
	query       string // applied search, empty when not searching
	overdueOnly bool

	creating bool
	form     *form

	confirmingDelete bool
	deleteTarget     models.Task
}

func NewTaskListView(tasks *controllers.TaskController) *TaskListView {
	s := styles.NewStyles()
	delegate := &rowDelegate{styles: s, width: 80}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	l := newList("Tasks", s, delegate)
	l.SetFilteringEnabled(false)

	return &TaskListView{
		tasks:       tasks,
		list:        l,
		delegate:    delegate,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		searchInput: search,
		form: newForm("New Task",
			newField("Title", "Task title", 200),
			newField("Description", "Description", 1000),
			newField("Priority", "1 high, 2 medium, 3 low", 1),
			newField("Due date", "YYYY-MM-DD", 10),
			newField("Project", "project id (optional)", 10),
			newField("Assignee", "user id (optional)", 10),
		),
	}
}

func (v *TaskListView) Name() string { return "Tasks" }

func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TaskListView) Busy() bool {
	return v.creating || v.confirmingDelete || v.searching
}

func (v *TaskListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	contentWidth := styles.ContentWidth(width)
	v.delegate.width = contentWidth
	v.list.SetSize(contentWidth-4, height-3)
}

func (v *TaskListView) loadTasks() tea.Msg {
	var tasks []models.Task
	var err error

	switch {
	case v.query != "":
		tasks, err = v.tasks.SearchTasks(v.query)
	case v.overdueOnly:
		tasks, err = v.tasks.GetOverdueTasks()
	default:
		tasks, err = v.tasks.GetAllTasks()
	}
	if err != nil {
		return StatusMsg{Err: err}
	}
	return tasksLoadedMsg{tasks: tasks, now: v.tasks.Now()}
}

func (v *TaskListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DataChangedMsg:
		return v.loadTasks

	case tasksLoadedMsg:
		items := make([]list.Item, len(msg.tasks))
		for i, t := range msg.tasks {
			items[i] = taskItem{task: t, overdue: t.IsOverdue(msg.now)}
		}
		v.loaded = true
		return v.list.SetItems(items)

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		if v.searching {
			return v.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v.form.reset()
		case key.Matches(msg, v.keys.Search):
			v.searching = true
			v.searchInput.Focus()
			return textinput.Blink
		case key.Matches(msg, v.keys.Back):
			if v.query != "" {
				v.query = ""
				v.searchInput.Reset()
				return v.loadTasks
			}
			return nil
		case key.Matches(msg, v.keys.Overdue):
			v.overdueOnly = !v.overdueOnly
			return v.loadTasks
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(taskItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.task
			}
			return nil
		case key.Matches(msg, v.keys.Status):
			if item, ok := v.list.SelectedItem().(taskItem); ok {
				return v.cycleStatus(item.task)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *TaskListView) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searching = false
		v.searchInput.Blur()
		return nil
	case key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		v.query = strings.TrimSpace(v.searchInput.Value())
		return v.loadTasks
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	return cmd
}

func (v *TaskListView) cycleStatus(t models.Task) tea.Cmd {
	next := nextInCycle(models.TaskStatuses, t.Status)
	if _, err := v.tasks.UpdateTaskStatus(t.ID, next); err != nil {
		return reportErr(err)
	}
	return tea.Batch(dataChanged, report("%s is now %s", t.Title, next))
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if _, err := v.tasks.DeleteTask(v.deleteTarget.ID); err != nil {
			return reportErr(err)
		}
		return tea.Batch(dataChanged, report("deleted task %s", v.deleteTarget.Title))
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return nil
}

func (v *TaskListView) updateCreating(msg tea.KeyMsg) tea.Cmd {
	result, cmd := v.form.update(msg, v.keys)
	switch result {
	case formCancelled:
		v.creating = false
		return nil
	case formSubmitted:
		return v.save()
	}
	return cmd
}

func (v *TaskListView) save() tea.Cmd {
	title := v.form.value(0)
	if title == "" {
		v.form.err = "title is required"
		return nil
	}
	priority, err := strconv.Atoi(v.form.value(2))
	if err != nil {
		v.form.err = "priority must be 1, 2 or 3"
		return nil
	}
	due, err := parseDate(v.form.value(3))
	if err != nil {
		v.form.err = "due date must be YYYY-MM-DD"
		return nil
	}
	projectID, err := parseRef(v.form.value(4))
	if err != nil {
		v.form.err = "project must be a numeric id"
		return nil
	}
	assigneeID, err := parseRef(v.form.value(5))
	if err != nil {
		v.form.err = "assignee must be a numeric id"
		return nil
	}

	id, err := v.tasks.AddTask(title, v.form.value(1), models.Priority(priority), due, projectID, assigneeID)
	if err != nil {
		v.form.err = err.Error()
		return nil
	}
	v.creating = false
	return tea.Batch(dataChanged, report("added task #%d", id))
}

func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return confirmView(v.styles, fmt.Sprintf("Delete task %q?", v.deleteTarget.Title), v.width, v.height)
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height)
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	body := v.list.View()
	if len(v.list.Items()) == 0 {
		body = emptyView(v.styles, "No Tasks", v.emptyHint(), v.width, v.height-3)
	}
	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, v.renderSearchBar(), body), v.width, v.height)
}

func (v *TaskListView) emptyHint() string {
	switch {
	case v.query != "":
		return fmt.Sprintf("Nothing matches %q • esc to clear", v.query)
	case v.overdueOnly:
		return "Nothing is overdue • o to show all"
	}
	return "Press 'n' to create a task"
}

func (v *TaskListView) renderSearchBar() string {
	s := v.styles
	width := clamp(styles.ContentWidth(v.width)-6, 20, 60)

	filter := s.FilterButton.Render("all")
	if v.overdueOnly {
		filter = s.TaskOverdue.Render("overdue")
	}

	input := v.searchInput.View()
	if !v.searching && v.query == "" {
		input = s.TitleMuted.Render("/ to search")
	}
	return s.FilterBar.Width(width).Render(input + "  " + filter)
}

func (v *TaskListView) Help() []key.Binding {
	return []key.Binding{v.keys.New, v.keys.Delete, v.keys.Status, v.keys.Search, v.keys.Overdue, v.keys.NextTab, v.keys.Quit}
}
