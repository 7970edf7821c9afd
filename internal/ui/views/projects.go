package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/taskdesk/internal/controllers"
	"github.com/tgienger/taskdesk/internal/models"
	"github.com/tgienger/taskdesk/internal/ui/keys"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

type projectItem struct {
	project  models.Project
	progress float64
	tasks    int
}

func (i projectItem) Title() string {
	return fmt.Sprintf("#%d %s", i.project.ID, i.project.Name)
}

func (i projectItem) Description() string {
	return fmt.Sprintf("%s • %s → %s • %d tasks • %.2f%% done",
		i.project.Status,
		i.project.StartDate.Local().Format("2006-01-02"),
		i.project.EndDate.Local().Format("2006-01-02"),
		i.tasks, i.progress)
}

func (i projectItem) FilterValue() string { return i.project.Name }

type projectsLoadedMsg struct {
	items []projectItem
}

// ProjectListView lists projects with their progress
type ProjectListView struct {
	projects *controllers.ProjectController
	tasks    *controllers.TaskController
	list     list.Model
	delegate *rowDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	creating bool
	form     *form

	confirmingDelete bool
	deleteTarget     models.Project
}

func NewProjectListView(projects *controllers.ProjectController, tasks *controllers.TaskController) *ProjectListView {
	s := styles.NewStyles()
	delegate := &rowDelegate{styles: s, width: 80}

	return &ProjectListView{
		projects: projects,
		tasks:    tasks,
		list:     newList("Projects", s, delegate),
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		form: newForm("New Project",
			newField("Name", "Project name", 100),
			newField("Description", "Description (optional)", 200),
			newField("Start date", "YYYY-MM-DD", 10),
			newField("End date", "YYYY-MM-DD", 10),
		),
	}
}

func (v *ProjectListView) Name() string { return "Projects" }

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects
}

func (v *ProjectListView) Busy() bool {
	return v.creating || v.confirmingDelete || v.list.FilterState() == list.Filtering
}

func (v *ProjectListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	contentWidth := styles.ContentWidth(width)
	v.delegate.width = contentWidth
	v.list.SetSize(contentWidth-4, height)
}

func (v *ProjectListView) loadProjects() tea.Msg {
	projects, err := v.projects.GetAllProjects()
	if err != nil {
		return StatusMsg{Err: err}
	}

	items := make([]projectItem, 0, len(projects))
	for _, p := range projects {
		progress, err := v.projects.GetProjectProgress(p.ID)
		if err != nil {
			return StatusMsg{Err: err}
		}
		tasks, err := v.tasks.GetTasksByProject(p.ID)
		if err != nil {
			return StatusMsg{Err: err}
		}
		items = append(items, projectItem{project: p, progress: progress, tasks: len(tasks)})
	}
	return projectsLoadedMsg{items: items}
}

func (v *ProjectListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DataChangedMsg:
		return v.loadProjects

	case projectsLoadedMsg:
		items := make([]list.Item, len(msg.items))
		for i, it := range msg.items {
			items[i] = it
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
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v.form.reset()
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.project
			}
			return nil
		case key.Matches(msg, v.keys.Status):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v.cycleStatus(item.project)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *ProjectListView) cycleStatus(p models.Project) tea.Cmd {
	next := nextInCycle(models.ProjectStatuses, p.Status)
	if _, err := v.projects.UpdateProjectStatus(p.ID, next); err != nil {
		return reportErr(err)
	}
	return tea.Batch(dataChanged, report("%s is now %s", p.Name, next))
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if _, err := v.projects.DeleteProject(v.deleteTarget.ID); err != nil {
			return reportErr(err)
		}
		return tea.Batch(dataChanged, report("deleted project %s", v.deleteTarget.Name))
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return nil
}

func (v *ProjectListView) updateCreating(msg tea.KeyMsg) tea.Cmd {
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

func (v *ProjectListView) save() tea.Cmd {
	name := v.form.value(0)
	if name == "" {
		v.form.err = "name is required"
		return nil
	}
	start, err := parseDate(v.form.value(2))
	if err != nil {
		v.form.err = "start date must be YYYY-MM-DD"
		return nil
	}
	end, err := parseDate(v.form.value(3))
	if err != nil {
		v.form.err = "end date must be YYYY-MM-DD"
		return nil
	}

	id, err := v.projects.AddProject(name, v.form.value(1), start, end)
	if err != nil {
		v.form.err = err.Error()
		return nil
	}
	v.creating = false
	return tea.Batch(dataChanged, report("added project #%d", id))
}

func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return confirmView(v.styles, fmt.Sprintf("Delete project %q?", v.deleteTarget.Name), v.width, v.height)
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height)
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if len(v.list.Items()) == 0 {
		return emptyView(v.styles, "No Projects", "Press 'n' to create your first project", v.width, v.height)
	}
	return styles.CenterView(v.list.View(), v.width, v.height)
}

// Help lists the keys of this tab
func (v *ProjectListView) Help() []key.Binding {
	return []key.Binding{v.keys.New, v.keys.Delete, v.keys.Status, v.keys.NextTab, v.keys.Quit}
}
