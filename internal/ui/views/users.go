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

type userItem struct {
	user  models.User
	tasks int
}

func (i userItem) Title() string {
	return fmt.Sprintf("#%d %s", i.user.ID, i.user.Username)
}

func (i userItem) Description() string {
	return fmt.Sprintf("%s • %s • %d tasks • since %s",
		i.user.Email, i.user.Role, i.tasks, i.user.RegisteredAt.Local().Format("2006-01-02"))
}

func (i userItem) FilterValue() string { return i.user.Username }

type usersLoadedMsg struct {
	items []userItem
}

// UserListView lists users and their workload
type UserListView struct {
	users    *controllers.UserController
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
	deleteTarget     models.User
}

func NewUserListView(users *controllers.UserController) *UserListView {
	s := styles.NewStyles()
	delegate := &rowDelegate{styles: s, width: 80}

	return &UserListView{
		users:    users,
		list:     newList("Users", s, delegate),
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		form: newForm("New User",
			newField("Username", "Username", 50),
			newField("Email", "name@example.com", 100),
			newField("Role", "admin, manager or developer", 20),
		),
	}
}

func (v *UserListView) Name() string { return "Users" }

func (v *UserListView) Init() tea.Cmd {
	return v.loadUsers
}

func (v *UserListView) Busy() bool {
	return v.creating || v.confirmingDelete || v.list.FilterState() == list.Filtering
}

func (v *UserListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	contentWidth := styles.ContentWidth(width)
	v.delegate.width = contentWidth
	v.list.SetSize(contentWidth-4, height)
}

func (v *UserListView) loadUsers() tea.Msg {
	users, err := v.users.GetAllUsers()
	if err != nil {
		return StatusMsg{Err: err}
	}

	items := make([]userItem, 0, len(users))
	for _, u := range users {
		tasks, err := v.users.GetUserTasks(u.ID)
		if err != nil {
			return StatusMsg{Err: err}
		}
		items = append(items, userItem{user: u, tasks: len(tasks)})
	}
	return usersLoadedMsg{items: items}
}

func (v *UserListView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DataChangedMsg:
		return v.loadUsers

	case usersLoadedMsg:
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
			if item, ok := v.list.SelectedItem().(userItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.user
			}
			return nil
		case key.Matches(msg, v.keys.Status):
			if item, ok := v.list.SelectedItem().(userItem); ok {
				return v.cycleRole(item.user)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *UserListView) cycleRole(u models.User) tea.Cmd {
	next := nextInCycle(models.Roles, u.Role)
	if _, err := v.users.UpdateUser(u.ID, models.UserPatch{Role: &next}); err != nil {
		return reportErr(err)
	}
	return tea.Batch(dataChanged, report("%s is now %s", u.Username, next))
}

func (v *UserListView) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		if _, err := v.users.DeleteUser(v.deleteTarget.ID); err != nil {
			return reportErr(err)
		}
		return tea.Batch(dataChanged, report("deleted user %s", v.deleteTarget.Username))
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return nil
}

func (v *UserListView) updateCreating(msg tea.KeyMsg) tea.Cmd {
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

func (v *UserListView) save() tea.Cmd {
	username := v.form.value(0)
	if username == "" {
		v.form.err = "username is required"
		return nil
	}
	role := models.Role(v.form.value(2))
	if role == "" {
		role = models.RoleDeveloper
	}

	id, err := v.users.AddUser(username, v.form.value(1), role)
	if err != nil {
		v.form.err = err.Error()
		return nil
	}
	v.creating = false
	return tea.Batch(dataChanged, report("added user #%d", id))
}

func (v *UserListView) View() string {
	if v.confirmingDelete {
		return confirmView(v.styles, fmt.Sprintf("Delete user %q?", v.deleteTarget.Username), v.width, v.height)
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height)
	}
	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}
	if len(v.list.Items()) == 0 {
		return emptyView(v.styles, "No Users", "Press 'n' to add a user", v.width, v.height)
	}
	return styles.CenterView(v.list.View(), v.width, v.height)
}

func (v *UserListView) Help() []key.Binding {
	role := v.keys.Status
	role.SetHelp("s", "cycle role")
	return []key.Binding{v.keys.New, v.keys.Delete, role, v.keys.NextTab, v.keys.Quit}
}
