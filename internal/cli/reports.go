package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/tgienger/taskdesk/internal/models"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

func newOverdueCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List tasks whose due date has passed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(func() error {
				tasks, err := s.tasks.GetOverdueTasks()
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), tasks)
			})
		},
	}
}

func newProgressCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <project-id>",
		Short: "Show the share of completed tasks in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}
			return s.run(func() error {
				progress, err := s.projects.GetProjectProgress(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.2f%%\n", progress)
				return nil
			})
		},
	}
}

func newSearchCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find tasks by title or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(func() error {
				tasks, err := s.tasks.SearchTasks(strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printTasks(cmd.OutOrStdout(), tasks)
			})
		},
	}
}

func printTasks(out io.Writer, tasks []models.Task) error {
	const statusCol = 3
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "PRIORITY", "STATUS", "DUE").
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			if col == statusCol && row < len(tasks) {
				return cell.Foreground(styles.StatusColor(string(tasks[row].Status)))
			}
			return cell
		})
	for _, task := range tasks {
		t.Row(
			strconv.FormatInt(task.ID, 10),
			task.Title,
			task.Priority.String(),
			string(task.Status),
			task.DueDate.Local().Format("2006-01-02"),
		)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}
