package cli

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/taskdesk/internal/config"
	"github.com/tgienger/taskdesk/internal/controllers"
	"github.com/tgienger/taskdesk/internal/db"
	"github.com/tgienger/taskdesk/internal/ui"
	"github.com/tgienger/taskdesk/internal/ui/styles"
)

// session is the state shared by commands during one run
type session struct {
	configFile string
	dbPath     string
	logLevel   string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     *db.DB
	users     *controllers.UserController
	projects  *controllers.ProjectController
	tasks     *controllers.TaskController
}

// open loads configuration and connects controllers to the store
func (s *session) open() error {
	cfg, err := config.Load(s.configFile)
	if err != nil {
		return err
	}
	if s.dbPath != "" {
		cfg.DBPath = s.dbPath
	}
	if s.logLevel != "" {
		cfg.Log.Level = s.logLevel
	}
	if err := styles.Use(cfg.Theme); err != nil {
		return err
	}

	logger, closer, err := cfg.Logger()
	if err != nil {
		return err
	}

	store, err := db.New(cfg.DBPath, logger)
	if err != nil {
		closer.Close()
		return err
	}

	s.cfg = cfg
	s.logger = logger
	s.logCloser = closer
	s.store = store
	s.users = controllers.NewUserController(store, logger)
	s.projects = controllers.NewProjectController(store, logger)
	s.tasks = controllers.NewTaskController(store, logger)
	return nil
}

// run opens the session for the duration of fn
func (s *session) run(fn func() error) error {
	if err := s.open(); err != nil {
		return err
	}
	defer s.close()
	return fn()
}

func (s *session) close() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	if s.logCloser != nil {
		s.logCloser.Close()
		s.logCloser = nil
	}
}

func NewRootCommand() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "taskdesk",
		Short: "Manage users, projects and tasks from the terminal",
		Long: `taskdesk keeps users, projects and tasks in a local SQLite file.

Run without arguments to open the interactive view, or use one of the
report commands to print overdue tasks, project progress or search results.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(func() error { return runUI(s) })
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.configFile, "config", "", "config file (default: taskdesk.yaml)")
	rootCmd.PersistentFlags().StringVar(&s.dbPath, "db", "", "path to the sqlite database (\":memory:\" for a throwaway store)")
	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newOverdueCommand(s))
	rootCmd.AddCommand(newProgressCommand(s))
	rootCmd.AddCommand(newSearchCommand(s))

	return rootCmd
}

func runUI(s *session) error {
	app := ui.NewApp(ui.Controllers{
		Users:    s.users,
		Projects: s.projects,
		Tasks:    s.tasks,
	}, s.store)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
