package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"todo-sync/internal/config"
	"todo-sync/internal/logging"
)

// AppFactory builds the application once the configuration is final.
// The returned function releases what the app holds.
type AppFactory func(ctx context.Context, cfg *config.Config) (*App, func(), error)

// DefaultAppFactory opens the configured store and wires the HTTP client and logger
func DefaultAppFactory(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	repo, err := config.CreateRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	logging.SetDefault(logger)
	logging.Debugf("store driver=%s profile=%s api=%s\n", cfg.Store.Driver, cfg.Store.Profile, cfg.API.BaseURL)

	app := NewApp(cfg, repo, DefaultClientFactory, logger)
	return app, func() { repo.Close() }, nil
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	newApp AppFactory
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, newApp AppFactory) *RootCommand {
	if newApp == nil {
		newApp = DefaultAppFactory
	}
	root := &RootCommand{
		config: cfg,
		newApp: newApp,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A command-line client for the playground to-do API",
		Long: `todo keeps a local view of one user's to-do list in step with the
playground API (https://playground.4geeks.com/todo).

Every change is sent to the server first; the local list only changes once
the server accepted it. When a request fails the error is kept and shown
until the next failure replaces it or you run 'todo clear-error'.

EXAMPLES:
  todo users                               # List users known to the API
  todo select ana                          # Select ana and load her tasks
  todo add buy milk                        # Add a task for the selected user
  todo done 12                             # Mark task 12 as done
  todo delete 12                           # Delete task 12
  todo clear                               # Delete every task of the selected user
  todo save --file tasks.json              # Replace the whole list with a file's tasks
  todo ui                                  # Open the interactive screen

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file:
    TODO_CONFIG_FILE                       TOML file (default: ~/.todo/config.toml)

  API Configuration:
    TODO_API_BASE_URL                      API root (default: https://playground.4geeks.com/todo)
    TODO_API_TIMEOUT                       Request timeout (default: 30s)

  Store Configuration:
    TODO_STORE_DRIVER                      sqlite, postgres or memory (default: sqlite)
    TODO_STORE_DIR                         SQLite directory (default: ~/.todo)
    TODO_STORE_FILENAME                    SQLite filename (default: state.db)
    TODO_STORE_DSN                         Postgres connection string
    TODO_PROFILE                           Saved view state to use (default: default)

  Sync Configuration:
    TODO_DELETE_CONCURRENCY                Parallel deletes for 'clear', 0 = unbounded (default: 4)
    TODO_DELETE_MODE                       all-or-nothing or best-effort (default: all-or-nothing)

  Validation Configuration:
    TODO_VALIDATION_LABEL_MAX              Longest task label 'add' accepts (default: 255)
    TODO_VALIDATION_USER_MAX               Longest user name 'select' accepts (default: 64)

  Logging Configuration:
    TODO_LOG_LEVEL                         debug, info, warn, error (default: warn)
    TODO_LOG_FORMAT                        text, json, logfmt (default: text)
    TODO_DEBUG                             Print debug traces when set

  Application Configuration:
    TODO_APP_TIMEOUT                       Command timeout (default: 60s)
    TODO_APP_VERBOSE                       Enable verbose output (default: false)

GETTING HELP:
  todo [command] --help                    # Get help for any specific command
  todo completion bash                     # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// API configuration
	flags.String("api-url", "", "API base URL (overrides TODO_API_BASE_URL)")
	flags.Duration("api-timeout", 0, "Request timeout (overrides TODO_API_TIMEOUT)")

	// Store configuration
	flags.String("store", "", "Store driver: sqlite, postgres or memory (overrides TODO_STORE_DRIVER)")
	flags.String("store-dir", "", "SQLite directory (overrides TODO_STORE_DIR)")
	flags.String("store-dsn", "", "Postgres connection string (overrides TODO_STORE_DSN)")
	flags.String("profile", "", "Saved view state to use (overrides TODO_PROFILE)")

	// Sync configuration
	flags.Int("delete-concurrency", 0, "Parallel deletes for clear, 0 = unbounded (overrides TODO_DELETE_CONCURRENCY)")
	flags.String("delete-mode", "", "all-or-nothing or best-effort (overrides TODO_DELETE_MODE)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TODO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TODO_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TODO_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		Long:  "Fetch the users known to the API. The selected user is marked with '*'.",
		Args:  cobra.NoArgs,
		RunE:  r.runE("users"),
	}

	selectCmd := &cobra.Command{
		Use:   "select <name>",
		Short: "Select a user and load their tasks",
		Long: `Select a user and load their tasks. Any name listed by 'todo users' works;
quote names with spaces. Names must not be blank, longer than 64 characters
(TODO_VALIDATION_USER_MAX) or contain control characters.`,
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("select"),
	}

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Reload and show the selected user's tasks",
		Args:  cobra.NoArgs,
		RunE:  r.runE("tasks"),
	}

	addCmd := &cobra.Command{
		Use:   "add <label...>",
		Short: "Add a task for the selected user",
		Long: `Add a task for the selected user. All arguments are joined into one label.

The label is checked before anything is sent: it must not be blank, must be at
most 255 characters long (TODO_VALIDATION_LABEL_MAX) and must not contain
newlines, tabs or other control characters. The interactive screen only skips
blank labels.

Example:
  todo add buy milk`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runE("add"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one task",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("delete"),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task of the selected user",
		Long: `Delete every task of the selected user, several requests at a time.

In all-or-nothing mode (the default) the local list is kept unless every
delete succeeded. In best-effort mode the tasks that were deleted are removed.
Deletes that succeeded on the server are never undone.`,
		Args: cobra.NoArgs,
		RunE: r.runE("clear"),
	}

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("done"),
	}

	undoCmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a task as not done",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runE("undo"),
	}

	saveCmd := &cobra.Command{
		Use:   "save --file <tasks.json>",
		Short: "Replace the selected user's tasks with a file's tasks",
		Long: `Replace the selected user's whole task list with the tasks in a JSON file.

The file holds an array of {"id", "label", "is_done"} objects; use "-" for stdin.

Example:
  todo save --file tasks.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return r.run(cmd, "save", []string{file})
		},
	}
	saveCmd.Flags().StringP("file", "f", "", "JSON file of tasks, - for stdin")
	saveCmd.MarkFlagRequired("file")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the saved view state without contacting the API",
		Args:  cobra.NoArgs,
		RunE:  r.runE("status"),
	}

	clearErrorCmd := &cobra.Command{
		Use:   "clear-error",
		Short: "Dismiss the saved error message",
		Args:  cobra.NoArgs,
		RunE:  r.runE("clear-error"),
	}

	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive screen",
		Long: `Open the interactive screen.

Keys:
  tab / shift+tab   switch between users, tasks and the input line
  up / down         move
  enter             select a user, or add the typed task
  x                 delete the task under the cursor
  space             toggle done
  D                 delete all tasks
  l                 reload tasks
  r                 reload users
  e                 clear the error
  q / ctrl+c        quit`,
		Args: cobra.NoArgs,
		RunE: r.runE("ui"),
	}

	// Add all subcommands to root
	r.cmd.AddCommand(
		usersCmd,
		selectCmd,
		tasksCmd,
		addCmd,
		deleteCmd,
		clearCmd,
		doneCmd,
		undoCmd,
		saveCmd,
		statusCmd,
		clearErrorCmd,
		uiCmd,
	)
}

func (r *RootCommand) runE(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return r.run(cmd, name, args)
	}
}

// run builds the app and executes one registered command
func (r *RootCommand) run(cmd *cobra.Command, name string, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := parent, context.CancelFunc(func() {})
	// The interactive screen runs until the user quits
	if name != "ui" {
		ctx, cancel = context.WithTimeout(parent, r.getAppTimeout())
	}
	defer cancel()

	app, cleanup, err := r.newApp(ctx, r.config)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}
	app.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	app.SetInput(cmd.InOrStdin())

	return app.Run(ctx, append([]string{name}, args...))
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// API configuration
	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		overrides.APIBaseURL = &v
	}
	if flags.Changed("api-timeout") {
		v, _ := flags.GetDuration("api-timeout")
		overrides.APITimeout = &v
	}

	// Store configuration
	if flags.Changed("store") {
		v, _ := flags.GetString("store")
		overrides.StoreDriver = &v
	}
	if flags.Changed("store-dir") {
		v, _ := flags.GetString("store-dir")
		overrides.StoreDir = &v
	}
	if flags.Changed("store-dsn") {
		v, _ := flags.GetString("store-dsn")
		overrides.StoreDSN = &v
	}
	if flags.Changed("profile") {
		v, _ := flags.GetString("profile")
		overrides.Profile = &v
	}

	// Sync configuration
	if flags.Changed("delete-concurrency") {
		v, _ := flags.GetInt("delete-concurrency")
		overrides.DeleteConcurrency = &v
	}
	if flags.Changed("delete-mode") {
		v, _ := flags.GetString("delete-mode")
		overrides.DeleteMode = &v
	}

	// Logging configuration
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	overrides.Apply(r.config)
	return r.config.Validate()
}
