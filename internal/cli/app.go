package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"todo-sync/internal/config"
	"todo-sync/internal/domain"
	"todo-sync/internal/errors"
	"todo-sync/internal/playground"
	"todo-sync/internal/repository"
	"todo-sync/internal/validation"
	"todo-sync/internal/viewmodel"
)

// ClientFactory creates the API client a command talks to
type ClientFactory func(cfg config.APIConfig, logger *log.Logger) (playground.Client, error)

// DefaultClientFactory creates an HTTP client for the configured API
func DefaultClientFactory(cfg config.APIConfig, logger *log.Logger) (playground.Client, error) {
	client, err := playground.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("api client ready", "base_url", client.BaseURL(), "timeout", cfg.Timeout)
	}
	return client, nil
}

// App represents the main CLI application
type App struct {
	config    *config.Config
	repo      repository.Repository
	newClient ClientFactory
	logger    *log.Logger
	in        io.Reader
	out       io.Writer
	errOut    io.Writer

	taskValidator *validation.TaskValidator
	userValidator *validation.UserValidator
	errorHandler  *ErrorHandler
	registry      *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(cfg *config.Config, repo repository.Repository, newClient ClientFactory, logger *log.Logger) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if newClient == nil {
		newClient = DefaultClientFactory
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	app := &App{
		config:        cfg,
		repo:          repo,
		newClient:     newClient,
		logger:        logger,
		in:            os.Stdin,
		out:           os.Stdout,
		errOut:        os.Stderr,
		taskValidator: validation.NewTaskValidatorWithConfig(cfg),
		userValidator: validation.NewUserValidatorWithConfig(cfg),
		errorHandler:  NewErrorHandler(),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// SetOutput redirects normal and error output
func (a *App) SetOutput(out, errOut io.Writer) {
	if out != nil {
		a.out = out
	}
	if errOut != nil {
		a.errOut = errOut
	}
}

// SetInput sets where interactive input is read from
func (a *App) SetInput(in io.Reader) {
	if in != nil {
		a.in = in
	}
}

// Config returns the configuration the app runs with
func (a *App) Config() *config.Config {
	return a.config
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	err := a.registry.Execute(ctx, args[0], args[1:])
	// Failed API calls were already logged by the synchronizer
	if err != nil && !a.errorHandler.IsOperationError(err) && !a.errorHandler.IsValidationError(err) && errors.ShouldLogError(err) {
		a.logger.Error("command failed", "command", args[0], "code", a.errorHandler.GetErrorCode(err), "err", err)
	}
	return err
}

// OperationError reports that a synchronizer operation recorded a failure.
// Message is the error banner text.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

// session is one load, operate, save cycle over the persisted view state
type session struct {
	app  *App
	sync *viewmodel.Synchronizer
}

// withSession loads the saved view state, runs fn against a synchronizer built from it and saves
// the resulting state. If fn made the synchronizer record a new failure, an *OperationError is returned.
func (a *App) withSession(ctx context.Context, fn func(ctx context.Context, s *session) error) error {
	state, err := a.repo.LoadState(ctx, a.config.Store.Profile)
	if err != nil {
		return fmt.Errorf("failed to load view state: %w", err)
	}

	client, err := a.newClient(a.config.API, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	opts, err := viewmodel.OptionsFromConfig(a.config.Sync)
	if err != nil {
		return err
	}

	s := &session{app: a, sync: viewmodel.NewFromState(client, a.logger, opts, state)}
	before := s.sync.Failures()

	fnErr := fn(ctx, s)

	final := s.sync.State()
	if err := a.repo.SaveState(ctx, a.config.Store.Profile, final); err != nil {
		return fmt.Errorf("failed to save view state: %w", err)
	}
	a.logger.Debug("view state saved", "profile", a.config.Store.Profile, "tasks", len(final.Tasks))

	if fnErr != nil {
		return fnErr
	}
	if s.sync.Failures() > before {
		return &OperationError{Message: final.Error}
	}
	return nil
}

// requireSelection returns the selected user or a validation error when there is none
func (s *session) requireSelection() (string, error) {
	state := s.sync.State()
	if !state.HasSelection() {
		validationError := validation.NewValidationError()
		validationError.AddError("user", validation.ErrorTypeRequired, "no user selected; run 'todo select <name>' first", nil)
		return "", validationError
	}
	return state.SelectedUser, nil
}

// state returns the current view state
func (s *session) state() domain.ViewState {
	return s.sync.State()
}
