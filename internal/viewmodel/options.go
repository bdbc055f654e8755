package viewmodel

import (
	"strings"

	"todo-sync/internal/config"
	"todo-sync/internal/errors"
)

// DeleteMode decides what happens to the local list when some deletes of a delete-all fail
type DeleteMode string

const (
	// DeleteAllOrNothing leaves the list unchanged unless every delete succeeded
	DeleteAllOrNothing DeleteMode = config.DeleteModeAllOrNothing
	// DeleteBestEffort removes the tasks whose delete succeeded
	DeleteBestEffort DeleteMode = config.DeleteModeBestEffort
)

// ParseDeleteMode parses a delete mode name
func ParseDeleteMode(s string) (DeleteMode, error) {
	switch mode := DeleteMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case DeleteAllOrNothing, DeleteBestEffort:
		return mode, nil
	case "":
		return DeleteAllOrNothing, nil
	default:
		return "", errors.NewInvalidInputError("delete_mode", s, "must be all-or-nothing or best-effort")
	}
}

// Options tunes the synchronizer
type Options struct {
	// DeleteConcurrency bounds the parallel deletes of a delete-all. 0 means unbounded.
	DeleteConcurrency int
	DeleteMode        DeleteMode
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{DeleteConcurrency: 4, DeleteMode: DeleteAllOrNothing}
}

// OptionsFromConfig builds options from the sync configuration
func OptionsFromConfig(cfg config.SyncConfig) (Options, error) {
	mode, err := ParseDeleteMode(cfg.DeleteMode)
	if err != nil {
		return Options{}, err
	}
	if cfg.DeleteConcurrency < 0 {
		return Options{}, errors.NewInvalidInputError("delete_concurrency", cfg.DeleteConcurrency, "cannot be negative")
	}
	return Options{DeleteConcurrency: cfg.DeleteConcurrency, DeleteMode: mode}, nil
}
