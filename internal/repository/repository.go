// Package repository persists the to-do view state between runs of the client.
//
// The store is the view-model's memory, not a cache: the task list it holds is
// whatever the server last returned for the selected user.
package repository

import (
	"context"

	"todo-sync/internal/domain"
)

// Repository loads and saves view-state snapshots keyed by profile name.
type Repository interface {
	// LoadState returns the saved state for profile, or a zero state if none exists.
	LoadState(ctx context.Context, profile string) (domain.ViewState, error)

	// SaveState replaces the saved state for profile.
	SaveState(ctx context.Context, profile string, state domain.ViewState) error

	// Close releases the underlying connection.
	Close() error
}
