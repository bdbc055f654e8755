package repository

import (
	"context"
	"sync"

	"todo-sync/internal/domain"
)

// MemoryRepository keeps view states in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[string]domain.ViewState
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{states: make(map[string]domain.ViewState)}
}

func (r *MemoryRepository) LoadState(ctx context.Context, profile string) (domain.ViewState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ViewState{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[profile].Clone(), nil
}

func (r *MemoryRepository) SaveState(ctx context.Context, profile string, state domain.ViewState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[profile] = state.Clone()
	return nil
}

func (r *MemoryRepository) Close() error {
	return nil
}
