package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/timeflow/internal/selection"
	"github.com/xolan/timeflow/internal/storage"
)

// ErrUnknownName is returned for a collection name the planner does not
// store.
var ErrUnknownName = errors.New("unknown collection")

// StoreService exposes maintenance operations on the data directory.
type StoreService struct {
	store      *storage.Store
	controller *selection.Controller
}

// NewStoreService creates a new StoreService
func NewStoreService(store *storage.Store, controller *selection.Controller) *StoreService {
	return &StoreService{store: store, controller: controller}
}

// Dir returns the data directory, or "" for an in-memory store.
func (s *StoreService) Dir() string {
	return s.store.Dir()
}

// Namespace returns the key prefix.
func (s *StoreService) Namespace() string {
	return s.store.Namespace()
}

// Health reports the state of every stored key.
func (s *StoreService) Health() []storage.KeyHealth {
	return s.store.Health()
}

// CheckName reports whether name is a stored collection.
func CheckName(name string) error {
	for _, n := range storage.Names {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("%w %q (expected one of: %s)", ErrUnknownName, name, strings.Join(storage.Names, ", "))
}

// Backups lists the backups of name, most recent first.
func (s *StoreService) Backups(name string) ([]storage.BackupInfo, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	return s.store.Backups(name), nil
}

// Restore replaces name with backup n and reloads the in-memory state.
func (s *StoreService) Restore(name string, n int) (selection.Snapshot, error) {
	if err := CheckName(name); err != nil {
		return selection.Snapshot{}, err
	}
	if err := s.store.Restore(name, n); err != nil {
		return selection.Snapshot{}, fmt.Errorf("failed to restore %s: %w", name, err)
	}
	return s.controller.Reload(name), nil
}

// Watch forwards store changes made by other processes and reloads the
// affected collection before each event is delivered.
func (s *StoreService) Watch(ctx context.Context) (<-chan storage.Event, error) {
	events, err := s.store.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan storage.Event)
	go func() {
		defer close(out)
		for ev := range events {
			s.controller.Reload(ev.Name)
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
