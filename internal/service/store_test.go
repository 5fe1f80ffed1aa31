package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/timeflow/internal/config"
	"github.com/xolan/timeflow/internal/storage"
)

func TestCheckName(t *testing.T) {
	for _, name := range storage.Names {
		if err := CheckName(name); err != nil {
			t.Errorf("CheckName(%q) = %v", name, err)
		}
	}
	if err := CheckName("notes"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestStoreService_BackupsAndRestore(t *testing.T) {
	services, _ := newTestServices(t)

	first, err := services.Selection.AddGoal("first")
	if err != nil {
		t.Fatal(err)
	}
	// Deleting backs up the list that still holds the goal.
	services.Selection.DeleteGoal(first.Goals[0].ID)
	if len(services.Selection.GoalView().Goals) != 0 {
		t.Fatal("expected goal to be deleted")
	}

	backups, err := services.Store.Backups(storage.NameGoals)
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	if len(backups) != 1 || backups[0].Number != 1 {
		t.Fatalf("expected one backup, got %+v", backups)
	}

	snap, err := services.Store.Restore(storage.NameGoals, 1)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if len(snap.Goals.Goals) != 1 || snap.Goals.Goals[0].Title != "first" {
		t.Errorf("expected restored goal in snapshot, got %+v", snap.Goals)
	}
}

func TestStoreService_Errors(t *testing.T) {
	services, _ := newTestServices(t)

	if _, err := services.Store.Backups("notes"); !errors.Is(err, ErrUnknownName) {
		t.Errorf("expected ErrUnknownName from Backups, got %v", err)
	}
	if _, err := services.Store.Restore("notes", 1); !errors.Is(err, ErrUnknownName) {
		t.Errorf("expected ErrUnknownName from Restore, got %v", err)
	}
	if _, err := services.Store.Restore(storage.NameTasks, 2); err == nil {
		t.Error("expected error restoring a missing backup")
	}
}

func TestStoreService_Health(t *testing.T) {
	services, _ := newTestServices(t)
	if _, err := services.Selection.AddGoal("ship it"); err != nil {
		t.Fatal(err)
	}

	report := services.Store.Health()
	if !storage.Healthy(report) {
		t.Errorf("expected healthy store, got %+v", report)
	}
	if len(report) != len(storage.Names) {
		t.Errorf("expected %d keys, got %d", len(storage.Names), len(report))
	}
}

func TestStoreService_WatchReloads(t *testing.T) {
	services, _ := newTestServices(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := services.Store.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	// Another process writes the goals file.
	path := filepath.Join(services.Store.Dir(), "timeflow_goals")
	if err := os.WriteFile(path, []byte(`[{"id":1,"title":"from elsewhere","completed":false}]`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Name != storage.NameGoals {
			t.Errorf("expected goals event, got %+v", ev)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	goals := services.Selection.GoalView().Goals
	if len(goals) != 1 || goals[0].Title != "from elsewhere" {
		t.Errorf("expected reloaded goals, got %+v", goals)
	}
}

func TestStoreService_WatchNeedsDirectory(t *testing.T) {
	store, _ := storage.NewMemory("")
	services := NewServicesWithStore(store, "", config.DefaultConfig(), nil, Options{Clock: fixedClock})

	if _, err := services.Store.Watch(context.Background()); err == nil {
		t.Error("expected error watching an in-memory store")
	}
}
