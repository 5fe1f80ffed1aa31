package goal

import (
	"errors"
	"testing"
	"time"

	"github.com/xolan/timeflow/internal/storage"
	"github.com/xolan/timeflow/internal/validate"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)
}

func newTestRegistry(t *testing.T) (*Registry, *storage.Store, *storage.MemoryBackend) {
	t.Helper()
	store, backend := storage.NewMemory("")
	return New(store, fixedClock, nil), store, backend
}

func TestAdd_NewestFirst(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	first, err := r.Add("  Read a book  ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, _ := r.Add("Run 5k")

	if first.Title != "Read a book" {
		t.Errorf("title should be trimmed, got %q", first.Title)
	}
	if first.ID == second.ID {
		t.Error("ids must be unique even within one millisecond")
	}

	got := r.List()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("expected newest first, got %+v", got)
	}
}

func TestAdd_Blank(t *testing.T) {
	r, _, _ := newTestRegistry(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := r.Add(title); !errors.Is(err, validate.ErrValidation) {
			t.Errorf("Add(%q) expected validation error, got %v", title, err)
		}
	}
	if len(r.List()) != 0 {
		t.Error("blank titles must not be stored")
	}
}

func TestToggle(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	g, _ := r.Add("Stretch")
	other, _ := r.Add("Meditate")

	toggled, ok := r.Toggle(g.ID)
	if !ok || !toggled.Completed {
		t.Fatalf("expected completed goal, got %+v, %v", toggled, ok)
	}

	got := r.List()
	if got[0].ID != other.ID || got[1].ID != g.ID {
		t.Error("toggling must not reorder goals")
	}

	if _, ok := r.Toggle(42); ok {
		t.Error("unknown id should report false")
	}
}

func TestDelete_UnknownIsNoop(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	g, _ := r.Add("Keep me")

	before := r.List()
	if r.Delete(g.ID + 1000) {
		t.Error("unknown id should report false")
	}
	after := r.List()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("list changed after deleting unknown id: %+v", after)
	}
}

func TestDelete(t *testing.T) {
	r, store, _ := newTestRegistry(t)
	a, _ := r.Add("a")
	b, _ := r.Add("b")

	if !r.Delete(a.ID) {
		t.Fatal("expected removal")
	}
	got := r.List()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("unexpected goals %+v", got)
	}
	if len(store.Backups(storage.NameGoals)) != 1 {
		t.Error("expected a backup before the delete")
	}
}

func TestPersistence(t *testing.T) {
	r, store, _ := newTestRegistry(t)
	g, _ := r.Add("Persist")
	_, _ = r.Toggle(g.ID)

	reopened := New(store, fixedClock, nil)
	got := reopened.List()
	if len(got) != 1 || got[0].Title != "Persist" || !got[0].Completed {
		t.Errorf("unexpected reloaded goals %+v", got)
	}

	next, _ := reopened.Add("Next")
	if next.ID <= g.ID {
		t.Error("new ids must stay above loaded ids")
	}
}

func TestStorageFailureKeepsMemoryState(t *testing.T) {
	r, _, backend := newTestRegistry(t)
	backend.FailWrites(true)

	g, err := r.Add("offline")
	if err != nil {
		t.Fatalf("storage failure must not surface: %v", err)
	}
	if _, ok := r.Toggle(g.ID); !ok {
		t.Fatal("toggle failed")
	}
	if got := r.List(); len(got) != 1 || !got[0].Completed {
		t.Errorf("expected in-memory state, got %+v", got)
	}
}

func TestNew_CorruptGoals(t *testing.T) {
	store, backend := storage.NewMemory("")
	backend.Put("timeflow_goals", []byte(`{"id":1}`))

	r := New(store, fixedClock, nil)
	if len(r.List()) != 0 {
		t.Error("expected empty list for non-array value")
	}
}
