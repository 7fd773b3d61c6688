package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/store"
)

func newSession(t *testing.T, created time.Time) *interview.Session {
	t.Helper()
	s, err := interview.New("Ada", "ada@example.com", "Finance", interview.DefaultConfig(), created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	s := newSession(t, time.Now())

	if err := m.Save(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != s {
		t.Error("expected the same session pointer")
	}

	if err := m.Delete(ctx, s.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(ctx, s.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := m.Delete(ctx, s.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryStore_ListOldestFirst(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	late := newSession(t, base.Add(time.Hour))
	early := newSession(t, base)
	m.Save(ctx, late)
	m.Save(ctx, early)

	list, err := m.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 || list[0] != early || list[1] != late {
		t.Errorf("unexpected order: %v", list)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return now })

	stale := newSession(t, now)
	fresh := newSession(t, now)
	m.Save(ctx, stale)
	m.Save(ctx, fresh)

	now = now.Add(2 * time.Hour)
	m.Get(ctx, fresh.ID) // touch

	now = now.Add(30 * time.Minute)
	if n := m.Sweep(time.Hour); n != 1 {
		t.Errorf("expected 1 removed, got %d", n)
	}
	if _, err := m.Get(ctx, stale.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected stale session removed, got %v", err)
	}
	if _, err := m.Get(ctx, fresh.ID); err != nil {
		t.Errorf("expected fresh session kept, got %v", err)
	}
}
