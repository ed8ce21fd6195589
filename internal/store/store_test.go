package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/staffplan/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "proposals.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestSave_AssignsIDAndVersions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	p := model.DefaultProposal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	first, err := s.Save(ctx, p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.ID == "" || first.Version != 1 {
		t.Fatalf("first save = %+v, want new ID at version 1", first)
	}

	original := p.Title
	p.ID = first.ID
	p.Title = "Renamed"
	second, err := s.Save(ctx, p)
	if err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if second.ID != first.ID || second.Version != 2 {
		t.Fatalf("second save = %+v, want same ID at version 2", second)
	}

	got, err := s.Load(ctx, first.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "Renamed" || !got.Saved || got.LastSaved == nil || !got.LastSaved.Equal(second.SavedAt) {
		t.Fatalf("loaded = title %q saved %v lastSaved %v", got.Title, got.Saved, got.LastSaved)
	}

	old, err := s.LoadVersion(ctx, first.ID, 1)
	if err != nil {
		t.Fatalf("LoadVersion: %v", err)
	}
	if old.Title != original {
		t.Fatalf("version 1 title = %q, want original", old.Title)
	}

	versions, err := s.Versions(ctx, first.ID)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if len(versions) != 2 || versions[0].Version != 2 || versions[0].Title != "Renamed" {
		t.Fatalf("Versions = %+v, want newest first", versions)
	}
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for _, title := range []string{"first", "second", "third"} {
		p := model.DefaultProposal(time.Now())
		p.Title = title
		if _, err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save(%s): %v", title, err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(entries))
	}
	if entries[0].Title != "third" || entries[2].Title != "first" {
		t.Fatalf("List order = %q, %q, %q", entries[0].Title, entries[1].Title, entries[2].Title)
	}
	if entries[0].Client != "YHA" || entries[0].SavedAt.IsZero() {
		t.Fatalf("entry = %+v, want client and saved time", entries[0])
	}

	n, err := s.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}
}

func TestDelete_RemovesHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	res, err := s.Save(ctx, model.DefaultProposal(time.Now()))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, res.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := s.Load(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.Versions(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Versions after delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, res.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}
