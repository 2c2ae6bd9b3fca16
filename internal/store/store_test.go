package store_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"reel/internal/edit"
	"reel/internal/project"
	"reel/internal/store"
	"reel/internal/testsupport"
)

func TestOpenAppliesMigrations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)

	version, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != "0002_revision_stats" {
		t.Fatalf("schema version = %q", version)
	}
	if s.Path() != cfg.DatabasePath() {
		t.Fatalf("path = %q, want %q", s.Path(), cfg.DatabasePath())
	}
}

func TestOpenRejectsSecondOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg); !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	second, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	_ = second.Close()
}

func TestSaveLoadRoundTripsDocument(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := testsupport.SampleProject(t)
	rev, err := s.Create(ctx, p, "initial")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rev.Number != 1 || rev.Clips != 3 || rev.DurationFrames != 600 {
		t.Fatalf("unexpected revision: %+v", rev)
	}

	want, err := project.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, head, err := s.Load(ctx, "sample")
	if err != nil {
		t.Fatalf("Load by name failed: %v", err)
	}
	if head.Number != 1 || head.Note != "initial" {
		t.Fatalf("head = %+v", head)
	}
	got, err := project.Marshal(loaded)
	if err != nil {
		t.Fatalf("marshal loaded: %v", err)
	}
	if !bytes.Equal(want, got) {
		t.Fatalf("document changed through the store:\n%s\n---\n%s", want, got)
	}
}

func TestSaveAppendsRevisions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tick := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, err := store.Open(cfg, store.WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	p := testsupport.SampleProject(t)
	if _, err := s.Create(ctx, p, "initial"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	cmd, err := edit.RemoveClip(p.Timeline.ClipByID(testsupport.SampleBRollClip))
	if err != nil {
		t.Fatalf("RemoveClip: %v", err)
	}
	cmd.Do()
	rev, err := s.Save(ctx, p, "drop b-roll")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if rev.Number != 2 || rev.Clips != 2 {
		t.Fatalf("unexpected revision: %+v", rev)
	}

	revs, err := s.Revisions(ctx, testsupport.SampleProjectID)
	if err != nil {
		t.Fatalf("Revisions failed: %v", err)
	}
	if len(revs) != 2 || revs[0].Note != "initial" || revs[1].Note != "drop b-roll" {
		t.Fatalf("revisions = %+v", revs)
	}
	if !revs[1].CreatedAt.After(revs[0].CreatedAt) {
		t.Fatalf("revision timestamps not increasing: %v, %v", revs[0].CreatedAt, revs[1].CreatedAt)
	}

	old, _, err := s.LoadRevision(ctx, testsupport.SampleProjectID, 1)
	if err != nil {
		t.Fatalf("LoadRevision failed: %v", err)
	}
	if old.Timeline.ClipByID(testsupport.SampleBRollClip) == nil {
		t.Fatal("revision 1 should still hold the b-roll clip")
	}
	current, _, err := s.Load(ctx, testsupport.SampleProjectID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if current.Timeline.ClipByID(testsupport.SampleBRollClip) != nil {
		t.Fatal("head revision should not hold the b-roll clip")
	}

	rec, err := s.Get(ctx, testsupport.SampleProjectID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.HeadRevision != 2 || !rec.UpdatedAt.After(rec.CreatedAt) {
		t.Fatalf("record = %+v", rec)
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := s.Create(ctx, testsupport.SampleProject(t), ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	other := project.New("SAMPLE", project.Settings{FrameRate: 25, Width: 1280, Height: 720})
	if _, err := s.Create(ctx, other, ""); !errors.Is(err, store.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestListOrdersByLastUpdate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tick := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s, err := store.Open(cfg, store.WithClock(func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	a := project.New("Alpha", project.Settings{FrameRate: 24})
	b := project.New("Bravo", project.Settings{FrameRate: 24})
	for _, p := range []*project.Project{a, b} {
		if _, err := s.Create(ctx, p, ""); err != nil {
			t.Fatalf("Create %s: %v", p.Name, err)
		}
	}
	if _, err := s.Save(ctx, a, "touch"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Alpha" || list[1].Name != "Bravo" {
		t.Fatalf("list = %+v", list)
	}
}

func TestDeleteRemovesProjectAndRevisions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := testsupport.SampleProject(t)
	if _, err := s.Create(ctx, p, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, "Sample"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, _, err := s.Load(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "Sample"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if _, err := s.Save(ctx, p, ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound saving deleted project, got %v", err)
	}
}
