package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/deps"
	"reel/internal/edit"
	"reel/internal/history"
	"reel/internal/media"
	"reel/internal/project"
	"reel/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestFromDependency(t *testing.T) {
	missing := FromDependency(deps.Status{Name: "FFprobe", Optional: true, Detail: "binary \"x\" not found"})
	if missing.Passed || missing.Failed() {
		t.Fatalf("optional missing binary should warn, got %+v", missing)
	}
	required := FromDependency(deps.Status{Name: "Tool", Detail: "not found"})
	if !required.Failed() {
		t.Fatalf("required missing binary should fail, got %+v", required)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_WithStore(t *testing.T) {
	stub := testsupport.StubFFprobe(t, t.TempDir(), "{}")
	cfg := testsupport.NewConfig(t, testsupport.WithFFprobe(stub))
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	p := project.New("Offline", project.Settings{FrameRate: 30, Width: 1920, Height: 1080})
	present := testsupport.WriteFile(t, filepath.Join(t.TempDir(), "here.mov"), "x")
	for _, path := range []string{present, filepath.Join(t.TempDir(), "gone.mov")} {
		cmd, err := edit.ImportItem(p.Library, media.Item{Path: path, Kind: media.KindVideo, DurationFrames: 30, FrameRate: 30})
		if err != nil {
			t.Fatalf("import %s: %v", path, err)
		}
		history.NewStack().Execute(cmd)
	}
	if _, err := s.Create(ctx, p, "created"); err != nil {
		t.Fatalf("create: %v", err)
	}

	results := RunAll(ctx, cfg, s)
	if AnyFailed(results) {
		t.Fatalf("unexpected failure: %+v", results)
	}
	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	if r := byName["Project store"]; !r.Passed || !strings.Contains(r.Detail, "1 projects") {
		t.Fatalf("store check = %+v", r)
	}
	if r := byName["FFprobe"]; !r.Passed {
		t.Fatalf("ffprobe check = %+v", r)
	}
	files := byName["Media files"]
	if files.Passed || !strings.Contains(files.Detail, "1 of 2 offline") || !strings.Contains(files.Detail, "gone.mov") {
		t.Fatalf("media check = %+v", files)
	}
}
