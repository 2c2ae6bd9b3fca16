package deps

import (
	"os"
	"path/filepath"
	"testing"

	"reel/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank command status: %#v", results[2])
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	stub := testsupport.StubFFprobe(t, t.TempDir(), "{}")
	cfg := testsupport.NewConfig(t, testsupport.WithFFprobe(stub))

	reqs := Requirements(cfg)
	if len(reqs) != 1 || reqs[0].Command != stub || !reqs[0].Optional {
		t.Fatalf("unexpected requirements: %#v", reqs)
	}
	status := CheckBinaries(reqs)
	if !status[0].Available {
		t.Fatalf("expected configured ffprobe to be available: %#v", status[0])
	}
}
