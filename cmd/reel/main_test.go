package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"reel/internal/history"
	"reel/internal/sample"
	"reel/internal/store"
	"reel/internal/testsupport"
)

func setupConfig(t *testing.T, opts ...testsupport.ConfigOption) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t, opts...)
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	return testsupport.WriteFile(t, filepath.Join(testsupport.BaseDir(cfg), "config.toml"), string(data))
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, configPath)
	if err != nil {
		t.Fatalf("reel %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

const fadeScript = `
name: fade in
steps:
  - op: add_track
    kind: video
    name: V1
  - op: import_media
    id: media-a
    path: /media/a.mov
    duration: 120
    frame_rate: 30
  - op: add_clip
    track: V1
    media: media-a
    id: clip-a
  - op: add_effect
    clip: clip-a
    id: fx-fade
    name: fade
    params:
      - name: opacity
        value: "1"
  - op: set_keyframe
    clip: clip-a
    effect: fade
    param: opacity
    frame: 0
    value: "0"
  - op: set_keyframe
    clip: clip-a
    effect: fade
    param: opacity
    frame: 30
    value: "1"
`

func TestCLIProjectLifecycle(t *testing.T) {
	configPath := setupConfig(t)
	dir := filepath.Dir(configPath)

	out := mustRun(t, configPath, "project", "new", "Demo", "--frame-rate", "30")
	if !strings.Contains(out, "Created project Demo") {
		t.Fatalf("unexpected new output: %q", out)
	}

	scriptPath := testsupport.WriteFile(t, filepath.Join(dir, "fade.yaml"), fadeScript)
	out = mustRun(t, configPath, "apply", "Demo", scriptPath)
	if !strings.Contains(out, "Applied 6 of 6 steps") || !strings.Contains(out, "Saved Demo revision 2") {
		t.Fatalf("unexpected apply output: %q", out)
	}

	out = mustRun(t, configPath, "eval", "Demo", "--clip", "clip-a", "--effect", "fade", "--param", "opacity", "--frame", "15")
	if strings.TrimSpace(out) != "0.5" {
		t.Fatalf("eval = %q, want 0.5", out)
	}

	out = mustRun(t, configPath, "project", "history", "Demo", "--json")
	var revs []store.Revision
	if err := json.Unmarshal([]byte(out), &revs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(revs) != 2 || revs[1].Note != "fade in" || revs[1].Clips != 1 {
		t.Fatalf("history = %+v", revs)
	}

	out = mustRun(t, configPath, "sample", "Demo", "--from", "0", "--to", "30", "--step", "15", "--json")
	var series []sample.Series
	if err := json.Unmarshal([]byte(out), &series); err != nil {
		t.Fatalf("decode sample: %v\n%s", err, out)
	}
	if len(series) != 1 || len(series[0].Points) != 3 {
		t.Fatalf("series = %+v", series)
	}
	if f, _ := series[0].Points[1].Value.Float(); f != 0.5 {
		t.Fatalf("sampled opacity at 15 = %v", f)
	}

	out = mustRun(t, configPath, "project", "show", "Demo")
	if !strings.Contains(out, "Revision:  2") || !strings.Contains(out, "V1") {
		t.Fatalf("unexpected show output: %q", out)
	}

	mustRun(t, configPath, "project", "delete", "Demo")
	out = mustRun(t, configPath, "project", "list")
	if !strings.Contains(out, "No projects") {
		t.Fatalf("unexpected list output: %q", out)
	}
}

func TestCLIApplyReportsFailingStep(t *testing.T) {
	configPath := setupConfig(t)
	mustRun(t, configPath, "project", "new", "Broken")

	scriptPath := testsupport.WriteFile(t, filepath.Join(filepath.Dir(configPath), "bad.yaml"), `
steps:
  - op: add_marker
    frame: 10
  - op: remove_clip
    clip: missing
`)
	_, _, err := runCLI(t, []string{"apply", "Broken", scriptPath}, configPath)
	if err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Fatalf("expected step 2 failure, got %v", err)
	}

	out := mustRun(t, configPath, "project", "history", "Broken", "--json")
	var revs []store.Revision
	if err := json.Unmarshal([]byte(out), &revs); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("failed apply must not save a revision, got %d", len(revs))
	}
}

func TestCLIApplyDryRunDoesNotSave(t *testing.T) {
	configPath := setupConfig(t)
	mustRun(t, configPath, "project", "new", "Dry")

	scriptPath := testsupport.WriteFile(t, filepath.Join(filepath.Dir(configPath), "marker.yaml"), `
steps:
  - op: add_marker
    frame: 10
    name: Hit
`)
	out := mustRun(t, configPath, "apply", "Dry", scriptPath, "--dry-run")
	if !strings.Contains(out, "Add Marker") || !strings.Contains(out, "Dry run") {
		t.Fatalf("unexpected dry run output: %q", out)
	}
	out = mustRun(t, configPath, "project", "list", "--json")
	var records []store.ProjectRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(records) != 1 || records[0].HeadRevision != 1 {
		t.Fatalf("records = %+v", records)
	}
}

func TestCLIConfigValidate(t *testing.T) {
	configPath := setupConfig(t)
	out := mustRun(t, configPath, "config", "validate")
	if !strings.Contains(out, "Configuration valid") || !strings.Contains(out, configPath) {
		t.Fatalf("unexpected validate output: %q", out)
	}

	target := filepath.Join(t.TempDir(), "reel", "config.toml")
	out = mustRun(t, "", "config", "init", "--path", target)
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestCLIImportProbesMedia(t *testing.T) {
	stub := testsupport.StubFFprobe(t, t.TempDir(),
		`{"streams":[{"codec_type":"video","avg_frame_rate":"25/1","nb_frames":"250"}],"format":{"duration":"10.0","format_name":"mov,mp4"}}`)
	configPath := setupConfig(t, testsupport.WithFFprobe(stub))

	mustRun(t, configPath, "project", "new", "Doc")
	out := mustRun(t, configPath, "import", "Doc", "/footage/interview.mov", "--bin", "Interviews")
	if !strings.Contains(out, "Interview") || !strings.Contains(out, "250") || !strings.Contains(out, "Saved Doc revision 2") {
		t.Fatalf("unexpected import output: %q", out)
	}

	out = mustRun(t, configPath, "project", "export", "Doc")
	if !strings.Contains(out, "/footage/interview.mov") || !strings.Contains(out, "Interviews") {
		t.Fatalf("export missing imported item: %q", out)
	}

	if _, _, err := runCLI(t, []string{"import", "Doc", "/footage/interview.mov"}, configPath); err == nil {
		t.Fatal("expected duplicate import to fail")
	}
}

func TestCLIDoctor(t *testing.T) {
	configPath := setupConfig(t, testsupport.WithFFprobe("reel-test-missing-ffprobe"))
	mustRun(t, configPath, "project", "new", "Checked")

	out := mustRun(t, configPath, "doctor")
	for _, want := range []string{"Data directory:", "[OK]", "[WARN] binary \"reel-test-missing-ffprobe\" not found", "1 projects"} {
		if !strings.Contains(out, want) {
			t.Fatalf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestExitCodeSeparatesRefusedEdits(t *testing.T) {
	refused := fmt.Errorf("step 3: %w", history.Invalid(history.ErrNotFound, "remove clip", "clip %s not found", "x"))
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{refused, exitRefused},
		{errors.New("database is locked"), exitFailure},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
