package script_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"reel/internal/history"
	"reel/internal/project"
	"reel/internal/script"
	"reel/internal/testsupport"
)

func mustParse(t *testing.T, src string) *script.Script {
	t.Helper()
	s, err := script.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func run(t *testing.T, p *project.Project, src string) (script.Result, *history.Stack, error) {
	t.Helper()
	stack := history.NewStack()
	res, err := script.NewRunner(p, stack, nil).Run(context.Background(), mustParse(t, src))
	return res, stack, err
}

func snapshot(t *testing.T, p *project.Project) []byte {
	t.Helper()
	data, err := project.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestParseRejectsUnknownOpWithStepNumber(t *testing.T) {
	_, err := script.Parse([]byte("steps:\n  - op: add_marker\n    frame: 1\n  - op: explode\n"))
	var stepErr *script.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if stepErr.Step != 2 || stepErr.Op != "explode" {
		t.Fatalf("step error = %+v", stepErr)
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	if _, err := script.Parse([]byte("steps:\n  - op: add_marker\n    frame: 1\n    colour: red\n")); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := script.Parse(nil); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestRunAppliesEditsThroughStack(t *testing.T) {
	p := testsupport.SampleProject(t)
	res, stack, err := run(t, p, `
name: rough cut
steps:
  - op: add_track
    kind: video
    name: V2
  - op: add_clip
    track: V2
    media: B Roll
    id: clip-cut
    start: 100
  - op: add_effect
    clip: clip-cut
    id: fx-blur
    name: blur
    params:
      - name: radius
        value: "2"
  - op: set_keyframe
    clip: clip-cut
    effect: blur
    param: radius
    frame: 0
    value: "0"
  - op: set_keyframe
    clip: clip-cut
    effect: fx-blur
    param: radius
    frame: 20
    value: "10"
    mode: linear
  - op: import_media
    id: media-new
    path: /media/new.mov
    duration: 60
    frame_rate: 30
    bin: Footage
  - op: rename_bin
    bin: Footage
    name: Selects
  - op: move_to_bin
    media: Music
    bin: selects
  - op: set_track_mix
    track: A1
    volume: 0.8
  - op: add_marker
    id: mk-2
    frame: 240
    name: Drop
    color: "#FF0000"
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Applied != 10 || res.Steps() != 10 {
		t.Fatalf("result = %+v", res)
	}
	if stack.Len() != 10 {
		t.Fatalf("undo depth = %d", stack.Len())
	}

	clip := p.Timeline.ClipByID("clip-cut")
	if clip == nil || clip.Track().Name() != "V2" || clip.Start() != 100 || clip.End() != 400 {
		t.Fatalf("clip = %+v", clip)
	}
	got, ok := clip.ParameterAt(0, "radius", 110)
	if f, _ := got.Float(); !ok || f != 5 {
		t.Fatalf("radius at 110 = %v", got)
	}
	if bin := p.Library.BinOf("media-new"); bin == nil || bin.Name() != "Selects" {
		t.Fatalf("imported item bin = %v", bin)
	}
	if bin := p.Library.BinOf(testsupport.SampleMusicID); bin == nil || bin.Name() != "Selects" {
		t.Fatalf("music bin = %v", bin)
	}
	if v := p.Timeline.TrackByID(testsupport.SampleAudioTrack).Volume(); v != 0.8 {
		t.Fatalf("volume = %v", v)
	}

	for stack.CanUndo() {
		stack.Undo()
	}
	if !bytes.Equal(snapshot(t, p), snapshot(t, testsupport.SampleProject(t))) {
		t.Fatal("undoing every step did not restore the original project")
	}
}

func TestUndoRedoStepsMatchManualSequence(t *testing.T) {
	scripted := testsupport.SampleProject(t)
	if _, _, err := run(t, scripted, `
steps:
  - op: add_marker
    id: mk-2
    frame: 60
  - op: add_overlay
    id: ov-2
    text: Title
    end: 30
  - op: split_clip
    clip: clip-broll
    frame: 360
  - op: undo
  - op: undo
  - op: redo
`); err != nil {
		t.Fatalf("run: %v", err)
	}

	manual := testsupport.SampleProject(t)
	if _, _, err := run(t, manual, `
steps:
  - op: add_marker
    id: mk-2
    frame: 60
  - op: add_overlay
    id: ov-2
    text: Title
    end: 30
`); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !bytes.Equal(snapshot(t, scripted), snapshot(t, manual)) {
		t.Fatal("undo/redo steps diverged from the equivalent manual edits")
	}
}

func TestRunStopsAtFailingStep(t *testing.T) {
	p := testsupport.SampleProject(t)
	res, _, err := run(t, p, `
steps:
  - op: add_marker
    id: mk-2
    frame: 10
  - op: trim_clip
    clip: Interview
    end: -5
  - op: add_marker
    id: mk-3
    frame: 20
`)
	var stepErr *script.StepError
	if !errors.As(err, &stepErr) || stepErr.Step != 2 {
		t.Fatalf("expected failure at step 2, got %v", err)
	}
	if !history.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if res.Applied != 1 {
		t.Fatalf("applied = %d", res.Applied)
	}
	if _, i := p.Timeline.MarkerByID("mk-2"); i < 0 {
		t.Fatal("step before the failure should stay applied")
	}
	if _, i := p.Timeline.MarkerByID("mk-3"); i >= 0 {
		t.Fatal("steps after the failure must not run")
	}
}

func TestRunReportsUnresolvedReferences(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"missing clip", "steps:\n  - op: remove_clip\n    clip: nope\n", history.ErrNotFound},
		{"unknown track kind", "steps:\n  - op: add_track\n    kind: subtitle\n", history.ErrUnsupported},
		{"missing effect", "steps:\n  - op: enable_effect\n    clip: clip-interview\n    effect: glow\n", history.ErrNotFound},
		{"protected media", "steps:\n  - op: remove_media\n    media: media-music\n", history.ErrProtected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testsupport.SampleProject(t)
			before := snapshot(t, p)
			_, _, err := run(t, p, tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !bytes.Equal(before, snapshot(t, p)) {
				t.Fatal("failed step mutated the project")
			}
		})
	}
}

func TestEmptyUndoRedoAreSkipped(t *testing.T) {
	p := testsupport.SampleProject(t)
	res, stack, err := run(t, p, `
steps:
  - op: undo
  - op: redo
  - op: add_marker
    id: mk-after
    frame: 12
  - op: redo
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Skipped != 3 || res.Applied != 1 || res.Steps() != 1 {
		t.Fatalf("result = %+v", res)
	}
	if _, i := p.Timeline.MarkerByID("mk-after"); i < 0 {
		t.Fatal("steps after a skipped undo must still run")
	}
	if !stack.CanUndo() {
		t.Fatal("applied step missing from the undo stack")
	}
}

func TestSetParamUsesDeclaredType(t *testing.T) {
	p := testsupport.SampleProject(t)
	if _, _, err := run(t, p, `
steps:
  - op: set_param
    clip: clip-interview
    effect: fx-opacity
    param: brightness
    value: "0.75"
  - op: enable_effect
    clip: clip-interview
    index: 0
    enabled: false
`); err != nil {
		t.Fatalf("run: %v", err)
	}
	clip := p.Timeline.ClipByID(testsupport.SampleVideoClip)
	got, _ := clip.ParameterAt(0, "brightness", 0)
	if got.String() != "0.75" {
		t.Fatalf("brightness = %v (%s)", got, got.Kind())
	}
	if clip.Effect(0).Enabled() {
		t.Fatal("effect should be disabled")
	}
}

func TestRunMovesTrackAndUndoRestoresOrder(t *testing.T) {
	p := testsupport.SampleProject(t)
	before := snapshot(t, p)

	_, stack, err := run(t, p, `
steps:
  - op: move_track
    track: A1
    to: 0
`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := p.Timeline.Track(0).Name(); got != "A1" {
		t.Fatalf("track 0 = %s, want A1", got)
	}
	if _, ok := stack.Undo(); !ok {
		t.Fatal("expected an undo entry")
	}
	if !bytes.Equal(before, snapshot(t, p)) {
		t.Fatal("undo did not restore track order")
	}

	if _, _, err := run(t, p, "steps:\n  - op: move_track\n    track: A1\n"); !history.IsValidation(err) {
		t.Fatalf("expected validation error without a target index, got %v", err)
	}
}
