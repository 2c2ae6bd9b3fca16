package timeline

import (
	"errors"
	"math"
	"testing"

	"reel/internal/keyframe"
)

func mustClip(t *testing.T, name string, start, end int64) *Clip {
	t.Helper()
	clip, err := NewClip(ClipConfig{Name: name, Start: start, End: end, FrameRate: 30})
	if err != nil {
		t.Fatalf("NewClip(%s): %v", name, err)
	}
	return clip
}

func TestAddTrackNamingAndPlacement(t *testing.T) {
	tl := New(30)
	a1 := tl.AddTrack(Audio)
	v1 := tl.AddTrack(Video)
	v2 := tl.AddTrack(Video)
	a2 := tl.AddTrack(Audio)

	got := []string{}
	for _, track := range tl.Tracks() {
		got = append(got, track.Name())
	}
	want := []string{"V1", "V2", "A1", "A2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("track order = %v, want %v", got, want)
		}
	}
	if tl.IndexOfTrack(v1) != 0 || tl.IndexOfTrack(v2) != 1 || tl.IndexOfTrack(a1) != 2 || tl.IndexOfTrack(a2) != 3 {
		t.Fatalf("unexpected track indices")
	}
}

func TestNextTrackNameSkipsTakenNames(t *testing.T) {
	tl := New(30)
	v1 := tl.AddTrack(Video)
	tl.AddTrack(Video)
	tl.RemoveTrack(v1)
	if name := tl.AddTrack(Video).Name(); name != "V3" {
		t.Fatalf("expected V3 after V1 removal, got %s", name)
	}
}

func TestClipAtFrameHalfOpen(t *testing.T) {
	tl := New(30)
	v1 := tl.AddTrack(Video)
	v2 := tl.AddTrack(Video)
	first := mustClip(t, "first", 0, 10)
	second := mustClip(t, "second", 5, 20)
	v1.AddClip(first)
	v2.AddClip(second)

	if got := tl.ClipAtFrame(9, nil); got != first {
		t.Fatalf("frame 9: expected first clip")
	}
	if got := tl.ClipAtFrame(10, nil); got != second {
		t.Fatalf("frame 10: end is exclusive, expected second clip")
	}
	if got := tl.ClipAtFrame(7, v2); got != second {
		t.Fatalf("scoped lookup should ignore other tracks")
	}
	if got := tl.ClipAtFrame(20, nil); got != nil {
		t.Fatalf("frame 20: expected no clip")
	}
	if got := tl.ClipAtFrame(-1, v1); got != nil {
		t.Fatalf("negative frame: expected no clip")
	}
}

func TestDurationAcrossTracks(t *testing.T) {
	tl := New(30)
	v1 := tl.AddTrack(Video)
	a1 := tl.AddTrack(Audio)
	v1.AddClip(mustClip(t, "a", 100, 500))
	a1.AddClip(mustClip(t, "b", 0, 600))
	if got := tl.DurationFrames(); got != 600 {
		t.Fatalf("DurationFrames = %d, want 600", got)
	}
}

func TestAddRemoveClipsClearsContent(t *testing.T) {
	tl := New(30)
	track := tl.AddTrack(Video)
	tl.AddTrack(Audio)
	var clips []*Clip
	for i := int64(0); i < 5; i++ {
		c := mustClip(t, "c", i*10, i*10+10)
		clips = append(clips, c)
		track.AddClip(c)
	}
	if !tl.HasClips() {
		t.Fatal("expected content")
	}
	for _, c := range clips {
		if idx := track.RemoveClip(c); idx < 0 {
			t.Fatalf("clip not found on removal")
		}
	}
	if track.ClipCount() != 0 || tl.HasClips() || tl.DurationFrames() != 0 {
		t.Fatalf("expected empty timeline, clips=%d has=%v dur=%d", track.ClipCount(), tl.HasClips(), tl.DurationFrames())
	}
}

func TestListenersSeeCompletedMutation(t *testing.T) {
	tl := New(30)
	track := tl.AddTrack(Video)

	var events []EventKind
	var durations []int64
	unsubscribe := tl.Subscribe(func(ev Event) {
		events = append(events, ev.Kind)
		durations = append(durations, tl.DurationFrames())
	})

	clip := mustClip(t, "c", 0, 90)
	track.AddClip(clip)
	if err := clip.SetRange(0, 120); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	track.RemoveClip(clip)

	wantEvents := []EventKind{EventClipAdded, EventClipChanged, EventClipRemoved}
	wantDurations := []int64{90, 120, 0}
	if len(events) != len(wantEvents) {
		t.Fatalf("events = %v, want %v", events, wantEvents)
	}
	for i := range wantEvents {
		if events[i] != wantEvents[i] || durations[i] != wantDurations[i] {
			t.Fatalf("event %d = %s (duration %d), want %s (%d)", i, events[i], durations[i], wantEvents[i], wantDurations[i])
		}
	}

	unsubscribe()
	track.AddClip(mustClip(t, "d", 0, 1))
	if len(events) != len(wantEvents) {
		t.Fatal("listener still called after unsubscribe")
	}
}

func TestBatchDefersEventsUntilOutermostReturn(t *testing.T) {
	tl := New(30)
	track := tl.AddTrack(Video)

	var kinds []EventKind
	var durations []int64
	tl.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		durations = append(durations, tl.DurationFrames())
	})

	clip := mustClip(t, "c", 0, 90)
	tl.Batch(func() {
		track.AddClip(clip)
		tl.Batch(func() {
			if err := clip.SetRange(30, 150); err != nil {
				t.Fatalf("SetRange: %v", err)
			}
		})
		if len(kinds) != 0 {
			t.Fatalf("events delivered inside batch: %v", kinds)
		}
	})

	want := []EventKind{EventClipAdded, EventClipChanged}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] || durations[i] != 150 {
			t.Fatalf("event %d = %s (duration %d), want %s (150)", i, kinds[i], durations[i], want[i])
		}
	}

	track.RemoveClip(clip)
	if len(kinds) != 3 {
		t.Fatal("events after batch should be delivered immediately")
	}
}

func TestEffectEventsBubbleToTimeline(t *testing.T) {
	tl := New(30)
	track := tl.AddTrack(Video)
	clip := mustClip(t, "c", 0, 30)
	track.AddClip(clip)

	var got []Event
	tl.Subscribe(func(ev Event) { got = append(got, ev) })

	effect := NewEffect("blur", Parameter{Name: "radius", Value: keyframe.Float(1)})
	clip.AddEffect(effect)
	effect.SetKeyframe("radius", keyframe.New(0, keyframe.Float(0), keyframe.Linear))
	effect.SetParameter("radius", keyframe.Float(2))

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[1].Kind != EventKeyframesChanged || got[1].Clip != clip || got[1].Track != track || got[1].Effect != effect {
		t.Fatalf("keyframe event missing context: %+v", got[1])
	}
	if got[2].Parameter != "radius" {
		t.Fatalf("parameter event missing name: %+v", got[2])
	}
}

func TestMoveIgnoresOutOfRange(t *testing.T) {
	clip := mustClip(t, "c", 0, 30)
	a := NewEffect("a")
	b := NewEffect("b")
	clip.AddEffect(a)
	clip.AddEffect(b)

	clip.MoveEffect(0, 5)
	clip.MoveEffect(-1, 0)
	if clip.Effect(0) != a || clip.Effect(1) != b {
		t.Fatal("out-of-range move changed order")
	}
	clip.MoveEffect(1, 0)
	if clip.Effect(0) != b || clip.Effect(1) != a {
		t.Fatal("valid move did not reorder")
	}
}

func TestClipRangePolicy(t *testing.T) {
	if _, err := NewClip(ClipConfig{Name: "bad", Start: 10, End: 5}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	freeze, err := NewClip(ClipConfig{Name: "freeze", Start: 10, End: 10})
	if err != nil {
		t.Fatalf("zero-length clip rejected: %v", err)
	}
	if freeze.Duration() != 0 || freeze.Contains(10) {
		t.Fatal("zero-length clip should cover no frames")
	}
	if freeze.NormalizedIn() != 0 || freeze.NormalizedOut() != 1 {
		t.Fatalf("normalized points with no source = %v/%v", freeze.NormalizedIn(), freeze.NormalizedOut())
	}

	clip := mustClip(t, "c", 0, 10)
	if err := clip.SetRange(5, 4); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("SetRange should reject inverted range, got %v", err)
	}
	if clip.Start() != 0 || clip.End() != 10 {
		t.Fatal("rejected SetRange mutated the clip")
	}
}

func TestSourceRangeInvariant(t *testing.T) {
	clip, err := NewClip(ClipConfig{Name: "c", Start: 0, End: 50, SourceIn: 10, SourceOut: 60, SourceDuration: 100})
	if err != nil {
		t.Fatalf("NewClip: %v", err)
	}
	if math.Abs(clip.NormalizedIn()-0.1) > 1e-9 || math.Abs(clip.NormalizedOut()-0.6) > 1e-9 {
		t.Fatalf("normalized = %v/%v", clip.NormalizedIn(), clip.NormalizedOut())
	}
	if err := clip.SetSourceRange(70, 60); !errors.Is(err, ErrSourceRange) {
		t.Fatalf("expected ErrSourceRange for crossed points, got %v", err)
	}
	if err := clip.SetSourceRange(0, 101); !errors.Is(err, ErrSourceRange) {
		t.Fatalf("expected ErrSourceRange past media end, got %v", err)
	}
	if _, err := NewClip(ClipConfig{Name: "neg", Start: 0, End: 5, SourceIn: -1, SourceOut: 4, SourceDuration: 10}); !errors.Is(err, ErrSourceRange) {
		t.Fatalf("expected ErrSourceRange for negative in point, got %v", err)
	}
}

func TestCloneDropsLinkAndCopiesEffects(t *testing.T) {
	clip, _ := NewClip(ClipConfig{Name: "v", Start: 0, End: 30, LinkedClipID: "partner"})
	effect := NewEffect("opacity", Parameter{Name: "amount", Value: keyframe.Float(1)})
	clip.AddEffect(effect)
	effect.SetKeyframe("amount", keyframe.New(0, keyframe.Float(0), keyframe.Linear))
	grade := NeutralGrade()
	clip.SetGrade(&grade)

	clone := clip.Clone()
	if clone.ID() == clip.ID() {
		t.Fatal("clone should have a fresh id")
	}
	if clone.LinkedClipID() != "" {
		t.Fatal("clone must not keep the linked clip reference")
	}
	if clone.EffectCount() != 1 || clone.Effect(0) == effect || clone.Effect(0).Clip() != clone {
		t.Fatal("effects not deep-copied")
	}
	clone.Effect(0).SetKeyframe("amount", keyframe.New(0, keyframe.Float(5), keyframe.Linear))
	if v, _ := clip.ParameterAt(0, "amount", 0); !v.Equal(keyframe.Float(0)) {
		t.Fatalf("clone keyframes alias the original: %s", v)
	}
	if clone.Grade() == nil || *clone.Grade() != grade {
		t.Fatal("grade not copied")
	}
}

func TestParameterAtUsesClipRelativeFrames(t *testing.T) {
	clip := mustClip(t, "c", 100, 200)
	effect := NewEffect("zoom", Parameter{Name: "scale", Value: keyframe.Float(1)})
	clip.AddEffect(effect)
	effect.SetKeyframe("scale", keyframe.New(0, keyframe.Float(1), keyframe.Linear))
	effect.SetKeyframe("scale", keyframe.New(50, keyframe.Float(2), keyframe.Linear))

	v, ok := clip.ParameterAt(0, "scale", 125)
	if !ok || !v.Equal(keyframe.Float(1.5)) {
		t.Fatalf("ParameterAt(125) = %s %v", v, ok)
	}
	if _, ok := clip.ParameterAt(3, "scale", 125); ok {
		t.Fatal("missing effect index should report false")
	}
	if _, ok := clip.ParameterAt(0, "rotation", 125); ok {
		t.Fatal("unknown parameter should report false")
	}
}

func TestRemovingLastKeyframeUnbindsTrack(t *testing.T) {
	effect := NewEffect("blur", Parameter{Name: "radius", Value: keyframe.Float(3)})
	effect.SetKeyframe("radius", keyframe.New(10, keyframe.Float(1), keyframe.Linear))
	if _, ok := effect.RemoveKeyframe("radius", 10); !ok {
		t.Fatal("expected removal")
	}
	if effect.KeyframeTrack("radius") != nil {
		t.Fatal("empty track should be unbound")
	}
	if v, _ := effect.ValueAt("radius", 10); !v.Equal(keyframe.Float(3)) {
		t.Fatalf("expected static value after removal, got %s", v)
	}
	if _, _, ok := effect.SetKeyframe("missing", keyframe.New(0, keyframe.Float(0), keyframe.Linear)); ok {
		t.Fatal("keyframes on undeclared parameters must be refused")
	}
}

func TestVolumeDB(t *testing.T) {
	track := NewTrack(Audio, "A1")
	if track.Volume() != 1 || track.VolumeDB() != 0 {
		t.Fatalf("default gain should be unity / 0 dB, got %v / %v", track.Volume(), track.VolumeDB())
	}
	track.SetVolume(0)
	if track.VolumeDB() != MinVolumeDB {
		t.Fatalf("silent gain should floor at %v, got %v", MinVolumeDB, track.VolumeDB())
	}
	track.SetVolume(-3)
	if track.Volume() != 0 {
		t.Fatal("negative gain should be stored as zero")
	}
	track.SetVolume(2)
	if math.Abs(track.VolumeDB()-6.0206) > 1e-3 {
		t.Fatalf("2x gain = %v dB", track.VolumeDB())
	}
	track.SetPan(4)
	if track.Pan() != 1 {
		t.Fatalf("pan should clamp to 1, got %v", track.Pan())
	}
}

func TestTimecode(t *testing.T) {
	tests := []struct {
		frames int64
		fps    float64
		want   string
	}{
		{0, 30, "00:00:00:00"},
		{29, 30, "00:00:00:29"},
		{30 * 3661, 30, "01:01:01:00"},
		{45, 29.97, "00:00:01:15"},
		{-30, 25, "-00:00:01:05"},
		{10, 0, "00:00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatTimecode(tt.frames, tt.fps); got != tt.want {
			t.Errorf("FormatTimecode(%d, %v) = %s, want %s", tt.frames, tt.fps, got, tt.want)
		}
	}
	clip, _ := NewClip(ClipConfig{Start: 0, End: 48, FrameRate: 24})
	if clip.Seconds() != 2 {
		t.Fatalf("48 frames at 24fps = %v s", clip.Seconds())
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	if err != nil || c != (Color{R: 255, G: 128, A: 255}) {
		t.Fatalf("ParseColor = %+v %v", c, err)
	}
	if c.Hex() != "#FF8000" {
		t.Fatalf("Hex = %s", c.Hex())
	}
	translucent := Color{R: 1, G: 2, B: 3, A: 4}
	back, err := ParseColor(translucent.Hex())
	if err != nil || back != translucent {
		t.Fatalf("round trip = %+v %v", back, err)
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatal("expected error for short color")
	}
}
