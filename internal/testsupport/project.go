package testsupport

import (
	"testing"

	"github.com/shopspring/decimal"

	"reel/internal/keyframe"
	"reel/internal/media"
	"reel/internal/project"
	"reel/internal/timeline"
)

// Fixed identifiers used by SampleProject.
const (
	SampleProjectID   = "proj-sample"
	SampleVideoTrack  = "track-v1"
	SampleAudioTrack  = "track-a1"
	SampleVideoClip   = "clip-interview"
	SampleBRollClip   = "clip-broll"
	SampleAudioClip   = "clip-music"
	SampleInterviewID = "media-interview"
	SampleBRollID     = "media-broll"
	SampleMusicID     = "media-music"
	SampleBinID       = "bin-footage"
)

// SampleProject builds a small, fully populated project at 30 fps:
//
//	V1: interview [0,300) with an opacity fade 0->1 over frames 0..30 and a
//	    decimal brightness parameter; b-roll [300,450)
//	A1: music [0,600) at gain 0.5
//
// plus a transition, a marker, a text overlay, and a "Footage" bin holding the
// two video items.
func SampleProject(t testing.TB) *project.Project {
	t.Helper()

	p := project.New("Sample", project.Settings{FrameRate: 30, Width: 1920, Height: 1080})
	p.ID = SampleProjectID
	lib := media.NewLibraryWithSystemID("bin-all")
	p.Library = lib
	for _, item := range []*media.Item{
		{ID: SampleInterviewID, Name: "Interview", Path: "/media/interview.mov", Kind: media.KindVideo, DurationFrames: 900, FrameRate: 30},
		{ID: SampleBRollID, Name: "B Roll", Path: "/media/broll.mov", Kind: media.KindVideo, DurationFrames: 300, FrameRate: 30},
		{ID: SampleMusicID, Name: "Music", Path: "/media/music.wav", Kind: media.KindAudio, DurationFrames: 1800, FrameRate: 30},
	} {
		lib.InsertItem(lib.ItemCount(), item)
	}
	bin := media.NewBin(SampleBinID, "Footage")
	lib.InsertBin(0, bin)
	lib.AddToBin(bin.ID(), SampleInterviewID, 0)
	lib.AddToBin(bin.ID(), SampleBRollID, 1)

	tl := p.Timeline
	video := timeline.NewTrackWithID(SampleVideoTrack, timeline.Video, "V1")
	audio := timeline.NewTrackWithID(SampleAudioTrack, timeline.Audio, "A1")
	tl.InsertTrack(0, video)
	tl.InsertTrack(1, audio)
	audio.SetVolume(0.5)

	interview := mustClip(t, timeline.ClipConfig{
		ID: SampleVideoClip, Name: "Interview", MediaID: SampleInterviewID,
		Start: 0, End: 300, SourceIn: 100, SourceOut: 400, SourceDuration: 900, FrameRate: 30,
	})
	video.AddClip(interview)
	fade := timeline.NewEffectFromConfig(timeline.EffectConfig{
		ID:   "fx-opacity",
		Name: "opacity",
		Parameters: []timeline.Parameter{
			{Name: "opacity", Value: keyframe.Float(1)},
			{Name: "brightness", Value: keyframe.Decimal(decimal.RequireFromString("0.25"))},
		},
	})
	interview.AddEffect(fade)
	fade.SetKeyframe("opacity", keyframe.New(0, keyframe.Float(0), keyframe.Linear))
	fade.SetKeyframe("opacity", keyframe.New(30, keyframe.Float(1), keyframe.Linear))

	broll := mustClip(t, timeline.ClipConfig{
		ID: SampleBRollClip, Name: "B Roll", MediaID: SampleBRollID,
		Start: 300, End: 450, SourceOut: 150, SourceDuration: 300, FrameRate: 30,
	})
	video.AddClip(broll)
	video.AddTransition(timeline.Transition{
		ID: "tr-1", Kind: "dissolve", FromClipID: SampleVideoClip, ToClipID: SampleBRollClip, DurationFrames: 15,
	})

	music := mustClip(t, timeline.ClipConfig{
		ID: SampleAudioClip, Name: "Music", MediaID: SampleMusicID,
		Start: 0, End: 600, SourceOut: 600, SourceDuration: 1800, FrameRate: 30,
	})
	audio.AddClip(music)

	tl.AddMarker(timeline.Marker{ID: "mk-1", Frame: 150, Name: "Beat", Color: timeline.White})
	tl.AddOverlay(timeline.TextOverlay{
		ID: "ov-1", Text: "Reel", StartFrame: 0, EndFrame: 90, X: 0.5, Y: 0.9, FontSize: 48, Color: timeline.White,
	})
	return p
}

func mustClip(t testing.TB, cfg timeline.ClipConfig) *timeline.Clip {
	t.Helper()
	clip, err := timeline.NewClip(cfg)
	if err != nil {
		t.Fatalf("new clip %s: %v", cfg.ID, err)
	}
	return clip
}
