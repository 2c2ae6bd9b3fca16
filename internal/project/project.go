package project

import (
	"github.com/google/uuid"

	"reel/internal/media"
	"reel/internal/timeline"
)

// Project is a timeline together with the media it references.
type Project struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Timeline *timeline.Timeline
	Library  *media.Library
}

// Settings carry the canvas attributes of a new project.
type Settings struct {
	FrameRate float64
	Width     int
	Height    int
}

// New returns an empty project with a fresh id.
func New(name string, settings Settings) *Project {
	return &Project{
		ID:       uuid.NewString(),
		Name:     name,
		Width:    settings.Width,
		Height:   settings.Height,
		Timeline: timeline.New(settings.FrameRate),
		Library:  media.NewLibrary(),
	}
}

// Summary reports headline counts for listings.
type Summary struct {
	Tracks      int
	Clips       int
	Items       int
	Duration    int64
	DurationTC  string
	FrameRate   float64
	Markers     int
	Overlays    int
	Bins        int
	Transitions int
}

// Summarize computes the headline counts of p.
func (p *Project) Summarize() Summary {
	tl := p.Timeline
	s := Summary{
		Tracks:    tl.TrackCount(),
		Items:     p.Library.ItemCount(),
		Duration:  tl.DurationFrames(),
		FrameRate: tl.FrameRate(),
		Markers:   len(tl.Markers()),
		Overlays:  len(tl.Overlays()),
		Bins:      len(p.Library.UserBins()),
	}
	s.DurationTC = timeline.FormatTimecode(s.Duration, s.FrameRate)
	for _, track := range tl.Tracks() {
		s.Clips += track.ClipCount()
		s.Transitions += len(track.Transitions())
	}
	return s
}
