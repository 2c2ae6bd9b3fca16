package timeline

import (
	"fmt"
	"slices"
)

// DefaultFrameRate is used when a timeline is created without a usable rate.
const DefaultFrameRate = 30.0

// Timeline owns the ordered tracks, markers, and text overlays of one edit.
// Video tracks composite top-down in slice order; audio tracks mix.
type Timeline struct {
	frameRate float64
	tracks    []*Track
	markers   []Marker
	overlays  []TextOverlay
	events    notifier
}

// New returns an empty timeline at the given project frame rate.
func New(frameRate float64) *Timeline {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Timeline{frameRate: frameRate}
}

// FrameRate returns the project frame rate.
func (tl *Timeline) FrameRate() float64 { return tl.frameRate }

// Subscribe registers fn for change events and returns a function that
// removes it.
func (tl *Timeline) Subscribe(fn Listener) func() {
	return tl.events.subscribe(fn)
}

func (tl *Timeline) publish(ev Event) {
	tl.events.publish(ev)
}

// Batch runs fn and holds back every event it raises until fn returns, so
// listeners only see the state after the whole change. Batches nest.
func (tl *Timeline) Batch(fn func()) {
	tl.events.hold()
	defer tl.events.release()
	fn()
}

// DurationFrames is the largest clip end frame across every track.
func (tl *Timeline) DurationFrames() int64 {
	var end int64
	for _, track := range tl.tracks {
		if e := track.EndFrame(); e > end {
			end = e
		}
	}
	return end
}

// HasClips reports whether any track holds at least one clip.
func (tl *Timeline) HasClips() bool {
	for _, track := range tl.tracks {
		if len(track.clips) > 0 {
			return true
		}
	}
	return false
}

// Tracks returns the tracks in composite order.
func (tl *Timeline) Tracks() []*Track {
	return slices.Clone(tl.tracks)
}

// TrackCount returns the number of tracks.
func (tl *Timeline) TrackCount() int { return len(tl.tracks) }

// Track returns the track at index i or nil.
func (tl *Timeline) Track(i int) *Track {
	if i < 0 || i >= len(tl.tracks) {
		return nil
	}
	return tl.tracks[i]
}

// TrackByID looks a track up by identifier.
func (tl *Timeline) TrackByID(id string) *Track {
	for _, track := range tl.tracks {
		if track.id == id {
			return track
		}
	}
	return nil
}

// TrackByName looks a track up by its display name.
func (tl *Timeline) TrackByName(name string) *Track {
	for _, track := range tl.tracks {
		if track.name == name {
			return track
		}
	}
	return nil
}

// IndexOfTrack returns the position of t or -1.
func (tl *Timeline) IndexOfTrack(t *Track) int {
	return indexOf(tl.tracks, t)
}

// NextTrackName proposes the next sequential name for a track of kind
// (V1, V2, ... or A1, A2, ...), skipping names already in use.
func (tl *Timeline) NextTrackName(kind TrackKind) string {
	count := 0
	for _, track := range tl.tracks {
		if track.kind == kind {
			count++
		}
	}
	for n := count + 1; ; n++ {
		name := fmt.Sprintf("%s%d", kind.Prefix(), n)
		if tl.TrackByName(name) == nil {
			return name
		}
	}
}

// AddTrack creates and attaches a new track. Audio tracks are appended; video
// tracks are placed directly after the last existing video track.
func (tl *Timeline) AddTrack(kind TrackKind) *Track {
	track := NewTrack(kind, tl.NextTrackName(kind))
	tl.InsertTrack(tl.DefaultTrackIndex(kind), track)
	return track
}

// DefaultTrackIndex is where AddTrack would place a new track of kind.
func (tl *Timeline) DefaultTrackIndex(kind TrackKind) int {
	if kind == Audio {
		return len(tl.tracks)
	}
	lastVideo := -1
	for i, track := range tl.tracks {
		if track.kind == Video {
			lastVideo = i
		}
	}
	return lastVideo + 1
}

// InsertTrack attaches t at index i (clamped to the valid range) and returns
// the index used.
func (tl *Timeline) InsertTrack(i int, t *Track) int {
	if t == nil {
		return -1
	}
	tl.tracks, i = insertAt(tl.tracks, i, t)
	t.owner = tl
	tl.publish(Event{Kind: EventTrackAdded, Track: t, Index: i})
	return i
}

// RemoveTrack detaches t together with its clips and returns its former index,
// or -1 when t is not on this timeline.
func (tl *Timeline) RemoveTrack(t *Track) int {
	i := tl.IndexOfTrack(t)
	if i < 0 {
		return -1
	}
	tl.tracks = removeAt(tl.tracks, i)
	t.owner = nil
	tl.publish(Event{Kind: EventTrackRemoved, Track: t, Index: i})
	return i
}

// MoveTrack reorders a track. Out-of-range indices are ignored.
func (tl *Timeline) MoveTrack(oldIndex, newIndex int) {
	if !move(tl.tracks, oldIndex, newIndex) {
		return
	}
	tl.publish(Event{Kind: EventTrackMoved, Track: tl.tracks[newIndex], Index: newIndex})
}

// ClipAtFrame returns the clip whose [start, end) interval contains frame.
// When track is non-nil only that track is searched; otherwise tracks are
// searched in order and the first match wins. It returns nil when nothing
// covers the frame.
func (tl *Timeline) ClipAtFrame(frame int64, track *Track) *Clip {
	if track != nil {
		return track.ClipAtFrame(frame)
	}
	for _, t := range tl.tracks {
		if clip := t.ClipAtFrame(frame); clip != nil {
			return clip
		}
	}
	return nil
}

// ClipByID finds a clip anywhere on the timeline.
func (tl *Timeline) ClipByID(id string) *Clip {
	for _, track := range tl.tracks {
		for _, clip := range track.clips {
			if clip.id == id {
				return clip
			}
		}
	}
	return nil
}

// ClipByName finds the first clip with the given name, in track order.
func (tl *Timeline) ClipByName(name string) *Clip {
	for _, track := range tl.tracks {
		for _, clip := range track.clips {
			if clip.name == name {
				return clip
			}
		}
	}
	return nil
}

// Markers returns the markers in insertion order.
func (tl *Timeline) Markers() []Marker {
	return slices.Clone(tl.markers)
}

// MarkerByID returns the marker and its index.
func (tl *Timeline) MarkerByID(id string) (Marker, int) {
	for i, m := range tl.markers {
		if m.ID == id {
			return m, i
		}
	}
	return Marker{}, -1
}

// AddMarker appends a marker.
func (tl *Timeline) AddMarker(m Marker) int {
	return tl.InsertMarker(len(tl.markers), m)
}

// InsertMarker places m at index i (clamped) and returns the index used.
func (tl *Timeline) InsertMarker(i int, m Marker) int {
	if m.ID == "" {
		m.ID = newID()
	}
	tl.markers, i = insertAt(tl.markers, i, m)
	tl.publish(Event{Kind: EventMarkersChanged, Index: i})
	return i
}

// RemoveMarker deletes the marker with id and returns it with its former index.
func (tl *Timeline) RemoveMarker(id string) (Marker, int) {
	m, i := tl.MarkerByID(id)
	if i < 0 {
		return Marker{}, -1
	}
	tl.markers = removeAt(tl.markers, i)
	tl.publish(Event{Kind: EventMarkersChanged, Index: i})
	return m, i
}

// Overlays returns the text overlays in insertion order.
func (tl *Timeline) Overlays() []TextOverlay {
	return slices.Clone(tl.overlays)
}

// OverlayByID returns the overlay and its index.
func (tl *Timeline) OverlayByID(id string) (TextOverlay, int) {
	for i, o := range tl.overlays {
		if o.ID == id {
			return o, i
		}
	}
	return TextOverlay{}, -1
}

// AddOverlay appends a text overlay.
func (tl *Timeline) AddOverlay(o TextOverlay) int {
	return tl.InsertOverlay(len(tl.overlays), o)
}

// InsertOverlay places o at index i (clamped) and returns the index used.
func (tl *Timeline) InsertOverlay(i int, o TextOverlay) int {
	if o.ID == "" {
		o.ID = newID()
	}
	tl.overlays, i = insertAt(tl.overlays, i, o)
	tl.publish(Event{Kind: EventOverlaysChanged, Index: i})
	return i
}

// RemoveOverlay deletes the overlay with id and returns it with its former
// index.
func (tl *Timeline) RemoveOverlay(id string) (TextOverlay, int) {
	o, i := tl.OverlayByID(id)
	if i < 0 {
		return TextOverlay{}, -1
	}
	tl.overlays = removeAt(tl.overlays, i)
	tl.publish(Event{Kind: EventOverlaysChanged, Index: i})
	return o, i
}
