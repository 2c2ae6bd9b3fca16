package timeline

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TrackKind is the media type a track carries.
type TrackKind uint8

const (
	Video TrackKind = iota
	Audio
)

func (k TrackKind) String() string {
	if k == Audio {
		return "audio"
	}
	return "video"
}

// Prefix is the letter used for auto-generated track names.
func (k TrackKind) Prefix() string {
	if k == Audio {
		return "A"
	}
	return "V"
}

// ParseTrackKind accepts "video"/"audio" (any case) or the V/A prefixes.
func ParseTrackKind(value string) (TrackKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "video", "v":
		return Video, nil
	case "audio", "a":
		return Audio, nil
	}
	return Video, fmt.Errorf("unknown track kind %q", value)
}

const (
	// MinVolumeDB is reported for silent or negative gain.
	MinVolumeDB = -96.0
	// DefaultVolume is unity gain.
	DefaultVolume = 1.0
)

func newID() string { return uuid.NewString() }

// Track is an ordered lane of clips and transitions of one kind. Clip order in
// the slice is insertion order; timeline position comes from each clip's own
// start and end frames.
type Track struct {
	id     string
	kind   TrackKind
	name   string
	volume float64
	pan    float64
	muted  bool
	locked bool
	hidden bool

	clips       []*Clip
	transitions []Transition

	owner *Timeline
}

// NewTrack returns a detached track with unity gain and centered pan.
func NewTrack(kind TrackKind, name string) *Track {
	return NewTrackWithID(newID(), kind, name)
}

// NewTrackWithID is NewTrack with a caller-supplied identifier, used when
// restoring saved projects.
func NewTrackWithID(id string, kind TrackKind, name string) *Track {
	if id == "" {
		id = newID()
	}
	return &Track{id: id, kind: kind, name: name, volume: DefaultVolume}
}

func (t *Track) ID() string          { return t.id }
func (t *Track) Kind() TrackKind     { return t.kind }
func (t *Track) Name() string        { return t.name }
func (t *Track) Volume() float64     { return t.volume }
func (t *Track) Pan() float64        { return t.pan }
func (t *Track) Muted() bool         { return t.muted }
func (t *Track) Locked() bool        { return t.locked }
func (t *Track) Hidden() bool        { return t.hidden }
func (t *Track) Timeline() *Timeline { return t.owner }
func (t *Track) ClipCount() int      { return len(t.clips) }
func (t *Track) Clips() []*Clip      { return slices.Clone(t.clips) }

// IndexOfClip returns the position of c in the clip slice or -1.
func (t *Track) IndexOfClip(c *Clip) int { return indexOf(t.clips, c) }

func (t *Track) notify(ev Event) {
	if t.owner == nil {
		return
	}
	if ev.Track == nil {
		ev.Track = t
	}
	t.owner.publish(ev)
}

// VolumeDB converts the linear gain to decibels, flooring at MinVolumeDB.
func (t *Track) VolumeDB() float64 {
	return GainToDB(t.volume)
}

// GainToDB converts linear gain to decibels with a MinVolumeDB floor.
func GainToDB(gain float64) float64 {
	if gain <= 0 || math.IsNaN(gain) {
		return MinVolumeDB
	}
	db := 20 * math.Log10(gain)
	if db < MinVolumeDB {
		return MinVolumeDB
	}
	return db
}

// SetVolume sets linear gain; negative values are stored as zero.
func (t *Track) SetVolume(v float64) {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	t.volume = v
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

// SetPan sets stereo pan clamped to [-1, 1].
func (t *Track) SetPan(p float64) {
	switch {
	case math.IsNaN(p):
		p = 0
	case p < -1:
		p = -1
	case p > 1:
		p = 1
	}
	t.pan = p
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

func (t *Track) SetMuted(v bool) {
	t.muted = v
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

func (t *Track) SetLocked(v bool) {
	t.locked = v
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

func (t *Track) SetHidden(v bool) {
	t.hidden = v
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

// Rename changes the display name.
func (t *Track) Rename(name string) {
	t.name = name
	t.notify(Event{Kind: EventTrackChanged, Index: -1})
}

// Clip returns the clip at index i or nil.
func (t *Track) Clip(i int) *Clip {
	if i < 0 || i >= len(t.clips) {
		return nil
	}
	return t.clips[i]
}

// EndFrame is the largest end frame of any clip on the track.
func (t *Track) EndFrame() int64 {
	var end int64
	for _, c := range t.clips {
		if c.end > end {
			end = c.end
		}
	}
	return end
}

// ClipAtFrame returns the first clip (in slice order) whose [start, end)
// interval contains frame.
func (t *Track) ClipAtFrame(frame int64) *Clip {
	for _, c := range t.clips {
		if c.Contains(frame) {
			return c
		}
	}
	return nil
}

// AddClip appends c and returns its index.
func (t *Track) AddClip(c *Clip) int {
	return t.InsertClip(len(t.clips), c)
}

// InsertClip places c at index i (clamped) and returns the index used.
func (t *Track) InsertClip(i int, c *Clip) int {
	if c == nil {
		return -1
	}
	t.clips, i = insertAt(t.clips, i, c)
	c.track = t
	t.notify(Event{Kind: EventClipAdded, Clip: c, Index: i})
	return i
}

// RemoveClip detaches c and returns its former index, or -1.
func (t *Track) RemoveClip(c *Clip) int {
	i := t.IndexOfClip(c)
	if i < 0 {
		return -1
	}
	t.clips = removeAt(t.clips, i)
	c.track = nil
	t.notify(Event{Kind: EventClipRemoved, Clip: c, Index: i})
	return i
}

// MoveClip reorders a clip within the slice. Out-of-range indices are ignored.
func (t *Track) MoveClip(oldIndex, newIndex int) {
	if !move(t.clips, oldIndex, newIndex) {
		return
	}
	t.notify(Event{Kind: EventClipMoved, Clip: t.clips[newIndex], Index: newIndex})
}

// Transitions returns the track's transitions in insertion order.
func (t *Track) Transitions() []Transition {
	return slices.Clone(t.transitions)
}

// TransitionByID returns a transition and its index.
func (t *Track) TransitionByID(id string) (Transition, int) {
	for i, tr := range t.transitions {
		if tr.ID == id {
			return tr, i
		}
	}
	return Transition{}, -1
}

// AddTransition appends tr.
func (t *Track) AddTransition(tr Transition) int {
	return t.InsertTransition(len(t.transitions), tr)
}

// InsertTransition places tr at index i (clamped) and returns the index used.
func (t *Track) InsertTransition(i int, tr Transition) int {
	if tr.ID == "" {
		tr.ID = newID()
	}
	t.transitions, i = insertAt(t.transitions, i, tr)
	t.notify(Event{Kind: EventTransitionsChanged, Index: i})
	return i
}

// RemoveTransition deletes the transition with id and returns it with its
// former index.
func (t *Track) RemoveTransition(id string) (Transition, int) {
	tr, i := t.TransitionByID(id)
	if i < 0 {
		return Transition{}, -1
	}
	t.transitions = removeAt(t.transitions, i)
	t.notify(Event{Kind: EventTransitionsChanged, Index: i})
	return tr, i
}
