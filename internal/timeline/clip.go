package timeline

import (
	"errors"
	"fmt"
	"slices"

	"reel/internal/keyframe"
)

var (
	// ErrInvalidRange is returned when a clip's end frame precedes its start.
	ErrInvalidRange = errors.New("end frame precedes start frame")
	// ErrSourceRange is returned when source in/out points fall outside the
	// media or cross each other.
	ErrSourceRange = errors.New("source range outside media bounds")
)

// ClipConfig carries the attributes used to construct a Clip. Empty ID means
// a fresh one is generated. When SourceOut and SourceDuration are both zero
// the source range defaults to [SourceIn, SourceIn+duration].
type ClipConfig struct {
	ID             string
	Name           string
	MediaID        string
	Start          int64
	End            int64
	SourceIn       int64
	SourceOut      int64
	SourceDuration int64
	FrameRate      float64
	LinkedClipID   string
}

// Clip is a placed, trimmed reference to source media. It occupies the
// half-open frame interval [Start, End) on its track.
type Clip struct {
	id             string
	name           string
	mediaID        string
	start          int64
	end            int64
	sourceIn       int64
	sourceOut      int64
	sourceDuration int64
	frameRate      float64
	effects        []*Effect
	grade          *ColorGrade
	// linkedClipID is a weak reference to a partner clip; it is never
	// followed by Clone and is cleared on copies.
	linkedClipID string

	track *Track
}

// NewClip validates cfg and returns a detached clip. A zero-length clip is
// allowed; an end frame before the start frame is rejected.
func NewClip(cfg ClipConfig) (*Clip, error) {
	if cfg.End < cfg.Start {
		return nil, fmt.Errorf("clip %q [%d, %d): %w", cfg.Name, cfg.Start, cfg.End, ErrInvalidRange)
	}
	duration := cfg.End - cfg.Start
	if cfg.SourceOut == 0 && cfg.SourceDuration == 0 {
		cfg.SourceOut = cfg.SourceIn + duration
		cfg.SourceDuration = cfg.SourceOut
	}
	if cfg.SourceDuration == 0 {
		cfg.SourceDuration = cfg.SourceOut
	}
	if err := validateSource(duration, cfg.SourceIn, cfg.SourceOut, cfg.SourceDuration); err != nil {
		return nil, fmt.Errorf("clip %q: %w", cfg.Name, err)
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultFrameRate
	}
	if cfg.ID == "" {
		cfg.ID = newID()
	}
	return &Clip{
		id:             cfg.ID,
		name:           cfg.Name,
		mediaID:        cfg.MediaID,
		start:          cfg.Start,
		end:            cfg.End,
		sourceIn:       cfg.SourceIn,
		sourceOut:      cfg.SourceOut,
		sourceDuration: cfg.SourceDuration,
		frameRate:      cfg.FrameRate,
		linkedClipID:   cfg.LinkedClipID,
	}, nil
}

func validateSource(duration, in, out, total int64) error {
	if duration <= 0 {
		return nil
	}
	if in < 0 || in > out || out > total {
		return fmt.Errorf("in=%d out=%d duration=%d: %w", in, out, total, ErrSourceRange)
	}
	return nil
}

func (c *Clip) ID() string            { return c.id }
func (c *Clip) Name() string          { return c.name }
func (c *Clip) MediaID() string       { return c.mediaID }
func (c *Clip) Start() int64          { return c.start }
func (c *Clip) End() int64            { return c.end }
func (c *Clip) Duration() int64       { return c.end - c.start }
func (c *Clip) SourceIn() int64       { return c.sourceIn }
func (c *Clip) SourceOut() int64      { return c.sourceOut }
func (c *Clip) SourceDuration() int64 { return c.sourceDuration }
func (c *Clip) FrameRate() float64    { return c.frameRate }
func (c *Clip) LinkedClipID() string  { return c.linkedClipID }
func (c *Clip) Track() *Track         { return c.track }
func (c *Clip) EffectCount() int      { return len(c.effects) }
func (c *Clip) Effects() []*Effect    { return slices.Clone(c.effects) }

// IndexOfEffect returns the position of e in the effect chain or -1.
func (c *Clip) IndexOfEffect(e *Effect) int { return indexOf(c.effects, e) }

// Config returns the clip's attributes in constructor form.
func (c *Clip) Config() ClipConfig {
	return ClipConfig{
		ID:             c.id,
		Name:           c.name,
		MediaID:        c.mediaID,
		Start:          c.start,
		End:            c.end,
		SourceIn:       c.sourceIn,
		SourceOut:      c.sourceOut,
		SourceDuration: c.sourceDuration,
		FrameRate:      c.frameRate,
		LinkedClipID:   c.linkedClipID,
	}
}

func (c *Clip) notify(ev Event) {
	if c.track == nil {
		return
	}
	if ev.Clip == nil {
		ev.Clip = c
	}
	c.track.notify(ev)
}

// Contains reports whether frame falls inside [Start, End).
func (c *Clip) Contains(frame int64) bool {
	return frame >= c.start && frame < c.end
}

// Seconds is the clip duration in seconds at the clip's own frame rate.
func (c *Clip) Seconds() float64 {
	return FramesToSeconds(c.Duration(), c.frameRate)
}

// Timecode formats the clip duration as HH:MM:SS:FF at the clip's rate.
func (c *Clip) Timecode() string {
	return FormatTimecode(c.Duration(), c.frameRate)
}

// NormalizedIn is SourceIn as a fraction of the source duration, clamped to
// [0, 1]. It is 0 when the source duration is unknown.
func (c *Clip) NormalizedIn() float64 {
	if c.sourceDuration <= 0 {
		return 0
	}
	return clampUnit(float64(c.sourceIn) / float64(c.sourceDuration))
}

// NormalizedOut is SourceOut as a fraction of the source duration, clamped to
// [0, 1]. It is 1 when the source duration is unknown.
func (c *Clip) NormalizedOut() float64 {
	if c.sourceDuration <= 0 {
		return 1
	}
	return clampUnit(float64(c.sourceOut) / float64(c.sourceDuration))
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Rename changes the display name.
func (c *Clip) Rename(name string) {
	c.name = name
	c.notify(Event{Kind: EventClipChanged, Index: -1})
}

// SetRange repositions the clip on the timeline.
func (c *Clip) SetRange(start, end int64) error {
	if end < start {
		return fmt.Errorf("clip %q [%d, %d): %w", c.name, start, end, ErrInvalidRange)
	}
	c.start, c.end = start, end
	c.notify(Event{Kind: EventClipChanged, Index: -1})
	return nil
}

// SetSourceRange changes the trim points within the source media.
func (c *Clip) SetSourceRange(in, out int64) error {
	if err := validateSource(c.Duration(), in, out, c.sourceDuration); err != nil {
		return fmt.Errorf("clip %q: %w", c.name, err)
	}
	c.sourceIn, c.sourceOut = in, out
	c.notify(Event{Kind: EventClipChanged, Index: -1})
	return nil
}

// CheckTrim reports whether Trim would accept the given ranges.
func (c *Clip) CheckTrim(start, end, in, out int64) error {
	if end < start {
		return fmt.Errorf("clip %q [%d, %d): %w", c.name, start, end, ErrInvalidRange)
	}
	if err := validateSource(end-start, in, out, c.sourceDuration); err != nil {
		return fmt.Errorf("clip %q: %w", c.name, err)
	}
	return nil
}

// Trim sets the timeline range and source range together, publishing a single
// change event. Nothing changes when either range is invalid.
func (c *Clip) Trim(start, end, in, out int64) error {
	if err := c.CheckTrim(start, end, in, out); err != nil {
		return err
	}
	c.start, c.end = start, end
	c.sourceIn, c.sourceOut = in, out
	c.notify(Event{Kind: EventClipChanged, Index: -1})
	return nil
}

// Grade returns a copy of the color grade, or nil.
func (c *Clip) Grade() *ColorGrade {
	if c.grade == nil {
		return nil
	}
	g := *c.grade
	return &g
}

// SetGrade stores a copy of g (nil clears) and returns the previous grade.
func (c *Clip) SetGrade(g *ColorGrade) *ColorGrade {
	prev := c.grade
	if g != nil {
		cp := *g
		c.grade = &cp
	} else {
		c.grade = nil
	}
	c.notify(Event{Kind: EventClipChanged, Index: -1})
	return prev
}

// SetLinkedClipID records a weak link to a partner clip. Empty clears it.
func (c *Clip) SetLinkedClipID(id string) {
	c.linkedClipID = id
	c.notify(Event{Kind: EventClipChanged, Index: -1})
}

// Effect returns the effect at index i or nil.
func (c *Clip) Effect(i int) *Effect {
	if i < 0 || i >= len(c.effects) {
		return nil
	}
	return c.effects[i]
}

// EffectByID returns the effect with id and its index.
func (c *Clip) EffectByID(id string) (*Effect, int) {
	for i, e := range c.effects {
		if e.id == id {
			return e, i
		}
	}
	return nil, -1
}

// AddEffect appends e to the processing chain.
func (c *Clip) AddEffect(e *Effect) int {
	return c.InsertEffect(len(c.effects), e)
}

// InsertEffect places e at index i (clamped) and returns the index used.
func (c *Clip) InsertEffect(i int, e *Effect) int {
	if e == nil {
		return -1
	}
	c.effects, i = insertAt(c.effects, i, e)
	e.clip = c
	c.notify(Event{Kind: EventEffectsChanged, Effect: e, Index: i})
	return i
}

// RemoveEffectAt detaches and returns the effect at index i, or nil.
func (c *Clip) RemoveEffectAt(i int) *Effect {
	if i < 0 || i >= len(c.effects) {
		return nil
	}
	e := c.effects[i]
	c.effects = removeAt(c.effects, i)
	e.clip = nil
	c.notify(Event{Kind: EventEffectsChanged, Effect: e, Index: i})
	return e
}

// MoveEffect reorders the effect chain. Out-of-range indices are ignored.
func (c *Clip) MoveEffect(oldIndex, newIndex int) {
	if !move(c.effects, oldIndex, newIndex) {
		return
	}
	c.notify(Event{Kind: EventEffectsChanged, Effect: c.effects[newIndex], Index: newIndex})
}

// ParameterAt evaluates parameter name of the effect at effectIndex for a
// timeline frame. Keyframes are stored relative to the clip start.
func (c *Clip) ParameterAt(effectIndex int, name string, frame int64) (keyframe.Value, bool) {
	e := c.Effect(effectIndex)
	if e == nil {
		return keyframe.Null(), false
	}
	return e.ValueAt(name, frame-c.start)
}

// Clone returns a detached deep copy with a fresh id. Effects, keyframe
// tracks, and the grade are copied; the linked-clip reference is dropped.
func (c *Clip) Clone() *Clip {
	cp := &Clip{
		id:             newID(),
		name:           c.name,
		mediaID:        c.mediaID,
		start:          c.start,
		end:            c.end,
		sourceIn:       c.sourceIn,
		sourceOut:      c.sourceOut,
		sourceDuration: c.sourceDuration,
		frameRate:      c.frameRate,
		grade:          c.Grade(),
	}
	for _, e := range c.effects {
		ec := e.Clone()
		ec.clip = cp
		cp.effects = append(cp.effects, ec)
	}
	return cp
}
