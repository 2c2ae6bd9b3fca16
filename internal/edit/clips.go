package edit

import (
	"reel/internal/history"
	"reel/internal/media"
	"reel/internal/timeline"
)

// AddClipCommand places a new clip at the end of a track's clip list.
type AddClipCommand struct {
	track *timeline.Track
	clip  *timeline.Clip
	index int
}

// AddClip builds a command that creates a clip from cfg on track.
func AddClip(track *timeline.Track, cfg timeline.ClipConfig) (*AddClipCommand, error) {
	const op = "add clip"
	if err := unlockedTrack(op, track); err != nil {
		return nil, err
	}
	if track.Timeline() == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "track %s is not on a timeline", track.Name())
	}
	if cfg.Start < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "start frame %d is negative", cfg.Start)
	}
	if cfg.ID != "" && track.Timeline().ClipByID(cfg.ID) != nil {
		return nil, history.Invalid(history.ErrDuplicateName, op, "clip id %s already in use", cfg.ID)
	}
	clip, err := timeline.NewClip(cfg)
	if err != nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}
	return &AddClipCommand{track: track, clip: clip, index: track.ClipCount()}, nil
}

func (c *AddClipCommand) Do()                  { c.track.InsertClip(c.index, c.clip) }
func (c *AddClipCommand) Undo()                { c.track.RemoveClip(c.clip) }
func (c *AddClipCommand) Description() string  { return "Add Clip" }
func (c *AddClipCommand) Clip() *timeline.Clip { return c.clip }

// TrackKindFor maps a media kind to the track kind that can hold it.
func TrackKindFor(kind media.Kind) timeline.TrackKind {
	if kind == media.KindAudio {
		return timeline.Audio
	}
	return timeline.Video
}

// ClipFromItem describes a clip spanning the whole of item, starting at
// frame start.
func ClipFromItem(item *media.Item, start int64) timeline.ClipConfig {
	return timeline.ClipConfig{
		Name:           item.Name,
		MediaID:        item.ID,
		Start:          start,
		End:            start + item.DurationFrames,
		SourceOut:      item.DurationFrames,
		SourceDuration: item.DurationFrames,
		FrameRate:      item.FrameRate,
	}
}

// AddClipFromItem builds an AddClip command for a library item, refusing items
// whose kind does not match the track.
func AddClipFromItem(track *timeline.Track, item *media.Item, start int64) (*AddClipCommand, error) {
	const op = "add clip"
	if item == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "media item not found")
	}
	if track != nil && TrackKindFor(item.Kind) != track.Kind() {
		return nil, history.Invalid(history.ErrUnsupported, op, "%s media cannot go on %s track %s", item.Kind, track.Kind(), track.Name())
	}
	return AddClip(track, ClipFromItem(item, start))
}

type removeClip struct {
	track *timeline.Track
	clip  *timeline.Clip
	index int
}

// RemoveClip builds a command that removes clip from its track.
func RemoveClip(clip *timeline.Clip) (history.Command, error) {
	if err := editableClip("remove clip", clip); err != nil {
		return nil, err
	}
	return &removeClip{track: clip.Track(), clip: clip, index: -1}, nil
}

func (c *removeClip) Do()                 { c.index = c.track.RemoveClip(c.clip) }
func (c *removeClip) Undo()               { c.track.InsertClip(c.index, c.clip) }
func (c *removeClip) Description() string { return "Remove Clip" }

type moveClip struct {
	clip     *timeline.Clip
	from, to *timeline.Track
	start    int64

	prevStart int64
	prevIndex int
}

// MoveClip builds a command that repositions clip to start newStart,
// optionally on another track of the same kind. A nil track keeps the clip
// where it is.
func MoveClip(clip *timeline.Clip, track *timeline.Track, newStart int64) (history.Command, error) {
	const op = "move clip"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	from := clip.Track()
	if track == nil {
		track = from
	}
	if track != from {
		if err := unlockedTrack(op, track); err != nil {
			return nil, err
		}
		if track.Timeline() != from.Timeline() {
			return nil, history.Invalid(history.ErrNotFound, op, "track %s is on another timeline", track.Name())
		}
		if track.Kind() != from.Kind() {
			return nil, history.Invalid(history.ErrUnsupported, op, "cannot move a %s clip to %s track %s", from.Kind(), track.Kind(), track.Name())
		}
	}
	if newStart < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "start frame %d is negative", newStart)
	}
	if track == from && newStart == clip.Start() {
		return nil, history.Invalid(history.ErrSameLocation, op, "clip already starts at frame %d", newStart)
	}
	return &moveClip{clip: clip, from: from, to: track, start: newStart}, nil
}

func (c *moveClip) Do() {
	atomically(timelineOf(c.from), func() {
		c.prevStart = c.clip.Start()
		duration := c.clip.Duration()
		if c.to != c.from {
			c.prevIndex = c.from.RemoveClip(c.clip)
		}
		_ = c.clip.SetRange(c.start, c.start+duration)
		if c.to != c.from {
			c.to.AddClip(c.clip)
		}
	})
}

func (c *moveClip) Undo() {
	atomically(timelineOf(c.from), func() {
		duration := c.clip.Duration()
		if c.to != c.from {
			c.to.RemoveClip(c.clip)
		}
		_ = c.clip.SetRange(c.prevStart, c.prevStart+duration)
		if c.to != c.from {
			c.from.InsertClip(c.prevIndex, c.clip)
		}
	})
}

func (c *moveClip) Description() string { return "Move Clip" }

// ClipRange is the timeline and source extent of a clip.
type ClipRange struct {
	Start, End          int64
	SourceIn, SourceOut int64
}

// RangeOf returns the current extent of clip.
func RangeOf(clip *timeline.Clip) ClipRange {
	return ClipRange{Start: clip.Start(), End: clip.End(), SourceIn: clip.SourceIn(), SourceOut: clip.SourceOut()}
}

func applyRange(clip *timeline.Clip, r ClipRange) {
	_ = clip.Trim(r.Start, r.End, r.SourceIn, r.SourceOut)
}

type trimClip struct {
	clip     *timeline.Clip
	target   ClipRange
	previous ClipRange
}

// TrimClip builds a command that sets the timeline and source ranges of clip
// in one step.
func TrimClip(clip *timeline.Clip, r ClipRange) (history.Command, error) {
	const op = "trim clip"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	if r.Start < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "start frame %d is negative", r.Start)
	}
	if err := clip.CheckTrim(r.Start, r.End, r.SourceIn, r.SourceOut); err != nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}
	if RangeOf(clip) == r {
		return nil, history.Invalid(history.ErrSameLocation, op, "clip range unchanged")
	}
	return &trimClip{clip: clip, target: r}, nil
}

func (c *trimClip) Do() {
	c.previous = RangeOf(c.clip)
	applyRange(c.clip, c.target)
}

func (c *trimClip) Undo()               { applyRange(c.clip, c.previous) }
func (c *trimClip) Description() string { return "Trim Clip" }

// SplitClipCommand cuts a clip in two at a timeline frame. The head keeps the
// original clip; the tail is a copy appended to the same track.
type SplitClipCommand struct {
	history.Command
	tail *timeline.Clip
}

// Tail returns the clip created for the second half.
func (c *SplitClipCommand) Tail() *timeline.Clip { return c.tail }

// SplitClip builds a compound command that trims clip to end at frame and adds
// a tail clip covering the remainder. Keyframes on the tail are re-based to
// its own start.
func SplitClip(clip *timeline.Clip, frame int64) (*SplitClipCommand, error) {
	const op = "split clip"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	if frame <= clip.Start() || frame >= clip.End() {
		return nil, history.Invalid(history.ErrInvalidRange, op, "frame %d is outside the clip interior (%d, %d)", frame, clip.Start(), clip.End())
	}
	offset := frame - clip.Start()
	cut := min(clip.SourceIn()+offset, clip.SourceOut())

	tail := clip.Clone()
	if err := tail.Trim(frame, clip.End(), cut, clip.SourceOut()); err != nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}
	for _, e := range tail.Effects() {
		e.ShiftKeyframes(-offset)
	}
	head := ClipRange{Start: clip.Start(), End: frame, SourceIn: clip.SourceIn(), SourceOut: cut}
	if err := clip.CheckTrim(head.Start, head.End, head.SourceIn, head.SourceOut); err != nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}

	track := clip.Track()
	trim := &trimClip{clip: clip, target: head}
	add := &AddClipCommand{track: track, clip: tail, index: track.ClipCount()}
	return &SplitClipCommand{
		Command: &batched{Command: history.Group("Split Clip", trim, add), tl: timelineOf(track)},
		tail:    tail,
	}, nil
}

type linkClips struct {
	a, b         *timeline.Clip
	prevA, prevB string
}

// LinkClips builds a command that links a and b to each other, typically a
// video clip and its audio.
func LinkClips(a, b *timeline.Clip) (history.Command, error) {
	const op = "link clips"
	if err := editableClip(op, a); err != nil {
		return nil, err
	}
	if err := editableClip(op, b); err != nil {
		return nil, err
	}
	if a == b {
		return nil, history.Invalid(history.ErrInvalidRange, op, "a clip cannot be linked to itself")
	}
	if a.LinkedClipID() == b.ID() && b.LinkedClipID() == a.ID() {
		return nil, history.Invalid(history.ErrSameLocation, op, "clips are already linked")
	}
	return &linkClips{a: a, b: b}, nil
}

func (c *linkClips) Do() {
	atomically(timelineOf(c.a.Track()), func() {
		c.prevA, c.prevB = c.a.LinkedClipID(), c.b.LinkedClipID()
		c.a.SetLinkedClipID(c.b.ID())
		c.b.SetLinkedClipID(c.a.ID())
	})
}

func (c *linkClips) Undo() {
	atomically(timelineOf(c.a.Track()), func() {
		c.b.SetLinkedClipID(c.prevB)
		c.a.SetLinkedClipID(c.prevA)
	})
}

func (c *linkClips) Description() string { return "Link Clips" }

type unlinkClip struct {
	clip, partner *timeline.Clip
	prevClip      string
	prevPartner   string
}

// UnlinkClip builds a command that clears the link of clip and, when the
// partner still points back, the partner's link too.
func UnlinkClip(clip *timeline.Clip) (history.Command, error) {
	const op = "unlink clip"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	if clip.LinkedClipID() == "" {
		return nil, history.Invalid(history.ErrSameLocation, op, "clip is not linked")
	}
	var partner *timeline.Clip
	if tl := clip.Track().Timeline(); tl != nil {
		if p := tl.ClipByID(clip.LinkedClipID()); p != nil && p.LinkedClipID() == clip.ID() {
			partner = p
		}
	}
	return &unlinkClip{clip: clip, partner: partner}, nil
}

func (c *unlinkClip) Do() {
	atomically(timelineOf(c.clip.Track()), func() {
		c.prevClip = c.clip.LinkedClipID()
		c.clip.SetLinkedClipID("")
		if c.partner != nil {
			c.prevPartner = c.partner.LinkedClipID()
			c.partner.SetLinkedClipID("")
		}
	})
}

func (c *unlinkClip) Undo() {
	atomically(timelineOf(c.clip.Track()), func() {
		if c.partner != nil {
			c.partner.SetLinkedClipID(c.prevPartner)
		}
		c.clip.SetLinkedClipID(c.prevClip)
	})
}

func (c *unlinkClip) Description() string { return "Unlink Clip" }

type setColorGrade struct {
	clip     *timeline.Clip
	grade    *timeline.ColorGrade
	previous *timeline.ColorGrade
}

// SetColorGrade builds a command that replaces the grade of clip. A nil grade
// removes it.
func SetColorGrade(clip *timeline.Clip, grade *timeline.ColorGrade) (history.Command, error) {
	const op = "set color grade"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	if grade != nil {
		for _, v := range []float64{grade.Exposure, grade.Contrast, grade.Saturation, grade.Temperature, grade.Tint} {
			if !finite(v) {
				return nil, history.Invalid(history.ErrInvalidRange, op, "grade values must be finite")
			}
		}
		cp := *grade
		grade = &cp
	}
	if sameGrade(clip.Grade(), grade) {
		return nil, history.Invalid(history.ErrSameLocation, op, "grade unchanged")
	}
	return &setColorGrade{clip: clip, grade: grade}, nil
}

func sameGrade(a, b *timeline.ColorGrade) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (c *setColorGrade) Do()                 { c.previous = c.clip.SetGrade(c.grade) }
func (c *setColorGrade) Undo()               { c.clip.SetGrade(c.previous) }
func (c *setColorGrade) Description() string { return "Set Color Grade" }
