package edit

import (
	"fmt"

	"github.com/google/uuid"

	"reel/internal/history"
	"reel/internal/timeline"
)

// DefaultTransitionKind is used when a transition is added without a kind.
const DefaultTransitionKind = "dissolve"

// DefaultFontSize applies to overlays created without a size.
const DefaultFontSize = 48

// MarkerColor is the color given to markers created without one.
var MarkerColor = timeline.Color{R: 0xF5, G: 0xA6, B: 0x23, A: 0xFF}

type addTransition struct {
	track *timeline.Track
	tr    timeline.Transition
	index int
}

// AddTransition builds a command that blends the end of one clip into the
// start of another on track.
func AddTransition(track *timeline.Track, tr timeline.Transition) (history.Command, error) {
	const op = "add transition"
	if err := unlockedTrack(op, track); err != nil {
		return nil, err
	}
	if tr.FromClipID == "" || tr.FromClipID == tr.ToClipID {
		return nil, history.Invalid(history.ErrInvalidRange, op, "a transition needs two different clips")
	}
	for _, id := range []string{tr.FromClipID, tr.ToClipID} {
		if !trackHasClip(track, id) {
			return nil, history.Invalid(history.ErrNotFound, op, "clip %s is not on track %s", id, track.Name())
		}
	}
	if tr.DurationFrames <= 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "duration must be positive, got %d", tr.DurationFrames)
	}
	if tr.Kind == "" {
		tr.Kind = DefaultTransitionKind
	}
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	} else if _, i := track.TransitionByID(tr.ID); i >= 0 {
		return nil, history.Invalid(history.ErrDuplicateName, op, "transition id %s already in use", tr.ID)
	}
	return &addTransition{track: track, tr: tr, index: len(track.Transitions())}, nil
}

func trackHasClip(track *timeline.Track, id string) bool {
	for _, c := range track.Clips() {
		if c.ID() == id {
			return true
		}
	}
	return false
}

func (c *addTransition) Do()                 { c.track.InsertTransition(c.index, c.tr) }
func (c *addTransition) Undo()               { c.track.RemoveTransition(c.tr.ID) }
func (c *addTransition) Description() string { return "Add Transition" }

type removeTransition struct {
	track   *timeline.Track
	id      string
	removed timeline.Transition
	index   int
}

// RemoveTransition builds a command that deletes a transition from track.
func RemoveTransition(track *timeline.Track, id string) (history.Command, error) {
	const op = "remove transition"
	if err := unlockedTrack(op, track); err != nil {
		return nil, err
	}
	if _, i := track.TransitionByID(id); i < 0 {
		return nil, history.Invalid(history.ErrNotFound, op, "transition %s not found on track %s", id, track.Name())
	}
	return &removeTransition{track: track, id: id}, nil
}

func (c *removeTransition) Do()                 { c.removed, c.index = c.track.RemoveTransition(c.id) }
func (c *removeTransition) Undo()               { c.track.InsertTransition(c.index, c.removed) }
func (c *removeTransition) Description() string { return "Remove Transition" }

type addMarker struct {
	tl     *timeline.Timeline
	marker timeline.Marker
	index  int
}

// AddMarker builds a command that appends a marker. An empty name becomes
// "Marker n".
func AddMarker(tl *timeline.Timeline, m timeline.Marker) (history.Command, error) {
	const op = "add marker"
	if tl == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no timeline")
	}
	if m.Frame < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "marker frame %d is negative", m.Frame)
	}
	if m.Name == "" {
		m.Name = fmt.Sprintf("Marker %d", len(tl.Markers())+1)
	}
	name, err := cleanName(op, "marker", m.Name)
	if err != nil {
		return nil, err
	}
	m.Name = name
	if m.Color == (timeline.Color{}) {
		m.Color = MarkerColor
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	} else if _, i := tl.MarkerByID(m.ID); i >= 0 {
		return nil, history.Invalid(history.ErrDuplicateName, op, "marker id %s already in use", m.ID)
	}
	return &addMarker{tl: tl, marker: m, index: len(tl.Markers())}, nil
}

func (c *addMarker) Do()                 { c.tl.InsertMarker(c.index, c.marker) }
func (c *addMarker) Undo()               { c.tl.RemoveMarker(c.marker.ID) }
func (c *addMarker) Description() string { return "Add Marker" }

type removeMarker struct {
	tl      *timeline.Timeline
	id      string
	removed timeline.Marker
	index   int
}

// RemoveMarker builds a command that deletes the marker with id.
func RemoveMarker(tl *timeline.Timeline, id string) (history.Command, error) {
	const op = "remove marker"
	if tl == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no timeline")
	}
	if _, i := tl.MarkerByID(id); i < 0 {
		return nil, history.Invalid(history.ErrNotFound, op, "marker %s not found", id)
	}
	return &removeMarker{tl: tl, id: id}, nil
}

func (c *removeMarker) Do()                 { c.removed, c.index = c.tl.RemoveMarker(c.id) }
func (c *removeMarker) Undo()               { c.tl.InsertMarker(c.index, c.removed) }
func (c *removeMarker) Description() string { return "Remove Marker" }

type addOverlay struct {
	tl      *timeline.Timeline
	overlay timeline.TextOverlay
	index   int
}

// AddOverlay builds a command that appends a text overlay. Missing font size
// and color default to DefaultFontSize and white.
func AddOverlay(tl *timeline.Timeline, o timeline.TextOverlay) (history.Command, error) {
	const op = "add overlay"
	if tl == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no timeline")
	}
	if o.Text == "" {
		return nil, history.Invalid(history.ErrInvalidName, op, "overlay text must not be empty")
	}
	if o.StartFrame < 0 || o.EndFrame < o.StartFrame {
		return nil, history.Invalid(history.ErrInvalidRange, op, "overlay range [%d, %d) is invalid", o.StartFrame, o.EndFrame)
	}
	if !finite(o.X) || !finite(o.Y) || o.X < 0 || o.X > 1 || o.Y < 0 || o.Y > 1 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "position (%v, %v) outside the unit square", o.X, o.Y)
	}
	if !finite(o.FontSize) || o.FontSize < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "font size %v is invalid", o.FontSize)
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Color == (timeline.Color{}) {
		o.Color = timeline.White
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	} else if _, i := tl.OverlayByID(o.ID); i >= 0 {
		return nil, history.Invalid(history.ErrDuplicateName, op, "overlay id %s already in use", o.ID)
	}
	return &addOverlay{tl: tl, overlay: o, index: len(tl.Overlays())}, nil
}

func (c *addOverlay) Do()                 { c.tl.InsertOverlay(c.index, c.overlay) }
func (c *addOverlay) Undo()               { c.tl.RemoveOverlay(c.overlay.ID) }
func (c *addOverlay) Description() string { return "Add Text Overlay" }

type removeOverlay struct {
	tl      *timeline.Timeline
	id      string
	removed timeline.TextOverlay
	index   int
}

// RemoveOverlay builds a command that deletes the overlay with id.
func RemoveOverlay(tl *timeline.Timeline, id string) (history.Command, error) {
	const op = "remove overlay"
	if tl == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no timeline")
	}
	if _, i := tl.OverlayByID(id); i < 0 {
		return nil, history.Invalid(history.ErrNotFound, op, "overlay %s not found", id)
	}
	return &removeOverlay{tl: tl, id: id}, nil
}

func (c *removeOverlay) Do()                 { c.removed, c.index = c.tl.RemoveOverlay(c.id) }
func (c *removeOverlay) Undo()               { c.tl.InsertOverlay(c.index, c.removed) }
func (c *removeOverlay) Description() string { return "Remove Text Overlay" }
