package keyframe

import "sort"

// ControlPoint is a normalized Bezier handle: X is the fraction of the span's
// duration, Y the fraction of its value change.
type ControlPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Default handles make a Bezier span identical to Linear.
var (
	DefaultEaseIn  = ControlPoint{X: 2.0 / 3.0, Y: 2.0 / 3.0}
	DefaultEaseOut = ControlPoint{X: 1.0 / 3.0, Y: 1.0 / 3.0}
)

// Keyframe is one control point of an animated parameter.
type Keyframe struct {
	Frame   int64
	Value   Value
	Mode    Mode
	EaseIn  ControlPoint
	EaseOut ControlPoint
}

// New builds a keyframe with default Bezier handles.
func New(frame int64, value Value, mode Mode) Keyframe {
	return Keyframe{
		Frame:   frame,
		Value:   value,
		Mode:    mode,
		EaseIn:  DefaultEaseIn,
		EaseOut: DefaultEaseOut,
	}
}

// Equal reports whether both keyframes carry identical data.
func (k Keyframe) Equal(other Keyframe) bool {
	return k.Frame == other.Frame &&
		k.Mode == other.Mode &&
		k.EaseIn == other.EaseIn &&
		k.EaseOut == other.EaseOut &&
		k.Value.Equal(other.Value)
}

// Track holds the keyframes of one parameter, ordered by strictly increasing
// frame. The zero Track is empty and ready to use.
type Track struct {
	keys []Keyframe
}

// NewTrack builds a track from keyframes in any order. Later entries win when
// two share a frame.
func NewTrack(keys ...Keyframe) *Track {
	t := &Track{}
	for _, k := range keys {
		t.Set(k)
	}
	return t
}

// Len returns the number of keyframes.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keyframes returns a copy of the keyframes in frame order.
func (t *Track) Keyframes() []Keyframe {
	if t == nil || len(t.keys) == 0 {
		return nil
	}
	out := make([]Keyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

// At returns the keyframe at index i.
func (t *Track) At(i int) (Keyframe, bool) {
	if t == nil || i < 0 || i >= len(t.keys) {
		return Keyframe{}, false
	}
	return t.keys[i], true
}

// search returns the index of the first keyframe with Frame >= frame.
func (t *Track) search(frame int64) int {
	return sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame >= frame })
}

// searchAfter returns the index of the first keyframe with Frame > frame.
func (t *Track) searchAfter(frame int64) int {
	return sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame > frame })
}

// Find returns the keyframe sitting exactly on frame.
func (t *Track) Find(frame int64) (Keyframe, bool) {
	if t == nil {
		return Keyframe{}, false
	}
	idx := t.search(frame)
	if idx < len(t.keys) && t.keys[idx].Frame == frame {
		return t.keys[idx], true
	}
	return Keyframe{}, false
}

// Set inserts k in frame order. When a keyframe already sits on k.Frame it is
// replaced and returned along with true.
func (t *Track) Set(k Keyframe) (Keyframe, bool) {
	idx := t.search(k.Frame)
	if idx < len(t.keys) && t.keys[idx].Frame == k.Frame {
		prev := t.keys[idx]
		t.keys[idx] = k
		return prev, true
	}
	t.keys = append(t.keys, Keyframe{})
	copy(t.keys[idx+1:], t.keys[idx:])
	t.keys[idx] = k
	return Keyframe{}, false
}

// Remove deletes the keyframe on frame, returning it.
func (t *Track) Remove(frame int64) (Keyframe, bool) {
	if t == nil {
		return Keyframe{}, false
	}
	idx := t.search(frame)
	if idx >= len(t.keys) || t.keys[idx].Frame != frame {
		return Keyframe{}, false
	}
	removed := t.keys[idx]
	t.keys = append(t.keys[:idx], t.keys[idx+1:]...)
	return removed, true
}

// Clone returns an independent copy.
func (t *Track) Clone() *Track {
	if t == nil {
		return nil
	}
	return &Track{keys: t.Keyframes()}
}

// Shift moves every keyframe by delta frames.
func (t *Track) Shift(delta int64) {
	if t == nil {
		return
	}
	for i := range t.keys {
		t.keys[i].Frame += delta
	}
}
