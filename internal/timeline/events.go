package timeline

// EventKind names the mutation an Event reports.
type EventKind string

const (
	EventTrackAdded         EventKind = "track_added"
	EventTrackRemoved       EventKind = "track_removed"
	EventTrackMoved         EventKind = "track_moved"
	EventTrackChanged       EventKind = "track_changed"
	EventClipAdded          EventKind = "clip_added"
	EventClipRemoved        EventKind = "clip_removed"
	EventClipMoved          EventKind = "clip_moved"
	EventClipChanged        EventKind = "clip_changed"
	EventEffectsChanged     EventKind = "effects_changed"
	EventParameterChanged   EventKind = "parameter_changed"
	EventKeyframesChanged   EventKind = "keyframes_changed"
	EventTransitionsChanged EventKind = "transitions_changed"
	EventMarkersChanged     EventKind = "markers_changed"
	EventOverlaysChanged    EventKind = "overlays_changed"
)

// Event describes a completed mutation. Track, Clip, and Effect are set when
// the mutation concerns them; Index is the affected position in the parent
// collection when meaningful and -1 otherwise.
type Event struct {
	Kind      EventKind
	Track     *Track
	Clip      *Clip
	Effect    *Effect
	Parameter string
	Index     int
}

// Listener receives events synchronously on the mutating goroutine.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

type notifier struct {
	subs    []subscription
	nextID  int
	held    int
	pending []Event
}

func (n *notifier) subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier) publish(ev Event) {
	if len(n.subs) == 0 {
		return
	}
	if n.held > 0 {
		n.pending = append(n.pending, ev)
		return
	}
	// Snapshot so listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), n.subs...)
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// hold defers delivery until the matching release.
func (n *notifier) hold() { n.held++ }

// release delivers the held events once the outermost hold ends.
func (n *notifier) release() {
	n.held--
	if n.held > 0 {
		return
	}
	pending := n.pending
	n.pending = nil
	for _, ev := range pending {
		n.publish(ev)
	}
}
