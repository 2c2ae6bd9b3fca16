package edit

import (
	"reel/internal/history"
	"reel/internal/textutil"
	"reel/internal/timeline"
)

// AddTrackCommand creates a track at the default position for its kind.
type AddTrackCommand struct {
	tl    *timeline.Timeline
	track *timeline.Track
	index int
}

// AddTrack builds a command that adds a track of kind. An empty name picks
// the next sequential V{n}/A{n} name.
func AddTrack(tl *timeline.Timeline, kind timeline.TrackKind, name string) (*AddTrackCommand, error) {
	const op = "add track"
	if tl == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no timeline")
	}
	if name == "" {
		name = tl.NextTrackName(kind)
	}
	name, err := cleanName(op, "track", name)
	if err != nil {
		return nil, err
	}
	if err := uniqueTrackName(op, tl, nil, name); err != nil {
		return nil, err
	}
	return &AddTrackCommand{
		tl:    tl,
		track: timeline.NewTrack(kind, name),
		index: tl.DefaultTrackIndex(kind),
	}, nil
}

func (c *AddTrackCommand) Do()                    { c.tl.InsertTrack(c.index, c.track) }
func (c *AddTrackCommand) Undo()                  { c.tl.RemoveTrack(c.track) }
func (c *AddTrackCommand) Description() string    { return "Add Track" }
func (c *AddTrackCommand) Track() *timeline.Track { return c.track }

func uniqueTrackName(op string, tl *timeline.Timeline, self *timeline.Track, name string) error {
	for _, other := range tl.Tracks() {
		if other != self && textutil.SameName(other.Name(), name) {
			return history.Invalid(history.ErrDuplicateName, op, "a track named %q already exists", other.Name())
		}
	}
	return nil
}

type removeTrack struct {
	tl    *timeline.Timeline
	track *timeline.Track
	index int
}

// RemoveTrack builds a command that removes a track with its clips.
func RemoveTrack(tl *timeline.Timeline, track *timeline.Track) (history.Command, error) {
	const op = "remove track"
	if err := trackOnTimeline(op, tl, track); err != nil {
		return nil, err
	}
	if track.Locked() {
		return nil, history.Invalid(history.ErrLocked, op, "track %s is locked", track.Name())
	}
	return &removeTrack{tl: tl, track: track, index: -1}, nil
}

func (c *removeTrack) Do()                 { c.index = c.tl.RemoveTrack(c.track) }
func (c *removeTrack) Undo()               { c.tl.InsertTrack(c.index, c.track) }
func (c *removeTrack) Description() string { return "Remove Track" }

type moveTrack struct {
	tl       *timeline.Timeline
	from, to int
}

// MoveTrack builds a command that moves track to index to.
func MoveTrack(tl *timeline.Timeline, track *timeline.Track, to int) (history.Command, error) {
	const op = "move track"
	if err := trackOnTimeline(op, tl, track); err != nil {
		return nil, err
	}
	from := tl.IndexOfTrack(track)
	if to < 0 || to >= tl.TrackCount() {
		return nil, history.Invalid(history.ErrInvalidRange, op, "index %d outside 0..%d", to, tl.TrackCount()-1)
	}
	if from == to {
		return nil, history.Invalid(history.ErrSameLocation, op, "track %s is already at position %d", track.Name(), to)
	}
	return &moveTrack{tl: tl, from: from, to: to}, nil
}

func (c *moveTrack) Do()                 { c.tl.MoveTrack(c.from, c.to) }
func (c *moveTrack) Undo()               { c.tl.MoveTrack(c.to, c.from) }
func (c *moveTrack) Description() string { return "Move Track" }

type renameTrack struct {
	track    *timeline.Track
	name     string
	previous string
}

// RenameTrack builds a command that renames track.
func RenameTrack(tl *timeline.Timeline, track *timeline.Track, name string) (history.Command, error) {
	const op = "rename track"
	if err := trackOnTimeline(op, tl, track); err != nil {
		return nil, err
	}
	name, err := cleanName(op, "track", name)
	if err != nil {
		return nil, err
	}
	if name == track.Name() {
		return nil, history.Invalid(history.ErrSameLocation, op, "track is already named %q", name)
	}
	if err := uniqueTrackName(op, tl, track, name); err != nil {
		return nil, err
	}
	return &renameTrack{track: track, name: name}, nil
}

func (c *renameTrack) Do() {
	c.previous = c.track.Name()
	c.track.Rename(c.name)
}

func (c *renameTrack) Undo()               { c.track.Rename(c.previous) }
func (c *renameTrack) Description() string { return "Rename Track" }

type setTrackMix struct {
	track               *timeline.Track
	volume, pan         float64
	prevVolume, prevPan float64
}

// SetTrackMix builds a command that sets an audio track's linear gain and
// pan.
func SetTrackMix(track *timeline.Track, volume, pan float64) (history.Command, error) {
	const op = "set track mix"
	if track == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "track not found")
	}
	if track.Kind() != timeline.Audio {
		return nil, history.Invalid(history.ErrUnsupported, op, "track %s is not an audio track", track.Name())
	}
	if !finite(volume) || volume < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "volume must be a non-negative gain, got %v", volume)
	}
	if !finite(pan) || pan < -1 || pan > 1 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "pan must be within -1..1, got %v", pan)
	}
	if volume == track.Volume() && pan == track.Pan() {
		return nil, history.Invalid(history.ErrSameLocation, op, "mix unchanged")
	}
	return &setTrackMix{track: track, volume: volume, pan: pan}, nil
}

func (c *setTrackMix) Do() {
	c.prevVolume, c.prevPan = c.track.Volume(), c.track.Pan()
	applyMix(c.track, c.volume, c.pan)
}

func (c *setTrackMix) Undo()               { applyMix(c.track, c.prevVolume, c.prevPan) }
func (c *setTrackMix) Description() string { return "Adjust Track Mix" }

func applyMix(track *timeline.Track, volume, pan float64) {
	atomically(track.Timeline(), func() {
		track.SetVolume(volume)
		track.SetPan(pan)
	})
}

// TrackFlags are the toggleable states of a track.
type TrackFlags struct {
	Muted  bool
	Locked bool
	Hidden bool
}

// FlagsOf returns the current flags of track.
func FlagsOf(track *timeline.Track) TrackFlags {
	return TrackFlags{Muted: track.Muted(), Locked: track.Locked(), Hidden: track.Hidden()}
}

func applyFlags(track *timeline.Track, f TrackFlags) {
	atomically(track.Timeline(), func() {
		track.SetMuted(f.Muted)
		track.SetLocked(f.Locked)
		track.SetHidden(f.Hidden)
	})
}

type setTrackFlags struct {
	track    *timeline.Track
	flags    TrackFlags
	previous TrackFlags
}

// SetTrackFlags builds a command that replaces the mute, lock, and hide
// states of track. It is allowed on locked tracks so they can be unlocked.
func SetTrackFlags(track *timeline.Track, flags TrackFlags) (history.Command, error) {
	const op = "set track flags"
	if track == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "track not found")
	}
	if FlagsOf(track) == flags {
		return nil, history.Invalid(history.ErrSameLocation, op, "flags unchanged")
	}
	return &setTrackFlags{track: track, flags: flags}, nil
}

func (c *setTrackFlags) Do() {
	c.previous = FlagsOf(c.track)
	applyFlags(c.track, c.flags)
}

func (c *setTrackFlags) Undo()               { applyFlags(c.track, c.previous) }
func (c *setTrackFlags) Description() string { return "Change Track State" }
