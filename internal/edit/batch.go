package edit

import (
	"reel/internal/history"
	"reel/internal/media"
	"reel/internal/timeline"
)

// atomically runs fn inside a timeline batch. Detached tracks and clips have
// no timeline and publish nothing, so fn runs directly.
func atomically(tl *timeline.Timeline, fn func()) {
	if tl == nil {
		fn()
		return
	}
	tl.Batch(fn)
}

func timelineOf(track *timeline.Track) *timeline.Timeline {
	if track == nil {
		return nil
	}
	return track.Timeline()
}

// batched applies a multi-step command as one timeline change.
type batched struct {
	history.Command
	tl *timeline.Timeline
}

func (b *batched) Do()   { atomically(b.tl, b.Command.Do) }
func (b *batched) Undo() { atomically(b.tl, b.Command.Undo) }

// libraryBatched applies a multi-step command as one library change.
type libraryBatched struct {
	history.Command
	lib *media.Library
}

func (b *libraryBatched) Do()   { b.lib.Batch(b.Command.Do) }
func (b *libraryBatched) Undo() { b.lib.Batch(b.Command.Undo) }
