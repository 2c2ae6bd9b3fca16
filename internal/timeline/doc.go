// Package timeline holds the authoritative model of an edit: the ordered
// tracks of a Timeline, the clips and transitions on each Track, markers,
// text overlays, and the effects (with keyframed parameters) attached to each
// Clip.
//
// Queries are synchronous and side-effect free. Mutating methods change the
// model directly and know nothing about undo; the history and edit packages
// layer invertible commands on top. Every mutating method publishes exactly
// one Event to the owning Timeline's listeners after the change is complete,
// so a listener never observes a half-applied mutation. Derived values such as
// DurationFrames and HasClips are computed from the live collections on every
// call.
//
// Reorder methods (MoveTrack, MoveClip, MoveEffect) ignore out-of-range
// indices instead of failing: they are typically driven by drag gestures that
// can race with list changes.
//
// The package is not safe for concurrent mutation.
package timeline
