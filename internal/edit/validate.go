package edit

import (
	"math"
	"unicode/utf8"

	"reel/internal/history"
	"reel/internal/textutil"
	"reel/internal/timeline"
)

// MaxNameLength bounds track, bin, and marker names.
const MaxNameLength = 64

// cleanName normalizes a user-supplied name and rejects empty, overlong, or
// control-character names.
func cleanName(op, subject, name string) (string, error) {
	if textutil.HasControl(name) {
		return "", history.Invalid(history.ErrInvalidName, op, "%s name contains control characters", subject)
	}
	name = textutil.NormalizeName(name)
	if name == "" {
		return "", history.Invalid(history.ErrInvalidName, op, "%s name must not be empty", subject)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", history.Invalid(history.ErrInvalidName, op, "%s name is longer than %d characters", subject, MaxNameLength)
	}
	return name, nil
}

func trackOnTimeline(op string, tl *timeline.Timeline, track *timeline.Track) error {
	if tl == nil || track == nil || tl.IndexOfTrack(track) < 0 {
		return history.Invalid(history.ErrNotFound, op, "track is not on the timeline")
	}
	return nil
}

func unlockedTrack(op string, track *timeline.Track) error {
	if track == nil {
		return history.Invalid(history.ErrNotFound, op, "track not found")
	}
	if track.Locked() {
		return history.Invalid(history.ErrLocked, op, "track %s is locked", track.Name())
	}
	return nil
}

// editableClip requires clip to sit on an unlocked track.
func editableClip(op string, clip *timeline.Clip) error {
	if clip == nil || clip.Track() == nil {
		return history.Invalid(history.ErrNotFound, op, "clip is not on a track")
	}
	return unlockedTrack(op, clip.Track())
}

// editableEffect requires effect to belong to an editable clip.
func editableEffect(op string, effect *timeline.Effect) error {
	if effect == nil || effect.Clip() == nil {
		return history.Invalid(history.ErrNotFound, op, "effect is not attached to a clip")
	}
	return editableClip(op, effect.Clip())
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
