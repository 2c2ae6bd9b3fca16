package edit

import (
	"reel/internal/history"
	"reel/internal/keyframe"
	"reel/internal/timeline"
)

// AddEffectCommand inserts a new effect into a clip's chain.
type AddEffectCommand struct {
	clip   *timeline.Clip
	effect *timeline.Effect
	index  int
}

// AddEffect builds a command that inserts an effect built from cfg at index.
// A negative index appends.
func AddEffect(clip *timeline.Clip, cfg timeline.EffectConfig, index int) (*AddEffectCommand, error) {
	const op = "add effect"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	if _, err := cleanName(op, "effect", cfg.Name); err != nil {
		return nil, err
	}
	if index < 0 {
		index = clip.EffectCount()
	}
	if index > clip.EffectCount() {
		return nil, history.Invalid(history.ErrInvalidRange, op, "index %d outside 0..%d", index, clip.EffectCount())
	}
	return &AddEffectCommand{clip: clip, effect: timeline.NewEffectFromConfig(cfg), index: index}, nil
}

func (c *AddEffectCommand) Do()                      { c.clip.InsertEffect(c.index, c.effect) }
func (c *AddEffectCommand) Undo()                    { c.clip.RemoveEffectAt(c.clip.IndexOfEffect(c.effect)) }
func (c *AddEffectCommand) Description() string      { return "Add Effect" }
func (c *AddEffectCommand) Effect() *timeline.Effect { return c.effect }

type removeEffect struct {
	clip   *timeline.Clip
	effect *timeline.Effect
	index  int
}

// RemoveEffect builds a command that removes the effect at index.
func RemoveEffect(clip *timeline.Clip, index int) (history.Command, error) {
	const op = "remove effect"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	effect := clip.Effect(index)
	if effect == nil {
		return nil, history.Invalid(history.ErrNotFound, op, "no effect at index %d", index)
	}
	return &removeEffect{clip: clip, effect: effect, index: index}, nil
}

func (c *removeEffect) Do() {
	c.index = c.clip.IndexOfEffect(c.effect)
	c.clip.RemoveEffectAt(c.index)
}

func (c *removeEffect) Undo()               { c.clip.InsertEffect(c.index, c.effect) }
func (c *removeEffect) Description() string { return "Remove Effect" }

type moveEffect struct {
	clip     *timeline.Clip
	from, to int
}

// MoveEffect builds a command that reorders a clip's effect chain.
func MoveEffect(clip *timeline.Clip, from, to int) (history.Command, error) {
	const op = "move effect"
	if err := editableClip(op, clip); err != nil {
		return nil, err
	}
	n := clip.EffectCount()
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, history.Invalid(history.ErrInvalidRange, op, "indices %d -> %d outside 0..%d", from, to, n-1)
	}
	if from == to {
		return nil, history.Invalid(history.ErrSameLocation, op, "effect is already at position %d", to)
	}
	return &moveEffect{clip: clip, from: from, to: to}, nil
}

func (c *moveEffect) Do()                 { c.clip.MoveEffect(c.from, c.to) }
func (c *moveEffect) Undo()               { c.clip.MoveEffect(c.to, c.from) }
func (c *moveEffect) Description() string { return "Move Effect" }

type setEffectEnabled struct {
	effect  *timeline.Effect
	enabled bool
}

// SetEffectEnabled builds a command that enables or bypasses effect.
func SetEffectEnabled(effect *timeline.Effect, enabled bool) (history.Command, error) {
	const op = "set effect enabled"
	if err := editableEffect(op, effect); err != nil {
		return nil, err
	}
	if effect.Enabled() == enabled {
		return nil, history.Invalid(history.ErrSameLocation, op, "effect %s already has enabled=%t", effect.Name(), enabled)
	}
	return &setEffectEnabled{effect: effect, enabled: enabled}, nil
}

func (c *setEffectEnabled) Do()   { c.effect.SetEnabled(c.enabled) }
func (c *setEffectEnabled) Undo() { c.effect.SetEnabled(!c.enabled) }

func (c *setEffectEnabled) Description() string {
	if c.enabled {
		return "Enable Effect"
	}
	return "Disable Effect"
}

type setParameter struct {
	effect   *timeline.Effect
	name     string
	value    keyframe.Value
	previous keyframe.Value
}

// SetParameter builds a command that changes the static value of a declared
// parameter. While the parameter is animated the value acts as the fallback
// for an emptied track.
func SetParameter(effect *timeline.Effect, name string, value keyframe.Value) (history.Command, error) {
	const op = "set parameter"
	if err := editableEffect(op, effect); err != nil {
		return nil, err
	}
	p, ok := effect.Parameter(name)
	if !ok {
		return nil, history.Invalid(history.ErrNotFound, op, "effect %s has no parameter %q", effect.Name(), name)
	}
	if err := finiteValue(op, value); err != nil {
		return nil, err
	}
	if p.Value.Equal(value) {
		return nil, history.Invalid(history.ErrSameLocation, op, "parameter %s already equals %s", name, value)
	}
	return &setParameter{effect: effect, name: name, value: value}, nil
}

func (c *setParameter) Do()                 { c.previous, _ = c.effect.SetParameter(c.name, c.value) }
func (c *setParameter) Undo()               { c.effect.SetParameter(c.name, c.previous) }
func (c *setParameter) Description() string { return "Set Parameter" }

func finiteValue(op string, v keyframe.Value) error {
	if v.Kind() != keyframe.KindFloat {
		return nil
	}
	if f, _ := v.Float(); !finite(f) {
		return history.Invalid(history.ErrInvalidRange, op, "value %v is not finite", f)
	}
	return nil
}

type setKeyframe struct {
	effect   *timeline.Effect
	name     string
	key      keyframe.Keyframe
	previous keyframe.Keyframe
	replaced bool
}

// SetKeyframe builds a command that inserts k on the track of parameter name,
// replacing a keyframe on the same frame. Undo restores the replaced keyframe
// or removes the inserted one. Frames are relative to the clip start.
func SetKeyframe(effect *timeline.Effect, name string, k keyframe.Keyframe) (history.Command, error) {
	const op = "set keyframe"
	if err := editableEffect(op, effect); err != nil {
		return nil, err
	}
	if !effect.HasParameter(name) {
		return nil, history.Invalid(history.ErrNotFound, op, "effect %s has no parameter %q", effect.Name(), name)
	}
	if k.Frame < 0 {
		return nil, history.Invalid(history.ErrInvalidRange, op, "keyframe frame %d is negative", k.Frame)
	}
	if err := finiteValue(op, k.Value); err != nil {
		return nil, err
	}
	if existing, ok := effect.KeyframeTrack(name).Find(k.Frame); ok && existing.Equal(k) {
		return nil, history.Invalid(history.ErrSameLocation, op, "identical keyframe already at frame %d", k.Frame)
	}
	return &setKeyframe{effect: effect, name: name, key: k}, nil
}

func (c *setKeyframe) Do() {
	c.previous, c.replaced, _ = c.effect.SetKeyframe(c.name, c.key)
}

func (c *setKeyframe) Undo() {
	if c.replaced {
		c.effect.SetKeyframe(c.name, c.previous)
		return
	}
	c.effect.RemoveKeyframe(c.name, c.key.Frame)
}

func (c *setKeyframe) Description() string { return "Set Keyframe" }

type removeKeyframe struct {
	effect  *timeline.Effect
	name    string
	frame   int64
	removed keyframe.Keyframe
}

// RemoveKeyframe builds a command that deletes the keyframe on frame.
func RemoveKeyframe(effect *timeline.Effect, name string, frame int64) (history.Command, error) {
	const op = "remove keyframe"
	if err := editableEffect(op, effect); err != nil {
		return nil, err
	}
	if _, ok := effect.KeyframeTrack(name).Find(frame); !ok {
		return nil, history.Invalid(history.ErrNotFound, op, "parameter %q has no keyframe at frame %d", name, frame)
	}
	return &removeKeyframe{effect: effect, name: name, frame: frame}, nil
}

func (c *removeKeyframe) Do()                 { c.removed, _ = c.effect.RemoveKeyframe(c.name, c.frame) }
func (c *removeKeyframe) Undo()               { c.effect.SetKeyframe(c.name, c.removed) }
func (c *removeKeyframe) Description() string { return "Remove Keyframe" }
