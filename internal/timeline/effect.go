package timeline

import (
	"slices"
	"sort"

	"reel/internal/keyframe"
)

// Parameter is a named, non-animated effect setting. When the owning effect
// has a keyframe track bound to the same name, Value is the fallback used
// while the track is empty.
type Parameter struct {
	Name  string
	Value keyframe.Value
}

// EffectConfig carries the attributes used to construct an Effect.
type EffectConfig struct {
	ID         string
	Name       string
	Disabled   bool
	Parameters []Parameter
}

// Effect is one step of a clip's processing chain.
type Effect struct {
	id      string
	name    string
	enabled bool
	params  []Parameter
	tracks  map[string]*keyframe.Track

	clip *Clip
}

// NewEffect returns an enabled effect with the given parameters.
func NewEffect(name string, params ...Parameter) *Effect {
	return NewEffectFromConfig(EffectConfig{Name: name, Parameters: params})
}

// NewEffectFromConfig builds an effect from cfg. Duplicate parameter names
// keep the first occurrence.
func NewEffectFromConfig(cfg EffectConfig) *Effect {
	if cfg.ID == "" {
		cfg.ID = newID()
	}
	e := &Effect{
		id:      cfg.ID,
		name:    cfg.Name,
		enabled: !cfg.Disabled,
		tracks:  make(map[string]*keyframe.Track),
	}
	for _, p := range cfg.Parameters {
		if e.paramIndex(p.Name) >= 0 {
			continue
		}
		e.params = append(e.params, p)
	}
	return e
}

func (e *Effect) ID() string    { return e.id }
func (e *Effect) Name() string  { return e.name }
func (e *Effect) Enabled() bool { return e.enabled }
func (e *Effect) Clip() *Clip   { return e.clip }

func (e *Effect) notify(ev Event) {
	if e.clip == nil {
		return
	}
	if ev.Effect == nil {
		ev.Effect = e
	}
	ev.Index = e.clip.IndexOfEffect(e)
	e.clip.notify(ev)
}

// SetEnabled toggles the effect.
func (e *Effect) SetEnabled(v bool) {
	e.enabled = v
	e.notify(Event{Kind: EventEffectsChanged})
}

// Parameters returns the parameters in declaration order.
func (e *Effect) Parameters() []Parameter {
	return slices.Clone(e.params)
}

func (e *Effect) paramIndex(name string) int {
	for i, p := range e.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Parameter returns the named parameter.
func (e *Effect) Parameter(name string) (Parameter, bool) {
	if i := e.paramIndex(name); i >= 0 {
		return e.params[i], true
	}
	return Parameter{}, false
}

// HasParameter reports whether name is declared on the effect.
func (e *Effect) HasParameter(name string) bool {
	return e.paramIndex(name) >= 0
}

// SetParameter replaces the static value of an existing parameter and returns
// the previous value. It reports false when name is not declared.
func (e *Effect) SetParameter(name string, v keyframe.Value) (keyframe.Value, bool) {
	i := e.paramIndex(name)
	if i < 0 {
		return keyframe.Null(), false
	}
	prev := e.params[i].Value
	e.params[i].Value = v
	e.notify(Event{Kind: EventParameterChanged, Parameter: name})
	return prev, true
}

// KeyframeTrack returns the track bound to name, or nil when the parameter is
// not animated. The returned track must not be mutated directly; use
// SetKeyframe and RemoveKeyframe so listeners are notified.
func (e *Effect) KeyframeTrack(name string) *keyframe.Track {
	return e.tracks[name]
}

// AnimatedParameters lists parameter names with at least one keyframe, in
// declaration order.
func (e *Effect) AnimatedParameters() []string {
	var names []string
	for _, p := range e.params {
		if e.tracks[p.Name].Len() > 0 {
			names = append(names, p.Name)
		}
	}
	// Tracks can outlive their parameter only through decoding; list them last.
	var orphans []string
	for name, track := range e.tracks {
		if e.paramIndex(name) < 0 && track.Len() > 0 {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	return append(names, orphans...)
}

// SetKeyframe inserts k on the track bound to name, creating the track when
// needed. When a keyframe already sits on k.Frame it is replaced and returned
// with replaced=true. ok is false when name is not a declared parameter.
func (e *Effect) SetKeyframe(name string, k keyframe.Keyframe) (prev keyframe.Keyframe, replaced, ok bool) {
	if e.paramIndex(name) < 0 {
		return keyframe.Keyframe{}, false, false
	}
	track := e.tracks[name]
	if track == nil {
		track = &keyframe.Track{}
		e.tracks[name] = track
	}
	prev, replaced = track.Set(k)
	e.notify(Event{Kind: EventKeyframesChanged, Parameter: name})
	return prev, replaced, true
}

// RemoveKeyframe deletes the keyframe on frame from the track bound to name.
// A track left empty is unbound.
func (e *Effect) RemoveKeyframe(name string, frame int64) (keyframe.Keyframe, bool) {
	track := e.tracks[name]
	if track == nil {
		return keyframe.Keyframe{}, false
	}
	removed, ok := track.Remove(frame)
	if !ok {
		return keyframe.Keyframe{}, false
	}
	if track.Len() == 0 {
		delete(e.tracks, name)
	}
	e.notify(Event{Kind: EventKeyframesChanged, Parameter: name})
	return removed, true
}

// ValueAt evaluates parameter name at a clip-relative frame. It reports false
// when the parameter is unknown.
func (e *Effect) ValueAt(name string, frame int64) (keyframe.Value, bool) {
	p, ok := e.Parameter(name)
	if !ok {
		return keyframe.Null(), false
	}
	return keyframe.Evaluate(e.tracks[name], frame, p.Value), true
}

// Clone returns a detached deep copy with a fresh id.
func (e *Effect) Clone() *Effect {
	cp := &Effect{
		id:      newID(),
		name:    e.name,
		enabled: e.enabled,
		params:  slices.Clone(e.params),
		tracks:  make(map[string]*keyframe.Track, len(e.tracks)),
	}
	for name, track := range e.tracks {
		cp.tracks[name] = track.Clone()
	}
	return cp
}

// ShiftKeyframes moves every keyframe of every parameter by delta frames.
func (e *Effect) ShiftKeyframes(delta int64) {
	if delta == 0 || len(e.tracks) == 0 {
		return
	}
	for _, track := range e.tracks {
		track.Shift(delta)
	}
	e.notify(Event{Kind: EventKeyframesChanged})
}

// RestoreKeyframes binds a complete track to name, replacing any existing
// one. It exists for project decoding and does not publish an event.
func (e *Effect) RestoreKeyframes(name string, track *keyframe.Track) {
	if track.Len() == 0 {
		delete(e.tracks, name)
		return
	}
	e.tracks[name] = track
}
