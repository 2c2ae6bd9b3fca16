package script

import (
	"strings"

	"reel/internal/edit"
	"reel/internal/history"
	"reel/internal/keyframe"
	"reel/internal/media"
	"reel/internal/project"
	"reel/internal/timeline"
)

const (
	opUndo = "undo"
	opRedo = "redo"
)

type builder func(p *project.Project, s Step) (history.Command, error)

var builders = map[string]builder{
	"add_track":         addTrack,
	"remove_track":      removeTrack,
	"rename_track":      renameTrack,
	"move_track":        moveTrack,
	"set_track_mix":     setTrackMix,
	"set_track_state":   setTrackState,
	"add_clip":          addClip,
	"remove_clip":       removeClip,
	"move_clip":         moveClip,
	"trim_clip":         trimClip,
	"split_clip":        splitClip,
	"link_clips":        linkClips,
	"unlink_clip":       unlinkClip,
	"set_grade":         setGrade,
	"add_effect":        addEffect,
	"remove_effect":     removeEffect,
	"move_effect":       moveEffect,
	"enable_effect":     enableEffect,
	"set_param":         setParam,
	"set_keyframe":      setKeyframe,
	"remove_keyframe":   removeKeyframe,
	"add_marker":        addMarker,
	"remove_marker":     removeMarker,
	"add_transition":    addTransition,
	"remove_transition": removeTransition,
	"add_overlay":       addOverlay,
	"remove_overlay":    removeOverlay,
	"import_media":      importMedia,
	"remove_media":      removeMedia,
	"create_bin":        createBin,
	"rename_bin":        renameBin,
	"delete_bin":        deleteBin,
	"move_to_bin":       moveToBin,
}

func knownOp(op string) bool {
	if op == opUndo || op == opRedo {
		return true
	}
	_, ok := builders[op]
	return ok
}

func required(op, field string, v *int64) (int64, error) {
	if v == nil {
		return 0, history.Invalid(history.ErrInvalidRange, op, "%s is required", field)
	}
	return *v, nil
}

func orDefault(v *int64, def int64) int64 {
	if v == nil {
		return def
	}
	return *v
}

func addTrack(p *project.Project, s Step) (history.Command, error) {
	kind, err := timeline.ParseTrackKind(s.Kind)
	if err != nil {
		return nil, history.Invalid(history.ErrUnsupported, "add track", "%v", err)
	}
	return edit.AddTrack(p.Timeline, kind, s.Name)
}

func removeTrack(p *project.Project, s Step) (history.Command, error) {
	track, err := lookupTrack(p, "remove track", s.Track)
	if err != nil {
		return nil, err
	}
	return edit.RemoveTrack(p.Timeline, track)
}

func renameTrack(p *project.Project, s Step) (history.Command, error) {
	track, err := lookupTrack(p, "rename track", s.Track)
	if err != nil {
		return nil, err
	}
	return edit.RenameTrack(p.Timeline, track, s.Name)
}

func moveTrack(p *project.Project, s Step) (history.Command, error) {
	const op = "move track"
	track, err := lookupTrack(p, op, s.Track)
	if err != nil {
		return nil, err
	}
	if s.To == nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "to is required")
	}
	return edit.MoveTrack(p.Timeline, track, *s.To)
}

func setTrackMix(p *project.Project, s Step) (history.Command, error) {
	track, err := lookupTrack(p, "set track mix", s.Track)
	if err != nil {
		return nil, err
	}
	volume, pan := track.Volume(), track.Pan()
	if s.Volume != nil {
		volume = *s.Volume
	}
	if s.Pan != nil {
		pan = *s.Pan
	}
	return edit.SetTrackMix(track, volume, pan)
}

func setTrackState(p *project.Project, s Step) (history.Command, error) {
	track, err := lookupTrack(p, "set track state", s.Track)
	if err != nil {
		return nil, err
	}
	flags := edit.FlagsOf(track)
	if s.Muted != nil {
		flags.Muted = *s.Muted
	}
	if s.Locked != nil {
		flags.Locked = *s.Locked
	}
	if s.Hidden != nil {
		flags.Hidden = *s.Hidden
	}
	return edit.SetTrackFlags(track, flags)
}

// addClip places a clip on a track. With media set the clip covers the whole
// item starting at start; otherwise start and end are required and the
// source range defaults to [source_in, source_in+duration].
func addClip(p *project.Project, s Step) (history.Command, error) {
	const op = "add clip"
	track, err := lookupTrack(p, op, s.Track)
	if err != nil {
		return nil, err
	}
	start := orDefault(s.Start, 0)
	if s.Media != "" {
		item, err := lookupItem(p, op, s.Media)
		if err != nil {
			return nil, err
		}
		if s.ID == "" && s.Name == "" {
			return edit.AddClipFromItem(track, item, start)
		}
		if edit.TrackKindFor(item.Kind) != track.Kind() {
			return nil, history.Invalid(history.ErrUnsupported, op, "%s media cannot go on %s track %s", item.Kind, track.Kind(), track.Name())
		}
		cfg := edit.ClipFromItem(item, start)
		cfg.ID = s.ID
		if s.Name != "" {
			cfg.Name = s.Name
		}
		return edit.AddClip(track, cfg)
	}
	end, err := required(op, "end", s.End)
	if err != nil {
		return nil, err
	}
	cfg := timeline.ClipConfig{
		ID:        s.ID,
		Name:      s.Name,
		Start:     start,
		End:       end,
		SourceIn:  orDefault(s.SourceIn, 0),
		SourceOut: orDefault(s.SourceOut, 0),
		FrameRate: p.Timeline.FrameRate(),
	}
	return edit.AddClip(track, cfg)
}

func removeClip(p *project.Project, s Step) (history.Command, error) {
	clip, err := lookupClip(p, "remove clip", s.Clip)
	if err != nil {
		return nil, err
	}
	return edit.RemoveClip(clip)
}

func moveClip(p *project.Project, s Step) (history.Command, error) {
	const op = "move clip"
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	var track *timeline.Track
	if s.ToTrack != "" {
		if track, err = lookupTrack(p, op, s.ToTrack); err != nil {
			return nil, err
		}
	}
	start, err := required(op, "start", s.Start)
	if err != nil {
		return nil, err
	}
	return edit.MoveClip(clip, track, start)
}

func trimClip(p *project.Project, s Step) (history.Command, error) {
	clip, err := lookupClip(p, "trim clip", s.Clip)
	if err != nil {
		return nil, err
	}
	r := edit.RangeOf(clip)
	r.Start = orDefault(s.Start, r.Start)
	r.End = orDefault(s.End, r.End)
	r.SourceIn = orDefault(s.SourceIn, r.SourceIn)
	r.SourceOut = orDefault(s.SourceOut, r.SourceOut)
	return edit.TrimClip(clip, r)
}

func splitClip(p *project.Project, s Step) (history.Command, error) {
	const op = "split clip"
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	frame, err := required(op, "frame", s.Frame)
	if err != nil {
		return nil, err
	}
	return edit.SplitClip(clip, frame)
}

func linkClips(p *project.Project, s Step) (history.Command, error) {
	const op = "link clips"
	a, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	b, err := lookupClip(p, op, s.Other)
	if err != nil {
		return nil, err
	}
	return edit.LinkClips(a, b)
}

func unlinkClip(p *project.Project, s Step) (history.Command, error) {
	clip, err := lookupClip(p, "unlink clip", s.Clip)
	if err != nil {
		return nil, err
	}
	return edit.UnlinkClip(clip)
}

// setGrade replaces the grade of a clip. A step without a grade clears it.
func setGrade(p *project.Project, s Step) (history.Command, error) {
	const op = "set grade"
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	if s.Grade == nil {
		return edit.SetColorGrade(clip, nil)
	}
	grade := timeline.NeutralGrade()
	grade.Exposure = s.Grade.Exposure
	grade.Temperature = s.Grade.Temperature
	grade.Tint = s.Grade.Tint
	if s.Grade.Contrast != nil {
		grade.Contrast = *s.Grade.Contrast
	}
	if s.Grade.Saturation != nil {
		grade.Saturation = *s.Grade.Saturation
	}
	for _, c := range []struct {
		raw string
		dst *timeline.Color
	}{
		{s.Grade.Lift, &grade.Lift},
		{s.Grade.Gamma, &grade.Gamma},
		{s.Grade.Gain, &grade.Gain},
	} {
		if c.raw == "" {
			continue
		}
		color, err := timeline.ParseColor(c.raw)
		if err != nil {
			return nil, history.Invalid(history.ErrInvalidRange, op, "%v", err)
		}
		*c.dst = color
	}
	return edit.SetColorGrade(clip, &grade)
}

func parseValue(op, typ, raw string, declared keyframe.Kind) (keyframe.Value, error) {
	kind := declared
	if typ != "" {
		parsed, err := keyframe.ParseKind(strings.ToLower(strings.TrimSpace(typ)))
		if err != nil {
			return keyframe.Value{}, history.Invalid(history.ErrUnsupported, op, "%v", err)
		}
		kind = parsed
	}
	value, err := keyframe.Parse(kind, raw)
	if err != nil {
		return keyframe.Value{}, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}
	return value, nil
}

func addEffect(p *project.Project, s Step) (history.Command, error) {
	const op = "add effect"
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	cfg := timeline.EffectConfig{ID: s.ID, Name: s.Name}
	if s.Enabled != nil {
		cfg.Disabled = !*s.Enabled
	}
	for _, spec := range s.Params {
		value, err := parseValue(op, spec.Type, spec.Value, keyframe.KindFloat)
		if err != nil {
			return nil, err
		}
		cfg.Parameters = append(cfg.Parameters, timeline.Parameter{Name: spec.Name, Value: value})
	}
	index := -1
	if s.Index != nil {
		index = *s.Index
	}
	return edit.AddEffect(clip, cfg, index)
}

func effectOf(p *project.Project, op string, s Step) (*timeline.Clip, *timeline.Effect, int, error) {
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, nil, -1, err
	}
	effect, index, err := lookupEffect(clip, op, s.Effect, s.Index)
	if err != nil {
		return nil, nil, -1, err
	}
	return clip, effect, index, nil
}

func removeEffect(p *project.Project, s Step) (history.Command, error) {
	clip, _, index, err := effectOf(p, "remove effect", s)
	if err != nil {
		return nil, err
	}
	return edit.RemoveEffect(clip, index)
}

func moveEffect(p *project.Project, s Step) (history.Command, error) {
	const op = "move effect"
	clip, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	from := s.From
	if s.Effect != "" {
		_, index, err := lookupEffect(clip, op, s.Effect, nil)
		if err != nil {
			return nil, err
		}
		from = &index
	}
	if from == nil || s.To == nil {
		return nil, history.Invalid(history.ErrInvalidRange, op, "from and to are required")
	}
	return edit.MoveEffect(clip, *from, *s.To)
}

func enableEffect(p *project.Project, s Step) (history.Command, error) {
	_, effect, _, err := effectOf(p, "enable effect", s)
	if err != nil {
		return nil, err
	}
	enabled := true
	if s.Enabled != nil {
		enabled = *s.Enabled
	}
	return edit.SetEffectEnabled(effect, enabled)
}

func declaredKind(effect *timeline.Effect, name string) keyframe.Kind {
	if param, ok := effect.Parameter(name); ok && !param.Value.IsNull() {
		return param.Value.Kind()
	}
	return keyframe.KindFloat
}

func setParam(p *project.Project, s Step) (history.Command, error) {
	const op = "set param"
	_, effect, _, err := effectOf(p, op, s)
	if err != nil {
		return nil, err
	}
	value, err := parseValue(op, s.Type, s.Value, declaredKind(effect, s.Param))
	if err != nil {
		return nil, err
	}
	return edit.SetParameter(effect, s.Param, value)
}

func setKeyframe(p *project.Project, s Step) (history.Command, error) {
	const op = "set keyframe"
	_, effect, _, err := effectOf(p, op, s)
	if err != nil {
		return nil, err
	}
	frame, err := required(op, "frame", s.Frame)
	if err != nil {
		return nil, err
	}
	value, err := parseValue(op, s.Type, s.Value, declaredKind(effect, s.Param))
	if err != nil {
		return nil, err
	}
	mode, err := keyframe.ParseMode(s.Mode)
	if err != nil {
		return nil, history.Invalid(history.ErrUnsupported, op, "%v", err)
	}
	return edit.SetKeyframe(effect, s.Param, keyframe.New(frame, value, mode))
}

func removeKeyframe(p *project.Project, s Step) (history.Command, error) {
	const op = "remove keyframe"
	_, effect, _, err := effectOf(p, op, s)
	if err != nil {
		return nil, err
	}
	frame, err := required(op, "frame", s.Frame)
	if err != nil {
		return nil, err
	}
	return edit.RemoveKeyframe(effect, s.Param, frame)
}

func parseOptionalColor(op, raw string) (timeline.Color, error) {
	if raw == "" {
		return timeline.Color{}, nil
	}
	color, err := timeline.ParseColor(raw)
	if err != nil {
		return timeline.Color{}, history.Invalid(history.ErrInvalidRange, op, "%v", err)
	}
	return color, nil
}

func addMarker(p *project.Project, s Step) (history.Command, error) {
	const op = "add marker"
	frame, err := required(op, "frame", s.Frame)
	if err != nil {
		return nil, err
	}
	color, err := parseOptionalColor(op, s.Color)
	if err != nil {
		return nil, err
	}
	return edit.AddMarker(p.Timeline, timeline.Marker{ID: s.ID, Frame: frame, Name: s.Name, Color: color, Note: s.Note})
}

func removeMarker(p *project.Project, s Step) (history.Command, error) {
	return edit.RemoveMarker(p.Timeline, s.ID)
}

func addTransition(p *project.Project, s Step) (history.Command, error) {
	const op = "add transition"
	from, err := lookupClip(p, op, s.Clip)
	if err != nil {
		return nil, err
	}
	to, err := lookupClip(p, op, s.Other)
	if err != nil {
		return nil, err
	}
	track := from.Track()
	if s.Track != "" {
		if track, err = lookupTrack(p, op, s.Track); err != nil {
			return nil, err
		}
	}
	return edit.AddTransition(track, timeline.Transition{
		ID:             s.ID,
		Kind:           s.Kind,
		FromClipID:     from.ID(),
		ToClipID:       to.ID(),
		DurationFrames: s.Duration,
	})
}

func removeTransition(p *project.Project, s Step) (history.Command, error) {
	track, err := lookupTrack(p, "remove transition", s.Track)
	if err != nil {
		return nil, err
	}
	return edit.RemoveTransition(track, s.ID)
}

func addOverlay(p *project.Project, s Step) (history.Command, error) {
	const op = "add overlay"
	color, err := parseOptionalColor(op, s.Color)
	if err != nil {
		return nil, err
	}
	o := timeline.TextOverlay{
		ID:         s.ID,
		Text:       s.Text,
		StartFrame: orDefault(s.Start, 0),
		FontSize:   s.Size,
		Color:      color,
		X:          0.5,
		Y:          0.5,
	}
	if o.EndFrame, err = required(op, "end", s.End); err != nil {
		return nil, err
	}
	if s.X != nil {
		o.X = *s.X
	}
	if s.Y != nil {
		o.Y = *s.Y
	}
	return edit.AddOverlay(p.Timeline, o)
}

func removeOverlay(p *project.Project, s Step) (history.Command, error) {
	return edit.RemoveOverlay(p.Timeline, s.ID)
}

func importMedia(p *project.Project, s Step) (history.Command, error) {
	cmd, err := edit.ImportItem(p.Library, media.Item{
		ID:             s.ID,
		Name:           s.Name,
		Path:           s.Path,
		Kind:           media.Kind(strings.ToLower(strings.TrimSpace(s.Kind))),
		DurationFrames: s.Duration,
		FrameRate:      s.FrameRate,
	})
	if err != nil {
		return nil, err
	}
	if s.Bin == "" {
		return cmd, nil
	}
	bin, err := lookupBin(p, "import media", s.Bin)
	if err != nil {
		return nil, err
	}
	// Filing needs the item in the library, so it is built after Do.
	return &importAndFile{importer: cmd, lib: p.Library, binID: bin.ID()}, nil
}

type importAndFile struct {
	importer *edit.ImportItemCommand
	lib      *media.Library
	binID    string
	file     history.Command
}

func (c *importAndFile) Do() {
	c.lib.Batch(func() {
		c.importer.Do()
		if c.file == nil {
			cmd, err := edit.MoveItemToBin(c.lib, c.importer.Item().ID, c.binID)
			if err != nil {
				return
			}
			c.file = cmd
		}
		c.file.Do()
	})
}

func (c *importAndFile) Undo() {
	c.lib.Batch(func() {
		if c.file != nil {
			c.file.Undo()
		}
		c.importer.Undo()
	})
}

func (c *importAndFile) Description() string { return c.importer.Description() }

func removeMedia(p *project.Project, s Step) (history.Command, error) {
	item, err := lookupItem(p, "remove media", s.Media)
	if err != nil {
		return nil, err
	}
	return edit.RemoveItem(p.Library, p.Timeline, item.ID)
}

func createBin(p *project.Project, s Step) (history.Command, error) {
	return edit.CreateBin(p.Library, s.Name)
}

func renameBin(p *project.Project, s Step) (history.Command, error) {
	bin, err := lookupBin(p, "rename bin", s.Bin)
	if err != nil {
		return nil, err
	}
	return edit.RenameBin(p.Library, bin.ID(), s.Name)
}

func deleteBin(p *project.Project, s Step) (history.Command, error) {
	bin, err := lookupBin(p, "delete bin", s.Bin)
	if err != nil {
		return nil, err
	}
	return edit.DeleteBin(p.Library, bin.ID())
}

func moveToBin(p *project.Project, s Step) (history.Command, error) {
	const op = "move to bin"
	item, err := lookupItem(p, op, s.Media)
	if err != nil {
		return nil, err
	}
	bin, err := lookupBin(p, op, s.Bin)
	if err != nil {
		return nil, err
	}
	return edit.MoveItemToBin(p.Library, item.ID, bin.ID())
}

// stepTarget names the object a step refers to, for logs.
func stepTarget(s Step) string {
	for _, v := range []string{s.Clip, s.Track, s.Effect, s.Media, s.Bin, s.Name, s.ID} {
		if v != "" {
			return v
		}
	}
	return ""
}
