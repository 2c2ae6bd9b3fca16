package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reel/internal/keyframe"
	"reel/internal/media"
	"reel/internal/timeline"
)

// ErrUnsupportedVersion is returned for documents written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// Encode converts p into its document form.
func Encode(p *Project) Document {
	tl := p.Timeline
	doc := Document{
		Version:   FormatVersion,
		ID:        p.ID,
		Name:      p.Name,
		FrameRate: tl.FrameRate(),
		Width:     p.Width,
		Height:    p.Height,
		Tracks:    make([]TrackRecord, 0, tl.TrackCount()),
		Library:   encodeLibrary(p.Library),
	}
	for _, track := range tl.Tracks() {
		doc.Tracks = append(doc.Tracks, encodeTrack(track))
	}
	for _, m := range tl.Markers() {
		doc.Markers = append(doc.Markers, MarkerRecord{
			ID:    m.ID,
			Frame: m.Frame,
			Name:  m.Name,
			Color: m.Color.Hex(),
			Note:  m.Note,
		})
	}
	for _, o := range tl.Overlays() {
		doc.Overlays = append(doc.Overlays, OverlayRecord{
			ID:         o.ID,
			Text:       o.Text,
			StartFrame: o.StartFrame,
			EndFrame:   o.EndFrame,
			X:          o.X,
			Y:          o.Y,
			FontSize:   o.FontSize,
			Color:      o.Color.Hex(),
		})
	}
	return doc
}

func encodeTrack(track *timeline.Track) TrackRecord {
	rec := TrackRecord{
		ID:     track.ID(),
		Kind:   track.Kind().String(),
		Name:   track.Name(),
		Volume: track.Volume(),
		Pan:    track.Pan(),
		Muted:  track.Muted(),
		Locked: track.Locked(),
		Hidden: track.Hidden(),
		Clips:  make([]ClipRecord, 0, track.ClipCount()),
	}
	for _, clip := range track.Clips() {
		rec.Clips = append(rec.Clips, encodeClip(clip))
	}
	for _, tr := range track.Transitions() {
		rec.Transitions = append(rec.Transitions, TransitionRecord{
			ID:             tr.ID,
			Kind:           tr.Kind,
			FromClipID:     tr.FromClipID,
			ToClipID:       tr.ToClipID,
			DurationFrames: tr.DurationFrames,
		})
	}
	return rec
}

func encodeClip(clip *timeline.Clip) ClipRecord {
	cfg := clip.Config()
	rec := ClipRecord{
		ID:             cfg.ID,
		Name:           cfg.Name,
		MediaID:        cfg.MediaID,
		Start:          cfg.Start,
		End:            cfg.End,
		SourceIn:       cfg.SourceIn,
		SourceOut:      cfg.SourceOut,
		SourceDuration: cfg.SourceDuration,
		FrameRate:      cfg.FrameRate,
		LinkedClipID:   cfg.LinkedClipID,
	}
	for _, e := range clip.Effects() {
		rec.Effects = append(rec.Effects, encodeEffect(e))
	}
	if g := clip.Grade(); g != nil {
		rec.Grade = &GradeRecord{
			Exposure:    g.Exposure,
			Contrast:    g.Contrast,
			Saturation:  g.Saturation,
			Temperature: g.Temperature,
			Tint:        g.Tint,
			Lift:        g.Lift.Hex(),
			Gamma:       g.Gamma.Hex(),
			Gain:        g.Gain.Hex(),
		}
	}
	return rec
}

func encodeEffect(e *timeline.Effect) EffectRecord {
	rec := EffectRecord{ID: e.ID(), Name: e.Name(), Enabled: e.Enabled()}
	for _, p := range e.Parameters() {
		rec.Parameters = append(rec.Parameters, ParameterRecord{Name: p.Name, Value: p.Value})
	}
	for _, name := range e.AnimatedParameters() {
		keys := e.KeyframeTrack(name).Keyframes()
		track := KeyframeTrackRecord{Parameter: name, Keyframes: make([]KeyframeRecord, 0, len(keys))}
		for _, k := range keys {
			track.Keyframes = append(track.Keyframes, KeyframeRecord{
				Frame:   k.Frame,
				Value:   k.Value,
				Mode:    k.Mode,
				EaseIn:  k.EaseIn,
				EaseOut: k.EaseOut,
			})
		}
		rec.Animation = append(rec.Animation, track)
	}
	return rec
}

func encodeLibrary(lib *media.Library) LibraryRecord {
	rec := LibraryRecord{SystemBinID: lib.SystemBin().ID()}
	for _, item := range lib.Items() {
		rec.Items = append(rec.Items, ItemRecord{
			ID:             item.ID,
			Name:           item.Name,
			Path:           item.Path,
			Kind:           string(item.Kind),
			DurationFrames: item.DurationFrames,
			FrameRate:      item.FrameRate,
		})
	}
	for _, bin := range lib.UserBins() {
		rec.Bins = append(rec.Bins, BinRecord{ID: bin.ID(), Name: bin.Name(), Items: bin.ItemIDs()})
	}
	return rec
}

// Decode rebuilds a project from doc. Entities keep their ids.
func Decode(doc Document) (*Project, error) {
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("document version %d: %w", doc.Version, ErrUnsupportedVersion)
	}
	p := &Project{
		ID:       doc.ID,
		Name:     doc.Name,
		Width:    doc.Width,
		Height:   doc.Height,
		Timeline: timeline.New(doc.FrameRate),
	}
	lib, err := decodeLibrary(doc.Library)
	if err != nil {
		return nil, err
	}
	p.Library = lib

	for i, rec := range doc.Tracks {
		track, err := decodeTrack(rec)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		p.Timeline.InsertTrack(p.Timeline.TrackCount(), track)
	}
	for _, rec := range doc.Markers {
		color, err := timeline.ParseColor(rec.Color)
		if err != nil {
			return nil, fmt.Errorf("marker %s: %w", rec.ID, err)
		}
		p.Timeline.AddMarker(timeline.Marker{ID: rec.ID, Frame: rec.Frame, Name: rec.Name, Color: color, Note: rec.Note})
	}
	for _, rec := range doc.Overlays {
		color, err := timeline.ParseColor(rec.Color)
		if err != nil {
			return nil, fmt.Errorf("overlay %s: %w", rec.ID, err)
		}
		p.Timeline.AddOverlay(timeline.TextOverlay{
			ID:         rec.ID,
			Text:       rec.Text,
			StartFrame: rec.StartFrame,
			EndFrame:   rec.EndFrame,
			X:          rec.X,
			Y:          rec.Y,
			FontSize:   rec.FontSize,
			Color:      color,
		})
	}
	return p, nil
}

func decodeTrack(rec TrackRecord) (*timeline.Track, error) {
	kind, err := timeline.ParseTrackKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	track := timeline.NewTrackWithID(rec.ID, kind, rec.Name)
	track.SetVolume(rec.Volume)
	track.SetPan(rec.Pan)
	track.SetMuted(rec.Muted)
	track.SetLocked(rec.Locked)
	track.SetHidden(rec.Hidden)
	for _, cr := range rec.Clips {
		clip, err := decodeClip(cr)
		if err != nil {
			return nil, err
		}
		track.AddClip(clip)
	}
	for _, tr := range rec.Transitions {
		track.AddTransition(timeline.Transition{
			ID:             tr.ID,
			Kind:           tr.Kind,
			FromClipID:     tr.FromClipID,
			ToClipID:       tr.ToClipID,
			DurationFrames: tr.DurationFrames,
		})
	}
	return track, nil
}

func decodeClip(rec ClipRecord) (*timeline.Clip, error) {
	clip, err := timeline.NewClip(timeline.ClipConfig{
		ID:             rec.ID,
		Name:           rec.Name,
		MediaID:        rec.MediaID,
		Start:          rec.Start,
		End:            rec.End,
		SourceIn:       rec.SourceIn,
		SourceOut:      rec.SourceOut,
		SourceDuration: rec.SourceDuration,
		FrameRate:      rec.FrameRate,
		LinkedClipID:   rec.LinkedClipID,
	})
	if err != nil {
		return nil, err
	}
	for _, er := range rec.Effects {
		effect, err := decodeEffect(er)
		if err != nil {
			return nil, fmt.Errorf("clip %s: %w", rec.ID, err)
		}
		clip.AddEffect(effect)
	}
	if rec.Grade != nil {
		grade, err := decodeGrade(*rec.Grade)
		if err != nil {
			return nil, fmt.Errorf("clip %s grade: %w", rec.ID, err)
		}
		clip.SetGrade(&grade)
	}
	return clip, nil
}

func decodeEffect(rec EffectRecord) (*timeline.Effect, error) {
	params := make([]timeline.Parameter, 0, len(rec.Parameters))
	for _, p := range rec.Parameters {
		params = append(params, timeline.Parameter{Name: p.Name, Value: p.Value})
	}
	effect := timeline.NewEffectFromConfig(timeline.EffectConfig{
		ID:         rec.ID,
		Name:       rec.Name,
		Disabled:   !rec.Enabled,
		Parameters: params,
	})
	for _, anim := range rec.Animation {
		if strings.TrimSpace(anim.Parameter) == "" {
			return nil, fmt.Errorf("effect %s: keyframe track without parameter", rec.ID)
		}
		track := keyframe.NewTrack()
		for _, k := range anim.Keyframes {
			if _, replaced := track.Set(keyframe.Keyframe{
				Frame:   k.Frame,
				Value:   k.Value,
				Mode:    k.Mode,
				EaseIn:  k.EaseIn,
				EaseOut: k.EaseOut,
			}); replaced {
				return nil, fmt.Errorf("effect %s parameter %s: duplicate keyframe at frame %d", rec.ID, anim.Parameter, k.Frame)
			}
		}
		effect.RestoreKeyframes(anim.Parameter, track)
	}
	return effect, nil
}

func decodeGrade(rec GradeRecord) (timeline.ColorGrade, error) {
	g := timeline.ColorGrade{
		Exposure:    rec.Exposure,
		Contrast:    rec.Contrast,
		Saturation:  rec.Saturation,
		Temperature: rec.Temperature,
		Tint:        rec.Tint,
	}
	var err error
	if g.Lift, err = timeline.ParseColor(rec.Lift); err != nil {
		return g, err
	}
	if g.Gamma, err = timeline.ParseColor(rec.Gamma); err != nil {
		return g, err
	}
	if g.Gain, err = timeline.ParseColor(rec.Gain); err != nil {
		return g, err
	}
	return g, nil
}

func decodeLibrary(rec LibraryRecord) (*media.Library, error) {
	lib := media.NewLibraryWithSystemID(rec.SystemBinID)
	for _, ir := range rec.Items {
		lib.InsertItem(lib.ItemCount(), &media.Item{
			ID:             ir.ID,
			Name:           ir.Name,
			Path:           ir.Path,
			Kind:           media.Kind(ir.Kind),
			DurationFrames: ir.DurationFrames,
			FrameRate:      ir.FrameRate,
		})
	}
	for _, br := range rec.Bins {
		bin := media.NewBin(br.ID, br.Name)
		lib.InsertBin(len(lib.UserBins()), bin)
		for _, itemID := range br.Items {
			if item, _ := lib.Item(itemID); item == nil {
				return nil, fmt.Errorf("bin %s: unknown item %s", br.ID, itemID)
			}
			if owner := lib.BinOf(itemID); owner != nil {
				return nil, fmt.Errorf("bin %s: item %s already filed in bin %s", br.ID, itemID, owner.ID())
			}
			lib.AddToBin(bin.ID(), itemID, len(bin.ItemIDs()))
		}
	}
	return lib, nil
}

// Marshal encodes p as indented JSON.
func Marshal(p *Project) ([]byte, error) {
	data, err := json.MarshalIndent(Encode(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a project from JSON.
func Unmarshal(data []byte) (*Project, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	p, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	return p, nil
}
