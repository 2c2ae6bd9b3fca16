package script

import (
	"strings"

	"reel/internal/history"
	"reel/internal/media"
	"reel/internal/project"
	"reel/internal/timeline"
)

func lookupTrack(p *project.Project, op, ref string) (*timeline.Track, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, history.Invalid(history.ErrNotFound, op, "track reference required")
	}
	if t := p.Timeline.TrackByID(ref); t != nil {
		return t, nil
	}
	if t := p.Timeline.TrackByName(ref); t != nil {
		return t, nil
	}
	return nil, history.Invalid(history.ErrNotFound, op, "no track %q", ref)
}

func lookupClip(p *project.Project, op, ref string) (*timeline.Clip, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, history.Invalid(history.ErrNotFound, op, "clip reference required")
	}
	if c := p.Timeline.ClipByID(ref); c != nil {
		return c, nil
	}
	if c := p.Timeline.ClipByName(ref); c != nil {
		return c, nil
	}
	return nil, history.Invalid(history.ErrNotFound, op, "no clip %q", ref)
}

// lookupEffect resolves ref within clip by id, then by name, then as a
// 0-based chain position when index is set.
func lookupEffect(clip *timeline.Clip, op, ref string, index *int) (*timeline.Effect, int, error) {
	ref = strings.TrimSpace(ref)
	if ref != "" {
		if e, i := clip.EffectByID(ref); e != nil {
			return e, i, nil
		}
		for i, e := range clip.Effects() {
			if e.Name() == ref {
				return e, i, nil
			}
		}
		return nil, -1, history.Invalid(history.ErrNotFound, op, "no effect %q on clip %s", ref, clip.Name())
	}
	if index != nil {
		if e := clip.Effect(*index); e != nil {
			return e, *index, nil
		}
		return nil, -1, history.Invalid(history.ErrInvalidRange, op, "effect index %d outside 0..%d", *index, clip.EffectCount()-1)
	}
	return nil, -1, history.Invalid(history.ErrNotFound, op, "effect reference required")
}

func lookupItem(p *project.Project, op, ref string) (*media.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, history.Invalid(history.ErrNotFound, op, "media reference required")
	}
	if item, _ := p.Library.Item(ref); item != nil {
		return item, nil
	}
	for _, item := range p.Library.Items() {
		if item.Name == ref || item.Path == ref {
			return item, nil
		}
	}
	return nil, history.Invalid(history.ErrNotFound, op, "no media item %q", ref)
}

func lookupBin(p *project.Project, op, ref string) (*media.Bin, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, history.Invalid(history.ErrNotFound, op, "bin reference required")
	}
	if bin, _ := p.Library.Bin(ref); bin != nil {
		return bin, nil
	}
	if bin := p.Library.BinByName(ref); bin != nil {
		return bin, nil
	}
	return nil, history.Invalid(history.ErrNotFound, op, "no bin %q", ref)
}
