// Package sample exports effective parameter values over a frame range.
//
// Each (clip, effect, parameter) triple becomes one job; jobs run on a
// bounded errgroup and write into their own slot, so the output order is the
// timeline order regardless of the worker count. The timeline must not be
// mutated while sampling runs.
package sample

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"reel/internal/keyframe"
	"reel/internal/timeline"
)

// Request selects what to sample.
type Request struct {
	From int64
	To   int64
	Step int64
	// ClipIDs restricts sampling to these clips; empty means every clip.
	ClipIDs []string
	// IncludeDisabled also samples effects that are switched off.
	IncludeDisabled bool
	// Workers bounds concurrent jobs; zero or negative uses GOMAXPROCS.
	Workers int
}

// Point is one sampled value at a timeline frame.
type Point struct {
	Frame int64          `json:"frame"`
	Value keyframe.Value `json:"value"`
}

// Series is the sampled curve of one effect parameter.
type Series struct {
	TrackID   string  `json:"track_id"`
	ClipID    string  `json:"clip_id"`
	Clip      string  `json:"clip"`
	EffectID  string  `json:"effect_id"`
	Effect    string  `json:"effect"`
	Parameter string  `json:"parameter"`
	Animated  bool    `json:"animated"`
	Points    []Point `json:"points"`
}

// ErrInvalidRequest reports a request with a bad frame range or step.
var ErrInvalidRequest = errors.New("invalid sample request")

type job struct {
	track  *timeline.Track
	clip   *timeline.Clip
	index  int
	effect *timeline.Effect
	param  string
}

// Sample evaluates every selected parameter at From, From+Step, ... up to To
// inclusive, restricted to the frames each clip covers. Clips without a
// sampled frame are left out.
func Sample(ctx context.Context, tl *timeline.Timeline, req Request) ([]Series, error) {
	if tl == nil {
		return nil, errors.New("sample: no timeline")
	}
	if req.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidRequest, req.Step)
	}
	if req.To < req.From {
		return nil, fmt.Errorf("%w: to %d is before from %d", ErrInvalidRequest, req.To, req.From)
	}

	jobs := collect(tl, req)
	results := make([]Series, len(jobs))

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = run(j, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, s := range results {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}

func collect(tl *timeline.Timeline, req Request) []job {
	wanted := make(map[string]bool, len(req.ClipIDs))
	for _, id := range req.ClipIDs {
		wanted[id] = true
	}
	var jobs []job
	for _, track := range tl.Tracks() {
		for _, clip := range track.Clips() {
			if len(wanted) > 0 && !wanted[clip.ID()] {
				continue
			}
			if clip.End() <= req.From || clip.Start() > req.To {
				continue
			}
			for i, effect := range clip.Effects() {
				if !effect.Enabled() && !req.IncludeDisabled {
					continue
				}
				for _, param := range effect.Parameters() {
					jobs = append(jobs, job{track: track, clip: clip, index: i, effect: effect, param: param.Name})
				}
			}
		}
	}
	return jobs
}

func run(j job, req Request) Series {
	s := Series{
		TrackID:   j.track.ID(),
		ClipID:    j.clip.ID(),
		Clip:      j.clip.Name(),
		EffectID:  j.effect.ID(),
		Effect:    j.effect.Name(),
		Parameter: j.param,
		Animated:  j.effect.KeyframeTrack(j.param).Len() > 0,
	}
	first := req.From
	if j.clip.Start() > first {
		// Round up to the next frame on the From + k*Step grid.
		first = req.From + (j.clip.Start()-req.From+req.Step-1)/req.Step*req.Step
	}
	for frame := first; frame <= req.To && frame < j.clip.End(); frame += req.Step {
		v, ok := j.clip.ParameterAt(j.index, j.param, frame)
		if !ok {
			break
		}
		s.Points = append(s.Points, Point{Frame: frame, Value: v})
	}
	return s
}
