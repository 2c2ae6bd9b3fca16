package ffprobe

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"reel/internal/media"
)

// StillSeconds is the length given to imported still images.
const StillSeconds = 5

// Describe inspects path and returns an item carrying its kind, frame rate
// and duration in frames. Audio and stills use fallbackRate.
func Describe(ctx context.Context, binary, path string, fallbackRate float64) (media.Item, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return media.Item{}, err
	}
	return result.Item(path, fallbackRate)
}

// Item converts r into an importable item for path.
func (r Result) Item(path string, fallbackRate float64) (media.Item, error) {
	item := media.Item{Path: path, FrameRate: fallbackRate}

	video, hasVideo := r.VideoStream()
	switch {
	case hasVideo && r.IsStill():
		item.Kind = media.KindImage
		item.DurationFrames = int64(math.Round(StillSeconds * fallbackRate))
		return item, nil
	case hasVideo:
		item.Kind = media.KindVideo
		if rate := video.FrameRate(); rate > 0 {
			item.FrameRate = rate
		}
	case r.AudioStreamCount() > 0:
		item.Kind = media.KindAudio
	default:
		return media.Item{}, fmt.Errorf("%s: no audio or video streams", path)
	}
	if item.FrameRate <= 0 {
		return media.Item{}, fmt.Errorf("%s: unknown frame rate", path)
	}

	if hasVideo {
		if n, err := strconv.ParseInt(video.NBFrames, 10, 64); err == nil && n > 0 {
			item.DurationFrames = n
			return item, nil
		}
	}
	seconds := r.DurationSeconds()
	if math.IsNaN(seconds) || seconds <= 0 {
		return media.Item{}, fmt.Errorf("%s: unknown duration", path)
	}
	item.DurationFrames = int64(math.Round(seconds * item.FrameRate))
	return item, nil
}
