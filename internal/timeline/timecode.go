package timeline

import (
	"fmt"
	"math"
)

// FramesToSeconds converts a frame count at fps to seconds. A non-positive
// rate yields 0.
func FramesToSeconds(frames int64, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(frames) / fps
}

// SecondsToFrames converts seconds to the nearest whole frame at fps.
func SecondsToFrames(seconds, fps float64) int64 {
	if fps <= 0 {
		return 0
	}
	return int64(math.Round(seconds * fps))
}

// FormatTimecode renders frames as non-drop-frame HH:MM:SS:FF using the
// nominal (rounded) rate, e.g. 29.97 counts frames in groups of 30.
func FormatTimecode(frames int64, fps float64) string {
	nominal := int64(math.Round(fps))
	if nominal <= 0 {
		return "00:00:00:00"
	}
	sign := ""
	if frames < 0 {
		sign = "-"
		frames = -frames
	}
	ff := frames % nominal
	totalSeconds := frames / nominal
	return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, totalSeconds/3600, (totalSeconds/60)%60, totalSeconds%60, ff)
}
