package keyframe

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
)

// Mode selects the easing applied between a keyframe and the next one.
type Mode uint8

const (
	Hold Mode = iota
	Linear
	EaseIn
	EaseOut
	EaseInOut
	Bezier
)

var modeNames = [...]string{
	Hold:      "hold",
	Linear:    "linear",
	EaseIn:    "ease_in",
	EaseOut:   "ease_out",
	EaseInOut: "ease_in_out",
	Bezier:    "bezier",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode accepts the lowercase names produced by String. Hyphens and
// spaces are treated as underscores; an empty string means Linear.
func ParseMode(name string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "" {
		return Linear, nil
	}
	for mode, candidate := range modeNames {
		if candidate == normalized {
			return Mode(mode), nil
		}
	}
	return Linear, fmt.Errorf("unknown interpolation mode %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// easeLinear maps a normalized position t in [0,1] through the non-Bezier
// modes. Bezier is handled by bezierEase because it needs both keyframes.
func easeLinear(mode Mode, t float64) float64 {
	switch mode {
	case Hold:
		return 0
	case EaseIn:
		return ease.InQuad(t)
	case EaseOut:
		return ease.OutQuad(t)
	case EaseInOut:
		return ease.InOutQuad(t)
	default:
		return t
	}
}
