package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color serialized as a hex string.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Black = Color{A: 255}
)

// Hex renders #RRGGBB for opaque colors and #RRGGBBAA otherwise.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func (c Color) String() string { return c.Hex() }

// ParseColor accepts #RGB, #RRGGBB, or #RRGGBBAA (the leading # is optional).
// An empty string yields opaque black.
func ParseColor(value string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if hex == "" {
		return Black, nil
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("color %q: expected #RRGGBB or #RRGGBBAA", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", value, err)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// ColorGrade is the optional primary grade of a clip. Zero values mean
// "no adjustment" except for Lift/Gamma/Gain, where neutral is
// NeutralGrade's gray.
type ColorGrade struct {
	Exposure    float64
	Contrast    float64
	Saturation  float64
	Temperature float64
	Tint        float64
	Lift        Color
	Gamma       Color
	Gain        Color
}

// NeutralGrade returns a grade that leaves the image unchanged.
func NeutralGrade() ColorGrade {
	mid := Color{R: 128, G: 128, B: 128, A: 255}
	return ColorGrade{Saturation: 1, Contrast: 1, Lift: mid, Gamma: mid, Gain: mid}
}
