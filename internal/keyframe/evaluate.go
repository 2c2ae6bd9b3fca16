package keyframe

import (
	"math"

	"github.com/shopspring/decimal"
)

// stepThreshold is where non-numeric values switch from the earlier keyframe
// to the later one.
const stepThreshold = 0.5

// bezierIterations is the fixed Newton-Raphson step count used to invert x(τ).
const bezierIterations = 8

// Evaluate returns the effective value of the track at frame. fallback is the
// parameter's static value and is returned when the track has no keyframes.
func Evaluate(track *Track, frame int64, fallback Value) Value {
	switch track.Len() {
	case 0:
		return fallback
	case 1:
		return track.keys[0].Value
	}

	keys := track.keys
	after := track.searchAfter(frame)
	if after == 0 {
		return keys[0].Value
	}
	if after == len(keys) {
		return keys[len(keys)-1].Value
	}
	return interpolate(keys[after-1], keys[after], frame)
}

func interpolate(before, after Keyframe, frame int64) Value {
	span := after.Frame - before.Frame
	if span <= 0 {
		return before.Value
	}
	t := float64(frame-before.Frame) / float64(span)
	t = clamp01(t)

	var eased float64
	if before.Mode == Bezier {
		eased = bezierEase(before.EaseOut, after.EaseIn, t)
	} else {
		eased = easeLinear(before.Mode, t)
	}
	return Blend(before.Value, after.Value, eased)
}

// Blend mixes from and to at position t. Matching numeric kinds blend
// linearly; anything else steps at the midpoint.
func Blend(from, to Value, t float64) Value {
	if from.kind != to.kind || !from.kind.Numeric() {
		if t < stepThreshold {
			return from
		}
		return to
	}

	switch from.kind {
	case KindFloat:
		return Float(from.f + (to.f-from.f)*t)
	case KindInt:
		delta := float64(to.i-from.i) * t
		return Int(from.i + int64(delta))
	case KindDecimal:
		delta := to.d.Sub(from.d).Mul(decimal.NewFromFloat(t))
		return Decimal(from.d.Add(delta))
	}
	return from
}

// bezierEase evaluates the cubic Bezier (0,0) p1 p2 (1,1) at the curve
// parameter whose x equals t.
func bezierEase(p1, p2 ControlPoint, t float64) float64 {
	x1, x2 := clamp01(p1.X), clamp01(p2.X)
	tau := t
	for range bezierIterations {
		x := cubic(x1, x2, tau) - t
		dx := cubicDerivative(x1, x2, tau)
		if math.Abs(dx) < 1e-9 {
			break
		}
		tau = clamp01(tau - x/dx)
	}
	return cubic(p1.Y, p2.Y, tau)
}

// cubic evaluates one axis of a Bezier with endpoints 0 and 1.
func cubic(c1, c2, tau float64) float64 {
	inv := 1 - tau
	return 3*inv*inv*tau*c1 + 3*inv*tau*tau*c2 + tau*tau*tau
}

func cubicDerivative(c1, c2, tau float64) float64 {
	inv := 1 - tau
	return 3*inv*inv*c1 + 6*inv*tau*(c2-c1) + 3*tau*tau*(1-c2)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
