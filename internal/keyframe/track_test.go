package keyframe

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func frames(track *Track) []int64 {
	var out []int64
	for _, k := range track.Keyframes() {
		out = append(out, k.Frame)
	}
	return out
}

func TestTrackKeepsStrictOrder(t *testing.T) {
	track := NewTrack(
		New(50, Float(5), Linear),
		New(10, Float(1), Linear),
		New(30, Float(3), Linear),
	)
	got := frames(track)
	want := []int64{10, 30, 50}
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frames = %v, want %v", got, want)
		}
	}
}

func TestTrackSetReplacesExistingFrame(t *testing.T) {
	track := NewTrack(New(10, Float(1), Linear))
	prev, replaced := track.Set(New(10, Float(2), EaseIn))
	if !replaced {
		t.Fatal("expected replacement")
	}
	if !prev.Value.Equal(Float(1)) || prev.Mode != Linear {
		t.Fatalf("unexpected previous keyframe %+v", prev)
	}
	if track.Len() != 1 {
		t.Fatalf("expected 1 keyframe, got %d", track.Len())
	}
	k, _ := track.Find(10)
	if !k.Value.Equal(Float(2)) || k.Mode != EaseIn {
		t.Fatalf("replacement not stored: %+v", k)
	}
}

func TestTrackRemove(t *testing.T) {
	track := NewTrack(New(0, Int(1), Linear), New(5, Int(2), Linear))
	if _, ok := track.Remove(3); ok {
		t.Fatal("removing a missing frame should report false")
	}
	removed, ok := track.Remove(0)
	if !ok || !removed.Value.Equal(Int(1)) {
		t.Fatalf("remove returned %+v %v", removed, ok)
	}
	if track.Len() != 1 {
		t.Fatalf("expected 1 keyframe left, got %d", track.Len())
	}
}

func TestTrackCloneIsIndependent(t *testing.T) {
	track := NewTrack(New(0, Float(1), Linear))
	clone := track.Clone()
	clone.Set(New(0, Float(9), Linear))
	clone.Shift(10)
	if k, _ := track.At(0); !k.Value.Equal(Float(1)) || k.Frame != 0 {
		t.Fatalf("original mutated through clone: %+v", k)
	}
}

func TestValueJSONPreservesKind(t *testing.T) {
	values := []Value{
		Null(),
		Float(1.25),
		Int(-4),
		Decimal(decimal.RequireFromString("3.14159265358979323846")),
		String("hello"),
		Enum(3),
		Bool(true),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", v, err)
		}
		var decoded Value
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !decoded.Equal(v) {
			t.Fatalf("round trip %s => %s (%s)", v, decoded, data)
		}
	}
}

func TestValueJSONRejectsUnknownType(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"type":"matrix","value":1}`), &v); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestParseValueAndMode(t *testing.T) {
	v, err := Parse(KindEnum, "#2")
	if err != nil || !v.Equal(Enum(2)) {
		t.Fatalf("parse enum: %v %v", v, err)
	}
	if _, err := Parse(KindInt, "1.5"); err == nil {
		t.Fatal("expected int parse failure")
	}
	mode, err := ParseMode("Ease-In-Out")
	if err != nil || mode != EaseInOut {
		t.Fatalf("parse mode: %v %v", mode, err)
	}
	if _, err := ParseMode("wobble"); err == nil {
		t.Fatal("expected unknown mode error")
	}
}
