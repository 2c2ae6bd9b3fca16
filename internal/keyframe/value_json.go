package keyframe

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// boxedValue is the serialized form of a Value: a type discriminator plus the
// payload. Decimals travel as strings so no precision is lost.
type boxedValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	var (
		payload any
		box     = boxedValue{Type: v.kind.String()}
	)
	switch v.kind {
	case KindNull:
		return json.Marshal(box)
	case KindFloat:
		payload = v.f
	case KindInt, KindEnum:
		payload = v.i
	case KindDecimal:
		payload = v.d.String()
	case KindString:
		payload = v.s
	case KindBool:
		payload = v.i != 0
	default:
		return nil, fmt.Errorf("marshal value: unsupported type %s", v.kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s value: %w", v.kind, err)
	}
	box.Value = raw
	return json.Marshal(box)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var box boxedValue
	if err := json.Unmarshal(data, &box); err != nil {
		return fmt.Errorf("unmarshal value: %w", err)
	}
	kind, err := ParseKind(box.Type)
	if err != nil {
		return err
	}
	if kind == KindNull {
		*v = Null()
		return nil
	}
	if len(box.Value) == 0 {
		return fmt.Errorf("unmarshal %s value: missing payload", kind)
	}

	switch kind {
	case KindFloat:
		var f float64
		if err := json.Unmarshal(box.Value, &f); err != nil {
			return fmt.Errorf("unmarshal float value: %w", err)
		}
		*v = Float(f)
	case KindInt:
		var i int64
		if err := json.Unmarshal(box.Value, &i); err != nil {
			return fmt.Errorf("unmarshal int value: %w", err)
		}
		*v = Int(i)
	case KindEnum:
		var i int
		if err := json.Unmarshal(box.Value, &i); err != nil {
			return fmt.Errorf("unmarshal enum value: %w", err)
		}
		*v = Enum(i)
	case KindDecimal:
		var s string
		if err := json.Unmarshal(box.Value, &s); err != nil {
			return fmt.Errorf("unmarshal decimal value: %w", err)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("unmarshal decimal value: %w", err)
		}
		*v = Decimal(d)
	case KindString:
		var s string
		if err := json.Unmarshal(box.Value, &s); err != nil {
			return fmt.Errorf("unmarshal string value: %w", err)
		}
		*v = String(s)
	case KindBool:
		var b bool
		if err := json.Unmarshal(box.Value, &b); err != nil {
			return fmt.Errorf("unmarshal bool value: %w", err)
		}
		*v = Bool(b)
	}
	return nil
}
