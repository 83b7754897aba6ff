package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Severity bounds for a recorded measurement.
const (
	MinSeverity = 0
	MaxSeverity = 10
)

// Severity is an optional intensity measurement in [0,10]. The zero value
// means "not measured", which is distinct from a measurement of zero.
// On the wire it serialises as a JSON number, or null when unset.
type Severity struct {
	value int
	set   bool
}

// SeverityOf returns a set Severity carrying v.
func SeverityOf(v int) Severity { return Severity{value: v, set: true} }

// Get returns the measured value and whether one was recorded.
func (s Severity) Get() (int, bool) { return s.value, s.set }

// IsSet reports whether a measurement was recorded.
func (s Severity) IsSet() bool { return s.set }

// InRange reports whether the measurement is absent or within [0,10].
func (s Severity) InRange() bool {
	return !s.set || (s.value >= MinSeverity && s.value <= MaxSeverity)
}

func (s Severity) String() string {
	if !s.set {
		return "-"
	}
	return fmt.Sprintf("%d", s.value)
}

// MarshalJSON encodes the value, or null when unset.
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes a JSON number into a set Severity; null clears it.
func (s *Severity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Severity{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Severity{value: v, set: true}
	return nil
}
