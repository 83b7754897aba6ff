package model

import (
	"encoding/json"
	"testing"
)

func TestSeverityZeroValueIsUnset(t *testing.T) {
	t.Parallel()
	var s Severity
	if s.IsSet() {
		t.Fatal("zero Severity must be unset")
	}
	if _, ok := s.Get(); ok {
		t.Fatal("Get on unset Severity reported ok")
	}
}

func TestSeverityDistinguishesZeroFromUnset(t *testing.T) {
	t.Parallel()
	zero := SeverityOf(0)
	if !zero.IsSet() {
		t.Fatal("SeverityOf(0) must be set")
	}
	if v, _ := zero.Get(); v != 0 {
		t.Fatalf("got %d, want 0", v)
	}
}

func TestSeverityJSON(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   Severity
		want string
	}{
		{"unset", Severity{}, "null"},
		{"zero", SeverityOf(0), "0"},
		{"seven", SeverityOf(7), "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("marshal = %s, want %s", data, tc.want)
			}
			var back Severity
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tc.in {
				t.Fatalf("round trip = %+v, want %+v", back, tc.in)
			}
		})
	}
}

func TestSeverityUnmarshalRejectsText(t *testing.T) {
	t.Parallel()
	var s Severity
	if err := json.Unmarshal([]byte(`"high"`), &s); err == nil {
		t.Fatal("expected error for non-numeric severity")
	}
}
