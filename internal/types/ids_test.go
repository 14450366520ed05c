// internal/types/ids_test.go
package types

import (
	"testing"
	"time"
)

func TestNewConfigID(t *testing.T) {
	id := NewConfigID()
	if _, err := ParseConfigID(string(id)); err != nil {
		t.Fatalf("ParseConfigID(NewConfigID()) error = %v, want nil", err)
	}
}

func TestNewConfigID_TimeOrdered(t *testing.T) {
	first := NewConfigID()
	time.Sleep(2 * time.Millisecond)
	second := NewConfigID()
	if !(string(first) < string(second)) {
		t.Errorf("UUIDv7 IDs must sort chronologically: %s !< %s", first, second)
	}
}

func TestParseConfigID_Invalid(t *testing.T) {
	tests := []string{"", "not-a-uuid", "12345"}
	for _, s := range tests {
		if _, err := ParseConfigID(s); err == nil {
			t.Errorf("ParseConfigID(%q) error = nil, want error", s)
		}
	}
}

func TestConfigIDTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := NewConfigID()
	after := time.Now().Add(time.Second)

	ts := ConfigIDTime(id)
	if ts.Before(before) || ts.After(after) {
		t.Errorf("ConfigIDTime(%s) = %v, want within [%v, %v]", id, ts, before, after)
	}
}

func TestConfigIDTime_Invalid(t *testing.T) {
	if ts := ConfigIDTime(ConfigID("bogus")); !ts.IsZero() {
		t.Errorf("ConfigIDTime(bogus) = %v, want zero time", ts)
	}
}
