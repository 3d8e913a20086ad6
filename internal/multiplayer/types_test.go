package multiplayer

import (
	"strings"
	"testing"
)

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		in      string
		want    MatchMode
		wantErr bool
	}{
		{"", MatchModeSolo, false},
		{"cpu", MatchModeVsCPU, false},
		{"2p", MatchModeLocal, false},
		{"online", MatchModeSolo, true},
	}
	for _, tt := range tests {
		got, err := ParseMatchMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMatchMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if MatchModeSolo.HasOpponent() || !MatchModeLocal.HasOpponent() {
		t.Error("HasOpponent mismatch")
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID("alice"), NewSessionID("alice")
	if a == b || !strings.HasPrefix(string(a), "alice-") {
		t.Errorf("session ids should be unique and prefixed: %q %q", a, b)
	}
	if !strings.HasPrefix(string(NewSessionID("")), "anonymous-") {
		t.Error("empty user should be anonymous")
	}
}
