package hostinfo

import (
	"testing"
	"time"
)

func TestGatherClockFields(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	now := time.Date(2024, 3, 7, 14, 30, 5, 0, loc)

	facts := Gather("alpbox", now)

	if facts.Hostname != "alpbox" {
		t.Errorf("hostname = %q", facts.Hostname)
	}
	if facts.Date != "2024-03-07" {
		t.Errorf("date = %q", facts.Date)
	}
	if facts.Time != "14:30:05" {
		t.Errorf("time = %q", facts.Time)
	}
	if facts.Timezone != "CET" {
		t.Errorf("timezone = %q", facts.Timezone)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		secs uint64
		want string
	}{
		{0, "0d 00:00:00"},
		{61, "0d 00:01:01"},
		{86400, "1d 00:00:00"},
		{90061, "1d 01:01:01"},
		{3*86400 + 4*3600 + 5*60 + 6, "3d 04:05:06"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.secs); got != tt.want {
			t.Errorf("formatUptime(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
