package jobs

import (
	"testing"
	"time"
)

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	staleAfter := 2 * time.Minute

	tests := []struct {
		name      string
		createdAt time.Time
		want      bool
	}{
		{"just created", now, false},
		{"one minute old", now.Add(-time.Minute), false},
		{"just under threshold", now.Add(-2*time.Minute + time.Second), false},
		{"exactly at threshold", now.Add(-2 * time.Minute), true},
		{"past threshold", now.Add(-3 * time.Minute), true},
		{"hours old", now.Add(-5 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStale(tt.createdAt, now, staleAfter); got != tt.want {
				t.Errorf("IsStale(%v) = %v, want %v", tt.createdAt, got, tt.want)
			}
		})
	}
}
