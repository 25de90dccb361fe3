package domain

import (
	"testing"
	"time"
)

func TestNextMonday(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek",
			now:  time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday evening",
			now:  time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight rolls a full week",
			now:  time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday afternoon",
			now:  time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "saturday",
			now:  time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMonday(tt.now)
			if !got.Equal(tt.want) {
				t.Fatalf("NextMonday(%v) = %v, want %v", tt.now, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Fatalf("result %v is not a Monday", got)
			}
		})
	}
}

func TestMarkerExpired(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	m := &TemporaryMarker{ExpiresAt: now.Add(time.Minute)}
	if m.Expired(now) {
		t.Fatalf("marker with future expiry is not expired")
	}

	m.ExpiresAt = now
	if !m.Expired(now) {
		t.Fatalf("marker expiring exactly now is expired")
	}

	m.ExpiresAt = now.Add(-time.Minute)
	if !m.Expired(now) {
		t.Fatalf("past marker is expired")
	}
}
