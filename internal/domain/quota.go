package domain

import (
	"time"

	"github.com/google/uuid"
)

// RateLimitRecord is the per-user weekly request counter. The counter resets
// lazily: the first read or write at or after ResetAt zeroes it and advances
// ResetAt to the following Monday midnight.
type RateLimitRecord struct {
	UserID      uuid.UUID `json:"user_id"`
	WeeklyCount int       `json:"weekly_count"`
	WeeklyLimit int       `json:"weekly_limit"`
	ResetAt     time.Time `json:"reset_at"`
}

type QuotaStatus struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	Limit     int       `json:"limit"`
	ResetAt   time.Time `json:"reset_at"`
	Message   string    `json:"message,omitempty"`
}

// NextMonday returns the upcoming Monday at 00:00 in now's location. Called
// on a Monday it returns the following Monday, matching the weekly window.
func NextMonday(now time.Time) time.Time {
	days := (8 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}
