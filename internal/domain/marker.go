package domain

import (
	"time"

	"github.com/google/uuid"
)

// TemporaryMarker is a short-lived "I have footage" claim. It has no
// persistent field of view and its display location is never regenerated.
type TemporaryMarker struct {
	ID              uuid.UUID  `json:"id"`
	OwnerID         uuid.UUID  `json:"owner_id"`
	DeviceType      string     `json:"device_type"`
	ExactLocation   Coordinate `json:"-"`
	DisplayLocation Coordinate `json:"display_location"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
}

func (m *TemporaryMarker) Expired(now time.Time) bool {
	return !m.ExpiresAt.After(now)
}

type PlaceMarkerRequest struct {
	DeviceType string     `json:"device_type" validate:"required,oneof=dashcam doorbell mobile security other"`
	Location   Coordinate `json:"location" validate:"required"`
}
