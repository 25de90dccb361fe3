package domain

import (
	"time"

	"github.com/google/uuid"
)

// OwnerNotification is the per-owner (not per-device) fan-out payload queued
// when a footage request is created. Delivery is best effort; the request
// record stays the source of truth.
type OwnerNotification struct {
	UserID      uuid.UUID `json:"user_id"`
	RequestID   uuid.UUID `json:"request_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	DeviceCount int       `json:"device_count"`
	CreatedAt   time.Time `json:"created_at"`
}
