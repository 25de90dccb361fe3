package domain

import (
	"time"

	"github.com/google/uuid"
)

type OperationalStatus string

const (
	DeviceActive      OperationalStatus = "active"
	DeviceOffline     OperationalStatus = "offline"
	DeviceMaintenance OperationalStatus = "maintenance"
)

type VerificationStatus string

const (
	VerificationUnsubmitted  VerificationStatus = "unsubmitted"
	VerificationPending      VerificationStatus = "pending"
	VerificationApproved     VerificationStatus = "approved"
	VerificationRejected     VerificationStatus = "rejected"
	VerificationRequiresInfo VerificationStatus = "requires_info"
)

// FieldOfView describes the cone a camera covers.
type FieldOfView struct {
	DirectionDeg float64 `json:"direction" validate:"min=0,max=360"`
	AngleDeg     float64 `json:"angle" validate:"required,min=10,max=360"`
	RangeM       float64 `json:"range" validate:"required,min=1,max=300"`
}

type PrivacySettings struct {
	ShareWithCommunity bool    `json:"share_with_community"`
	RequireApproval    bool    `json:"require_approval"`
	MaxRequestRadiusM  float64 `json:"max_request_radius_m" validate:"omitempty,min=50,max=2000"`
}

// RegisteredDevice is a permanent camera. ExactLocation is only ever read by
// its owner and the candidate matcher; it is never serialized to API clients.
type RegisteredDevice struct {
	ID                uuid.UUID          `json:"id"`
	OwnerID           uuid.UUID          `json:"owner_id"`
	Name              string             `json:"name"`
	ExactLocation     Coordinate         `json:"-"`
	DisplayLocation   Coordinate         `json:"display_location"`
	FieldOfView       FieldOfView        `json:"field_of_view"`
	OperationalStatus OperationalStatus  `json:"operational_status"`
	Privacy           PrivacySettings    `json:"privacy"`
	Verification      VerificationStatus `json:"verification_status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Matchable reports whether the device may receive footage requests at all.
// Distance is checked separately by the matcher.
func (d *RegisteredDevice) Matchable() bool {
	return d.Privacy.ShareWithCommunity &&
		d.OperationalStatus == DeviceActive &&
		d.Verification == VerificationApproved
}

type RegisterDeviceRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=120"`
	Location    Coordinate      `json:"location" validate:"required"`
	FieldOfView FieldOfView     `json:"field_of_view" validate:"required"`
	Privacy     PrivacySettings `json:"privacy"`
}

type UpdateDeviceRequest struct {
	Name              *string            `json:"name" validate:"omitempty,min=1,max=120"`
	OperationalStatus *OperationalStatus `json:"operational_status" validate:"omitempty,oneof=active offline maintenance"`
	Privacy           *PrivacySettings   `json:"privacy"`
}
