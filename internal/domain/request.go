package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestDenied    RequestStatus = "denied"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestExpired   RequestStatus = "expired"
	RequestCancelled RequestStatus = "cancelled"
)

// Mutable reports whether the request can still change state. denied,
// fulfilled, expired and cancelled are terminal.
func (s RequestStatus) Mutable() bool {
	return s == RequestPending || s == RequestApproved
}

type ResponseStatus string

const (
	ResponsePending   ResponseStatus = "pending"
	ResponseApproved  ResponseStatus = "approved"
	ResponseDenied    ResponseStatus = "denied"
	ResponseNoFootage ResponseStatus = "no-footage"
)

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
	PriorityUrgent RequestPriority = "urgent"
)

// DeviceResponse is one per-device slot within a footage request. Only the
// owning user (or the system, on expiry) may transition it out of pending.
type DeviceResponse struct {
	DeviceID     uuid.UUID      `json:"device_id"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	DeviceName   string         `json:"device_name"`
	Status       ResponseStatus `json:"status"`
	RespondedAt  *time.Time     `json:"responded_at,omitempty"`
	DenialReason string         `json:"denial_reason,omitempty"`
}

type StatusChange struct {
	Status    RequestStatus `json:"status"`
	ChangedAt time.Time     `json:"changed_at"`
	ChangedBy string        `json:"changed_by"` // user id or "system"
	Reason    string        `json:"reason,omitempty"`
}

// FootageRequest carries one response slot per device that was in range at
// creation time. The slot set is fixed at creation; late-registered devices
// are never added retroactively.
type FootageRequest struct {
	ID               uuid.UUID        `json:"id"`
	RequesterID      uuid.UUID        `json:"requester_id"`
	IncidentLocation Coordinate       `json:"incident_location"`
	IncidentType     string           `json:"incident_type"`
	SearchRadiusM    float64          `json:"search_radius_m"`
	Priority         RequestPriority  `json:"priority"`
	TargetDeviceIDs  []uuid.UUID      `json:"target_device_ids"`
	Responses        []DeviceResponse `json:"responses"`
	Status           RequestStatus    `json:"status"`
	StatusHistory    []StatusChange   `json:"status_history"`
	CreatedAt        time.Time        `json:"created_at"`
	ExpiresAt        time.Time        `json:"expires_at"`
}

// AggregateStatus derives the request-level status from the slot list alone:
// while any slot is pending the request is pending; once every slot has
// answered, one approval is enough to approve, otherwise the request is
// denied. An empty slot set stays pending until the expiry sweep picks it up.
// The result is always recomputed from the slots, never cached.
func (r *FootageRequest) AggregateStatus() RequestStatus {
	if len(r.Responses) == 0 {
		return RequestPending
	}
	anyApproved := false
	for i := range r.Responses {
		switch r.Responses[i].Status {
		case ResponsePending:
			return RequestPending
		case ResponseApproved:
			anyApproved = true
		}
	}
	if anyApproved {
		return RequestApproved
	}
	return RequestDenied
}

// Slot returns the response slot for deviceID, or nil.
func (r *FootageRequest) Slot(deviceID uuid.UUID) *DeviceResponse {
	for i := range r.Responses {
		if r.Responses[i].DeviceID == deviceID {
			return &r.Responses[i]
		}
	}
	return nil
}

type CreateFootageRequestInput struct {
	IncidentLocation Coordinate      `json:"incident_location" validate:"required"`
	IncidentType     string          `json:"incident_type" validate:"required,min=2,max=80"`
	SearchRadiusM    float64         `json:"search_radius_m" validate:"required,search_radius"`
	Priority         RequestPriority `json:"priority" validate:"required,oneof=low medium high urgent"`
}

type RespondInput struct {
	Status ResponseStatus `json:"status" validate:"required,oneof=approved denied no-footage"`
	Reason string         `json:"reason" validate:"omitempty,max=500"`
}

type CancelInput struct {
	Reason string `json:"reason" validate:"required,min=2,max=500"`
}
