package requests

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
)

// slotView hides the responding owner's identity from the requester; they
// see which device answered and how, nothing more.
type slotView struct {
	DeviceID     uuid.UUID             `json:"device_id"`
	DeviceName   string                `json:"device_name"`
	Status       domain.ResponseStatus `json:"status"`
	RespondedAt  *time.Time            `json:"responded_at,omitempty"`
	DenialReason string                `json:"denial_reason,omitempty"`
}

type requestView struct {
	ID               uuid.UUID              `json:"id"`
	IncidentLocation domain.Coordinate      `json:"incident_location"`
	IncidentType     string                 `json:"incident_type"`
	SearchRadiusM    float64                `json:"search_radius_m"`
	Priority         domain.RequestPriority `json:"priority"`
	Status           domain.RequestStatus   `json:"status"`
	Responses        []slotView             `json:"responses"`
	StatusHistory    []domain.StatusChange  `json:"status_history"`
	CreatedAt        time.Time              `json:"created_at"`
	ExpiresAt        time.Time              `json:"expires_at"`
}

func requesterRequestView(req *domain.FootageRequest) requestView {
	slots := make([]slotView, 0, len(req.Responses))
	for i := range req.Responses {
		r := &req.Responses[i]
		slots = append(slots, slotView{
			DeviceID:     r.DeviceID,
			DeviceName:   r.DeviceName,
			Status:       r.Status,
			RespondedAt:  r.RespondedAt,
			DenialReason: r.DenialReason,
		})
	}
	return requestView{
		ID:               req.ID,
		IncidentLocation: req.IncidentLocation,
		IncidentType:     req.IncidentType,
		SearchRadiusM:    req.SearchRadiusM,
		Priority:         req.Priority,
		Status:           req.Status,
		Responses:        slots,
		StatusHistory:    req.StatusHistory,
		CreatedAt:        req.CreatedAt,
		ExpiresAt:        req.ExpiresAt,
	}
}

// incomingView is the device-owner side of a request: the incident context
// plus only the caller's own slots.
type incomingView struct {
	ID               uuid.UUID              `json:"id"`
	IncidentLocation domain.Coordinate      `json:"incident_location"`
	IncidentType     string                 `json:"incident_type"`
	Priority         domain.RequestPriority `json:"priority"`
	Status           domain.RequestStatus   `json:"status"`
	MySlots          []slotView             `json:"my_slots"`
	CreatedAt        time.Time              `json:"created_at"`
	ExpiresAt        time.Time              `json:"expires_at"`
}

func ownerIncomingView(req *domain.FootageRequest, ownerID uuid.UUID) incomingView {
	var slots []slotView
	for i := range req.Responses {
		r := &req.Responses[i]
		if r.OwnerID != ownerID {
			continue
		}
		slots = append(slots, slotView{
			DeviceID:     r.DeviceID,
			DeviceName:   r.DeviceName,
			Status:       r.Status,
			RespondedAt:  r.RespondedAt,
			DenialReason: r.DenialReason,
		})
	}
	return incomingView{
		ID:               req.ID,
		IncidentLocation: req.IncidentLocation,
		IncidentType:     req.IncidentType,
		Priority:         req.Priority,
		Status:           req.Status,
		MySlots:          slots,
		CreatedAt:        req.CreatedAt,
		ExpiresAt:        req.ExpiresAt,
	}
}

type archivedView struct {
	requestView
	ArchivedAt     time.Time            `json:"archived_at"`
	ArchivedReason domain.ArchiveReason `json:"archived_reason"`
}

func archivedRequestView(a *domain.ArchivedRequest) archivedView {
	return archivedView{
		requestView:    requesterRequestView(&a.FootageRequest),
		ArchivedAt:     a.ArchivedAt,
		ArchivedReason: a.ArchivedReason,
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, e.ErrForbidden):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, e.ErrQuotaExceeded):
		h.writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "weekly request limit reached"})
	case errors.Is(err, e.ErrAlreadyTerminal), errors.Is(err, e.ErrConflict):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": e.Reason(err)})
	case errors.Is(err, e.ErrInvalidRange), errors.Is(err, e.ErrInvalidCoordinates), errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": e.Reason(err)})
	default:
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
