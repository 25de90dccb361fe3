package devices

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

// deviceView is the owner-facing shape. It is the only place the exact
// location ever leaves the service; community-facing responses are built
// from the domain struct, where the field is excluded from JSON.
type deviceView struct {
	ID                uuid.UUID                 `json:"id"`
	Name              string                    `json:"name"`
	ExactLocation     domain.Coordinate         `json:"exact_location"`
	DisplayLocation   domain.Coordinate         `json:"display_location"`
	FieldOfView       domain.FieldOfView        `json:"field_of_view"`
	OperationalStatus domain.OperationalStatus  `json:"operational_status"`
	Privacy           domain.PrivacySettings    `json:"privacy"`
	Verification      domain.VerificationStatus `json:"verification_status"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

func ownerDeviceView(d *domain.RegisteredDevice) deviceView {
	return deviceView{
		ID:                d.ID,
		Name:              d.Name,
		ExactLocation:     d.ExactLocation,
		DisplayLocation:   d.DisplayLocation,
		FieldOfView:       d.FieldOfView,
		OperationalStatus: d.OperationalStatus,
		Privacy:           d.Privacy,
		Verification:      d.Verification,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

type markerOwnerView struct {
	ID              uuid.UUID         `json:"id"`
	DeviceType      string            `json:"device_type"`
	ExactLocation   domain.Coordinate `json:"exact_location"`
	DisplayLocation domain.Coordinate `json:"display_location"`
	CreatedAt       time.Time         `json:"created_at"`
	ExpiresAt       time.Time         `json:"expires_at"`
}

func markerView(m *domain.TemporaryMarker) markerOwnerView {
	return markerOwnerView{
		ID:              m.ID,
		DeviceType:      m.DeviceType,
		ExactLocation:   m.ExactLocation,
		DisplayLocation: m.DisplayLocation,
		CreatedAt:       m.CreatedAt,
		ExpiresAt:       m.ExpiresAt,
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
	case errors.Is(err, e.ErrInvalidCoordinates), errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
	case errors.Is(err, e.ErrEntropyUnavailable):
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "location privacy unavailable, try again"})
	case errors.Is(err, e.ErrConflict):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "conflict"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
