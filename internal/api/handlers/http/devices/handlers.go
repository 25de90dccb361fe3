package devices

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/middleware"
	"neighbourcam/pkg/validator"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type DeviceManager interface {
	Register(ctx context.Context, ownerID uuid.UUID, in domain.RegisterDeviceRequest) (*domain.RegisteredDevice, error)
	RegenerateDisplayLocation(ctx context.Context, deviceID, actorID uuid.UUID) (domain.Coordinate, error)
	Update(ctx context.Context, deviceID, actorID uuid.UUID, in domain.UpdateDeviceRequest) (*domain.RegisteredDevice, error)
	Delete(ctx context.Context, deviceID, actorID uuid.UUID, admin bool) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.RegisteredDevice, error)
	PlaceMarker(ctx context.Context, ownerID uuid.UUID, in domain.PlaceMarkerRequest) (*domain.TemporaryMarker, error)
}

type Handler struct {
	logger  *slog.Logger
	Devices DeviceManager
}

func NewHandler(logger *slog.Logger, devices DeviceManager) *Handler {
	return &Handler{logger: logger, Devices: devices}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) DeviceRegister(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		l.Warn("validation failed", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	dev, err := h.Devices.Register(r.Context(), ownerID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("device registered", slog.String("id", dev.ID.String()), slog.String("owner", ownerID.String()))
	h.writeJSON(w, http.StatusCreated, ownerDeviceView(dev))
}

func (h *Handler) DeviceList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	list, err := h.Devices.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]deviceView, 0, len(list))
	for _, d := range list {
		views = append(views, ownerDeviceView(d))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"devices": views})
}

func (h *Handler) DeviceUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req domain.UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	dev, err := h.Devices.Update(r.Context(), id, ownerID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ownerDeviceView(dev))
}

func (h *Handler) DeviceDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.Devices.Delete(r.Context(), id, ownerID, false); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeviceRegenerateLocation re-rolls the public display location around the
// unchanged exact position.
func (h *Handler) DeviceRegenerateLocation(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseID(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	loc, err := h.Devices.RegenerateDisplayLocation(r.Context(), id, ownerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("display location regenerated", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, map[string]any{"display_location": loc})
}

func (h *Handler) MarkerPlace(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.PlaceMarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	marker, err := h.Devices.PlaceMarker(r.Context(), ownerID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("marker placed", slog.String("id", marker.ID.String()), slog.String("type", marker.DeviceType))
	h.writeJSON(w, http.StatusCreated, markerView(marker))
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
