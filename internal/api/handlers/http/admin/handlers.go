package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"neighbourcam/internal/domain"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type DeviceAdmin interface {
	SetVerification(ctx context.Context, deviceID uuid.UUID, status domain.VerificationStatus) error
	Delete(ctx context.Context, deviceID, actorID uuid.UUID, admin bool) error
}

type QuotaAdmin interface {
	SetLimit(ctx context.Context, userID uuid.UUID, limit int) error
	ResetUser(ctx context.Context, userID uuid.UUID) error
}

type ArchiveAdmin interface {
	ArchiveManually(ctx context.Context, requestID uuid.UUID) error
	Restore(ctx context.Context, requestID uuid.UUID) (*domain.FootageRequest, error)
	AutoArchive(ctx context.Context) (*domain.ArchiveSweepResult, error)
	Stats(ctx context.Context) (*domain.ArchiveStats, error)
}

type ExpirySweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

type Handler struct {
	logger  *slog.Logger
	Devices DeviceAdmin
	Quota   QuotaAdmin
	Archive ArchiveAdmin
	Sweeper ExpirySweeper
}

func NewHandler(logger *slog.Logger, devices DeviceAdmin, quota QuotaAdmin, archive ArchiveAdmin, sweeper ExpirySweeper) *Handler {
	return &Handler{
		logger:  logger,
		Devices: devices,
		Quota:   quota,
		Archive: archive,
		Sweeper: sweeper,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

type verificationBody struct {
	Status domain.VerificationStatus `json:"status"`
}

func (h *Handler) DeviceSetVerification(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var body verificationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.Devices.SetVerification(r.Context(), id, body.Status); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("verification updated", slog.String("device", id.String()), slog.String("status", string(body.Status)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeviceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.Devices.Delete(r.Context(), id, uuid.Nil, true); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type limitBody struct {
	Limit int `json:"limit"`
}

func (h *Handler) QuotaSetLimit(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, err := parseParam(r, "userID")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	var body limitBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.Quota.SetLimit(r.Context(), userID, body.Limit); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("quota limit set", slog.String("user", userID.String()), slog.Int("limit", body.Limit))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) QuotaReset(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, err := parseParam(r, "userID")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	if err := h.Quota.ResetUser(r.Context(), userID); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("quota reset", slog.String("user", userID.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RequestArchive(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.Archive.ArchiveManually(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("request archived", slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RequestRestore(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	restored, err := h.Archive.Restore(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("request restored", slog.String("id", id.String()))
	h.writeJSON(w, http.StatusOK, restored)
}

func (h *Handler) ArchiveStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Archive.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// Sweep runs the expiry and archive passes on demand, outside the ticker.
func (h *Handler) Sweep(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	expired, err := h.Sweeper.SweepExpired(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.Archive.AutoArchive(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("manual sweep done", slog.Int("expired", expired), slog.Int("archived", result.Archived))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"expired":  expired,
		"archived": result.Archived,
		"reasons":  result.ByReason,
	})
}

func parseParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
