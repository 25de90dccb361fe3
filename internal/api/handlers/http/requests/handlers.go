package requests

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/middleware"
	"neighbourcam/internal/service"
	"neighbourcam/pkg/validator"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type RequestLifecycle interface {
	Create(ctx context.Context, requesterID uuid.UUID, in domain.CreateFootageRequestInput) (*domain.FootageRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.FootageRequest, error)
	ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]*domain.FootageRequest, error)
	Respond(ctx context.Context, requestID, deviceID, actorID uuid.UUID, in domain.RespondInput) (*domain.FootageRequest, error)
	Cancel(ctx context.Context, requestID, actorID uuid.UUID, reason string) error
	MarkFulfilled(ctx context.Context, requestID, actorID uuid.UUID) error
}

type QuotaChecker interface {
	Check(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error)
}

type ArchiveReader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ArchivedRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.ArchivedRequest, error)
}

type CoverageEstimator interface {
	Snapshot(ctx context.Context, ref domain.Coordinate) (*service.CoverageSnapshot, error)
}

type Handler struct {
	logger   *slog.Logger
	Requests RequestLifecycle
	Quota    QuotaChecker
	Archive  ArchiveReader
	Coverage CoverageEstimator
}

func NewHandler(logger *slog.Logger, requests RequestLifecycle, quota QuotaChecker, archive ArchiveReader, coverage CoverageEstimator) *Handler {
	return &Handler{
		logger:   logger,
		Requests: requests,
		Quota:    quota,
		Archive:  archive,
		Coverage: coverage,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) RequestCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.CreateFootageRequestInput
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

	created, err := h.Requests.Create(r.Context(), userID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("footage request created",
		slog.String("id", created.ID.String()),
		slog.Int("candidates", len(created.Responses)),
	)
	h.writeJSON(w, http.StatusCreated, requesterRequestView(created))
}

func (h *Handler) RequestList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	list, err := h.Requests.ListByRequester(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]requestView, 0, len(list))
	for _, req := range list {
		views = append(views, requesterRequestView(req))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"requests": views})
}

// RequestIncoming lists requests that hold a response slot for one of the
// caller's devices.
func (h *Handler) RequestIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	list, err := h.Requests.ListIncoming(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]incomingView, 0, len(list))
	for _, req := range list {
		views = append(views, ownerIncomingView(req, userID))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"requests": views})
}

func (h *Handler) RequestGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	req, err := h.Requests.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	switch {
	case req.RequesterID == userID:
		h.writeJSON(w, http.StatusOK, requesterRequestView(req))
	case hasSlotForOwner(req, userID):
		h.writeJSON(w, http.StatusOK, ownerIncomingView(req, userID))
	default:
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
}

func (h *Handler) RequestRespond(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	requestID, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	deviceID, err := parseParam(r, "deviceID")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid device id"})
		return
	}

	var in domain.RespondInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	updated, err := h.Requests.Respond(r.Context(), requestID, deviceID, userID, in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("response recorded",
		slog.String("request", requestID.String()),
		slog.String("device", deviceID.String()),
		slog.String("status", string(in.Status)),
	)
	h.writeJSON(w, http.StatusOK, ownerIncomingView(updated, userID))
}

func (h *Handler) RequestCancel(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var in domain.CancelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&in); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.Requests.Cancel(r.Context(), id, userID, in.Reason); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("request cancelled", slog.String("id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RequestFulfill(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.Requests.MarkFulfilled(r.Context(), id, userID); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) QuotaGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	status, err := h.Quota.Check(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, status)
}

func (h *Handler) ArchiveList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	list, err := h.Archive.ListByRequester(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views := make([]archivedView, 0, len(list))
	for _, a := range list {
		views = append(views, archivedRequestView(a))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"archived": views})
}

func (h *Handler) ArchiveGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	id, err := parseParam(r, "id")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	a, err := h.Archive.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if a.RequesterID != userID {
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	h.writeJSON(w, http.StatusOK, archivedRequestView(a))
}

// CoverageGet renders the anonymized density map for the map view. It never
// includes device identities or exact positions.
func (h *Handler) CoverageGet(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, err2 := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err1 != nil || err2 != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
		return
	}

	ref := domain.Coordinate{Lat: lat, Lng: lng}
	if !ref.Valid() {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinates out of range"})
		return
	}

	snap, err := h.Coverage.Snapshot(r.Context(), ref)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, snap)
}

func parseParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func hasSlotForOwner(req *domain.FootageRequest, ownerID uuid.UUID) bool {
	for i := range req.Responses {
		if req.Responses[i].OwnerID == ownerID {
			return true
		}
	}
	return false
}
