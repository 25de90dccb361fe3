package requests_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"neighbourcam/internal/api/handlers/http/requests"
	"neighbourcam/internal/domain"
	"neighbourcam/internal/middleware"
	"neighbourcam/internal/service"
	"neighbourcam/pkg/e"
)

// lifecycleStub lets each test plug in just the calls it exercises.
type lifecycleStub struct {
	create        func(ctx context.Context, requesterID uuid.UUID, in domain.CreateFootageRequestInput) (*domain.FootageRequest, error)
	get           func(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error)
	respond       func(ctx context.Context, requestID, deviceID, actorID uuid.UUID, in domain.RespondInput) (*domain.FootageRequest, error)
	cancel        func(ctx context.Context, requestID, actorID uuid.UUID, reason string) error
	markFulfilled func(ctx context.Context, requestID, actorID uuid.UUID) error
}

func (s *lifecycleStub) Create(ctx context.Context, requesterID uuid.UUID, in domain.CreateFootageRequestInput) (*domain.FootageRequest, error) {
	return s.create(ctx, requesterID, in)
}
func (s *lifecycleStub) Get(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error) {
	return s.get(ctx, id)
}
func (s *lifecycleStub) ListByRequester(context.Context, uuid.UUID) ([]*domain.FootageRequest, error) {
	return nil, nil
}
func (s *lifecycleStub) ListIncoming(context.Context, uuid.UUID) ([]*domain.FootageRequest, error) {
	return nil, nil
}
func (s *lifecycleStub) Respond(ctx context.Context, requestID, deviceID, actorID uuid.UUID, in domain.RespondInput) (*domain.FootageRequest, error) {
	return s.respond(ctx, requestID, deviceID, actorID, in)
}
func (s *lifecycleStub) Cancel(ctx context.Context, requestID, actorID uuid.UUID, reason string) error {
	return s.cancel(ctx, requestID, actorID, reason)
}
func (s *lifecycleStub) MarkFulfilled(ctx context.Context, requestID, actorID uuid.UUID) error {
	return s.markFulfilled(ctx, requestID, actorID)
}

type quotaStub struct {
	check func(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error)
}

func (s *quotaStub) Check(ctx context.Context, userID uuid.UUID) (domain.QuotaStatus, error) {
	return s.check(ctx, userID)
}

type archiveStub struct{}

func (archiveStub) Get(context.Context, uuid.UUID) (*domain.ArchivedRequest, error) {
	return nil, e.ErrNotFound
}
func (archiveStub) ListByRequester(context.Context, uuid.UUID) ([]*domain.ArchivedRequest, error) {
	return nil, nil
}

type coverageStub struct {
	snapshot func(ctx context.Context, ref domain.Coordinate) (*service.CoverageSnapshot, error)
}

func (s *coverageStub) Snapshot(ctx context.Context, ref domain.Coordinate) (*service.CoverageSnapshot, error) {
	return s.snapshot(ctx, ref)
}

func newTestRouter(lc *lifecycleStub, q *quotaStub, cov *coverageStub) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := requests.NewHandler(logger, lc, q, archiveStub{}, cov)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity())
		r.Post("/requests", h.RequestCreate)
		r.Get("/requests/{id}", h.RequestGet)
		r.Post("/requests/{id}/cancel", h.RequestCancel)
		r.Post("/requests/{id}/devices/{deviceID}/response", h.RequestRespond)
		r.Get("/quota", h.QuotaGet)
		r.Get("/coverage", h.CoverageGet)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleRequest(requester uuid.UUID) *domain.FootageRequest {
	owner := uuid.New()
	deviceID := uuid.New()
	return &domain.FootageRequest{
		ID:               uuid.New(),
		RequesterID:      requester,
		IncidentLocation: domain.Coordinate{Lat: 53.3811, Lng: -1.4701},
		IncidentType:     "vehicle break-in",
		SearchRadiusM:    200,
		Priority:         domain.PriorityHigh,
		TargetDeviceIDs:  []uuid.UUID{deviceID},
		Responses: []domain.DeviceResponse{{
			DeviceID:   deviceID,
			OwnerID:    owner,
			DeviceName: "garden cam",
			Status:     domain.ResponsePending,
		}},
		Status:    domain.RequestPending,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func TestRequestCreate(t *testing.T) {
	requester := uuid.New()
	created := sampleRequest(requester)

	router := newTestRouter(&lifecycleStub{
		create: func(_ context.Context, requesterID uuid.UUID, in domain.CreateFootageRequestInput) (*domain.FootageRequest, error) {
			if requesterID != requester {
				t.Errorf("requester from header = %s, want %s", requesterID, requester)
			}
			if in.SearchRadiusM != 200 {
				t.Errorf("radius = %f", in.SearchRadiusM)
			}
			return created, nil
		},
	}, nil, nil)

	body := map[string]any{
		"incident_location": map[string]float64{"lat": 53.3811, "lng": -1.4701},
		"incident_type":     "vehicle break-in",
		"search_radius_m":   200,
		"priority":          "high",
	}
	rec := doJSON(t, router, http.MethodPost, "/requests", requester, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	// The requester view must not reveal who owns a responding device.
	if strings.Contains(rec.Body.String(), "owner_id") {
		t.Errorf("requester view leaks owner identities: %s", rec.Body)
	}

	var view struct {
		Responses []struct {
			DeviceName string `json:"device_name"`
		} `json:"responses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Responses) != 1 || view.Responses[0].DeviceName != "garden cam" {
		t.Errorf("unexpected responses: %+v", view.Responses)
	}
}

func TestRequestCreate_Unauthenticated(t *testing.T) {
	router := newTestRouter(&lifecycleStub{}, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/requests", uuid.Nil, map[string]any{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequestCreate_QuotaExceeded(t *testing.T) {
	router := newTestRouter(&lifecycleStub{
		create: func(context.Context, uuid.UUID, domain.CreateFootageRequestInput) (*domain.FootageRequest, error) {
			return nil, e.ErrQuotaExceeded
		},
	}, nil, nil)

	body := map[string]any{
		"incident_location": map[string]float64{"lat": 53.3811, "lng": -1.4701},
		"incident_type":     "vehicle break-in",
		"search_radius_m":   200,
		"priority":          "high",
	}
	rec := doJSON(t, router, http.MethodPost, "/requests", uuid.New(), body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429; body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "weekly request limit reached") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRequestCreate_ValidationRejects(t *testing.T) {
	router := newTestRouter(&lifecycleStub{
		create: func(context.Context, uuid.UUID, domain.CreateFootageRequestInput) (*domain.FootageRequest, error) {
			t.Fatal("service must not be reached on invalid input")
			return nil, nil
		},
	}, nil, nil)

	body := map[string]any{
		"incident_location": map[string]float64{"lat": 53.3811, "lng": -1.4701},
		"incident_type":     "vehicle break-in",
		"search_radius_m":   200,
		"priority":          "asap", // not a known priority
	}
	rec := doJSON(t, router, http.MethodPost, "/requests", uuid.New(), body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRequestGet_Visibility(t *testing.T) {
	requester := uuid.New()
	req := sampleRequest(requester)
	slotOwner := req.Responses[0].OwnerID

	router := newTestRouter(&lifecycleStub{
		get: func(context.Context, uuid.UUID) (*domain.FootageRequest, error) { return req, nil },
	}, nil, nil)

	// Requester sees the full view.
	rec := doJSON(t, router, http.MethodGet, "/requests/"+req.ID.String(), requester, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("requester: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "search_radius_m") {
		t.Errorf("requester view missing search radius: %s", rec.Body)
	}

	// A slot owner sees the incoming view with only their own slots.
	rec = doJSON(t, router, http.MethodGet, "/requests/"+req.ID.String(), slotOwner, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("slot owner: status = %d", rec.Code)
	}
	var incoming struct {
		MySlots []json.RawMessage `json:"my_slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &incoming); err != nil {
		t.Fatalf("decode incoming view: %v", err)
	}
	if len(incoming.MySlots) != 1 {
		t.Errorf("my_slots = %d, want 1", len(incoming.MySlots))
	}

	// Anyone else is refused.
	rec = doJSON(t, router, http.MethodGet, "/requests/"+req.ID.String(), uuid.New(), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stranger: status = %d, want 403", rec.Code)
	}
}

func TestRequestRespond_Conflict(t *testing.T) {
	req := sampleRequest(uuid.New())
	owner := req.Responses[0].OwnerID

	router := newTestRouter(&lifecycleStub{
		respond: func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, domain.RespondInput) (*domain.FootageRequest, error) {
			return nil, e.ErrAlreadyTerminal
		},
	}, nil, nil)

	path := "/requests/" + req.ID.String() + "/devices/" + req.Responses[0].DeviceID.String() + "/response"
	rec := doJSON(t, router, http.MethodPost, path, owner, map[string]string{"status": "denied"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body)
	}
}

func TestRequestRespond_ErrorBodyOmitsOperationPath(t *testing.T) {
	req := sampleRequest(uuid.New())
	owner := req.Responses[0].OwnerID

	router := newTestRouter(&lifecycleStub{
		respond: func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, domain.RespondInput) (*domain.FootageRequest, error) {
			return nil, fmt.Errorf("service.Lifecycle.Respond: request closed (cancelled): %w", e.ErrAlreadyTerminal)
		},
	}, nil, nil)

	path := "/requests/" + req.ID.String() + "/devices/" + req.Responses[0].DeviceID.String() + "/response"
	rec := doJSON(t, router, http.MethodPost, path, owner, map[string]string{"status": "approved"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "request closed") {
		t.Errorf("body lost the actionable reason: %s", body)
	}
	if strings.Contains(body, "service.Lifecycle") {
		t.Errorf("body exposes internal operation names: %s", body)
	}
}

func TestRequestCancel(t *testing.T) {
	req := sampleRequest(uuid.New())

	router := newTestRouter(&lifecycleStub{
		cancel: func(_ context.Context, requestID, _ uuid.UUID, reason string) error {
			if requestID != req.ID || reason != "wrong spot" {
				t.Errorf("cancel args: %s %q", requestID, reason)
			}
			return nil
		},
	}, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/requests/"+req.ID.String()+"/cancel",
		req.RequesterID, map[string]string{"reason": "wrong spot"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body %s", rec.Code, rec.Body)
	}
}

func TestQuotaGet(t *testing.T) {
	userID := uuid.New()
	router := newTestRouter(&lifecycleStub{}, &quotaStub{
		check: func(_ context.Context, id uuid.UUID) (domain.QuotaStatus, error) {
			if id != userID {
				t.Errorf("quota checked for %s, want %s", id, userID)
			}
			return domain.QuotaStatus{Allowed: true, Remaining: 2, Limit: 3,
				Message: "2 request(s) remaining this week"}, nil
		},
	}, nil)

	rec := doJSON(t, router, http.MethodGet, "/quota", userID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "2 request(s) remaining this week") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestCoverageGet(t *testing.T) {
	router := newTestRouter(&lifecycleStub{}, nil, &coverageStub{
		snapshot: func(_ context.Context, ref domain.Coordinate) (*service.CoverageSnapshot, error) {
			if ref.Lat != 53.38 || ref.Lng != -1.47 {
				t.Errorf("ref = %+v", ref)
			}
			return &service.CoverageSnapshot{}, nil
		},
	})

	rec := doJSON(t, router, http.MethodGet, "/coverage?lat=53.38&lng=-1.47", uuid.New(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/coverage?lat=53.38", uuid.New(), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing lng: status = %d, want 400", rec.Code)
	}
}
