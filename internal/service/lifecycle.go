package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/config"
	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
)

// LifecycleService owns the footage-request state machine: creation with
// quota consumption, per-device response aggregation, cancellation,
// fulfilment and the expiry sweep.
type LifecycleService struct {
	requests RequestStore
	devices  DeviceStore
	matcher  CandidateFinder
	notifier Notifier
	policy   config.PolicyConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewLifecycleService(
	requests RequestStore,
	devices DeviceStore,
	matcher CandidateFinder,
	notifier Notifier,
	policy config.PolicyConfig,
	logger *slog.Logger,
) *LifecycleService {
	return &LifecycleService{
		requests: requests,
		devices:  devices,
		matcher:  matcher,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// Create builds a footage request with one pending slot per candidate found
// right now. Zero candidates still creates the request (the requester keeps a
// record); it simply holds an empty slot set until the expiry sweep reaches
// it. Quota consumption and the insert share one atomic store operation, so
// a quota rejection leaves no side effects at all.
func (s *LifecycleService) Create(ctx context.Context, requesterID uuid.UUID, in domain.CreateFootageRequestInput) (*domain.FootageRequest, error) {
	const op = "service.Lifecycle.Create"

	if !in.IncidentLocation.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if in.SearchRadiusM < s.policy.MinSearchRadiusM || in.SearchRadiusM > s.policy.MaxSearchRadiusM {
		return nil, fmt.Errorf("%s: search radius must be %.0f-%.0f m: %w",
			op, s.policy.MinSearchRadiusM, s.policy.MaxSearchRadiusM, e.ErrInvalidRange)
	}

	candidates, err := s.matcher.FindCandidates(ctx, in.IncidentLocation, in.SearchRadiusM)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	now := s.now()
	req := &domain.FootageRequest{
		ID:               uuid.New(),
		RequesterID:      requesterID,
		IncidentLocation: in.IncidentLocation,
		IncidentType:     in.IncidentType,
		SearchRadiusM:    in.SearchRadiusM,
		Priority:         in.Priority,
		Status:           domain.RequestPending,
		StatusHistory: []domain.StatusChange{{
			Status:    domain.RequestPending,
			ChangedAt: now,
			ChangedBy: requesterID.String(),
		}},
		CreatedAt: now,
		ExpiresAt: now.Add(s.policy.RequestTTL),
	}
	for _, d := range candidates.Devices {
		req.TargetDeviceIDs = append(req.TargetDeviceIDs, d.ID)
		req.Responses = append(req.Responses, domain.DeviceResponse{
			DeviceID:   d.ID,
			OwnerID:    d.OwnerID,
			DeviceName: d.Name,
			Status:     domain.ResponsePending,
		})
	}
	for _, m := range candidates.Markers {
		req.TargetDeviceIDs = append(req.TargetDeviceIDs, m.ID)
		req.Responses = append(req.Responses, domain.DeviceResponse{
			DeviceID:   m.ID,
			OwnerID:    m.OwnerID,
			DeviceName: fmt.Sprintf("%s (temporary)", m.DeviceType),
			Status:     domain.ResponsePending,
		})
	}

	if err := s.requests.CreateWithQuota(ctx, req, s.policy.WeeklyRequestLimit, now, domain.NextMonday(now)); err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("footage request created",
		slog.String("request_id", req.ID.String()),
		slog.String("requester_id", requesterID.String()),
		slog.Int("targets", len(req.Responses)),
		slog.String("priority", string(req.Priority)))

	if !candidates.Empty() {
		// Best effort: a notification failure must never roll back the
		// request, the record itself is the source of truth.
		s.notifier.RequestCreated(ctx, req)
	}

	return req, nil
}

// Respond transitions one device's slot out of pending. Only the slot owner
// may do so. Repeating the same terminal status is a no-op; conflicting
// re-responses are rejected. The aggregate status is re-derived from the
// slot list on every change, never tracked separately.
func (s *LifecycleService) Respond(ctx context.Context, requestID, deviceID, actorID uuid.UUID, in domain.RespondInput) (*domain.FootageRequest, error) {
	const op = "service.Lifecycle.Respond"

	switch in.Status {
	case domain.ResponseApproved, domain.ResponseDenied, domain.ResponseNoFootage:
	default:
		return nil, fmt.Errorf("%s: invalid response status %q: %w", op, in.Status, e.ErrInvalidInput)
	}

	now := s.now()
	updated, err := s.requests.Mutate(ctx, requestID, func(req *domain.FootageRequest) error {
		if !req.Status.Mutable() {
			return fmt.Errorf("request closed (%s): %w", req.Status, e.ErrAlreadyTerminal)
		}

		slot := req.Slot(deviceID)
		if slot == nil {
			return fmt.Errorf("device %s is not targeted by this request: %w", deviceID, e.ErrNotFound)
		}
		if slot.OwnerID != actorID {
			return fmt.Errorf("only the device owner may respond: %w", e.ErrForbidden)
		}
		if slot.Status != domain.ResponsePending {
			if slot.Status == in.Status {
				return nil // idempotent retry
			}
			return fmt.Errorf("already responded (%s): %w", slot.Status, e.ErrAlreadyTerminal)
		}

		slot.Status = in.Status
		slot.RespondedAt = &now
		if in.Status == domain.ResponseDenied && in.Reason != "" {
			slot.DenialReason = in.Reason
		}

		if agg := req.AggregateStatus(); agg != req.Status {
			req.Status = agg
			req.StatusHistory = append(req.StatusHistory, domain.StatusChange{
				Status:    agg,
				ChangedAt: now,
				ChangedBy: "system",
			})
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("device response recorded",
		slog.String("request_id", requestID.String()),
		slog.String("device_id", deviceID.String()),
		slog.String("response", string(in.Status)),
		slog.String("aggregate", string(updated.Status)))

	return updated, nil
}

// Cancel is requester-only and allowed while the request is pending or
// approved. Individual slots keep whatever state they were in.
func (s *LifecycleService) Cancel(ctx context.Context, requestID, actorID uuid.UUID, reason string) error {
	const op = "service.Lifecycle.Cancel"

	now := s.now()
	_, err := s.requests.Mutate(ctx, requestID, func(req *domain.FootageRequest) error {
		if req.RequesterID != actorID {
			return fmt.Errorf("only the requester may cancel: %w", e.ErrForbidden)
		}
		if !req.Status.Mutable() {
			return fmt.Errorf("request closed (%s): %w", req.Status, e.ErrAlreadyTerminal)
		}
		req.Status = domain.RequestCancelled
		req.StatusHistory = append(req.StatusHistory, domain.StatusChange{
			Status:    domain.RequestCancelled,
			ChangedAt: now,
			ChangedBy: actorID.String(),
			Reason:    reason,
		})
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	s.logger.Info("request cancelled",
		slog.String("request_id", requestID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// MarkFulfilled closes an approved request once the requester has what they
// need. Footage handling itself lives outside this core.
func (s *LifecycleService) MarkFulfilled(ctx context.Context, requestID, actorID uuid.UUID) error {
	const op = "service.Lifecycle.MarkFulfilled"

	now := s.now()
	_, err := s.requests.Mutate(ctx, requestID, func(req *domain.FootageRequest) error {
		if req.RequesterID != actorID {
			return fmt.Errorf("only the requester may mark fulfilled: %w", e.ErrForbidden)
		}
		if req.Status != domain.RequestApproved {
			return fmt.Errorf("request is %s, not approved: %w", req.Status, e.ErrAlreadyTerminal)
		}
		req.Status = domain.RequestFulfilled
		req.StatusHistory = append(req.StatusHistory, domain.StatusChange{
			Status:    domain.RequestFulfilled,
			ChangedAt: now,
			ChangedBy: actorID.String(),
		})
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// SweepExpired promotes overdue pending requests to expired, one record per
// transaction so a partial failure leaves every record valid. Safe to run
// repeatedly and concurrently.
func (s *LifecycleService) SweepExpired(ctx context.Context) (int, error) {
	const op = "service.Lifecycle.SweepExpired"

	now := s.now()
	ids, err := s.requests.ListExpiredPending(ctx, now)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	count := 0
	for _, id := range ids {
		changed := false
		_, err := s.requests.Mutate(ctx, id, func(req *domain.FootageRequest) error {
			if req.Status != domain.RequestPending || req.ExpiresAt.After(now) {
				return nil // raced with another sweep or a user transition
			}
			req.Status = domain.RequestExpired
			req.StatusHistory = append(req.StatusHistory, domain.StatusChange{
				Status:    domain.RequestExpired,
				ChangedAt: now,
				ChangedBy: "system",
				Reason:    "request expired",
			})
			changed = true
			return nil
		})
		if err != nil {
			s.logger.Error("expiry sweep: record failed",
				slog.String("request_id", id.String()), slog.Any("error", err))
			continue
		}
		if changed {
			count++
		}
	}

	if count > 0 {
		s.logger.Info("expiry sweep done", slog.Int("expired", count))
	}
	return count, nil
}

func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*domain.FootageRequest, error) {
	return s.requests.Get(ctx, id)
}

func (s *LifecycleService) ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.FootageRequest, error) {
	return s.requests.ListByRequester(ctx, userID)
}

// ListIncoming returns requests targeting any of the owner's devices.
func (s *LifecycleService) ListIncoming(ctx context.Context, ownerID uuid.UUID) ([]*domain.FootageRequest, error) {
	const op = "service.Lifecycle.ListIncoming"

	owned, err := s.devices.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(owned) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(owned))
	for _, d := range owned {
		ids = append(ids, d.ID)
	}
	return s.requests.ListTargetingDevices(ctx, ids)
}
