package service

import (
	"context"
	"log/slog"
	"time"

	"neighbourcam/internal/config"
	"neighbourcam/internal/domain"
	"neighbourcam/pkg/e"

	"github.com/google/uuid"
)

// ArchiveService moves terminal requests out of the active store under
// time-based rules and restores them on demand. The thresholds are policy
// configuration, not constants baked into the state machine.
type ArchiveService struct {
	requests RequestStore
	archive  ArchiveStore
	policy   config.PolicyConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewArchiveService(requests RequestStore, archive ArchiveStore, policy config.PolicyConfig, logger *slog.Logger) *ArchiveService {
	return &ArchiveService{
		requests: requests,
		archive:  archive,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// reasonFor applies the archival rule set to one request:
//   - approved/fulfilled older than the fulfilled threshold -> fulfilled
//   - status expired, or expiresAt already past -> expired
//   - cancelled older than the cancelled threshold -> cancelled
func (s *ArchiveService) reasonFor(req *domain.FootageRequest, now time.Time) (domain.ArchiveReason, bool) {
	switch {
	case (req.Status == domain.RequestFulfilled || req.Status == domain.RequestApproved) &&
		now.Sub(req.CreatedAt) > s.policy.ArchiveFulfilledAfter:
		return domain.ArchiveFulfilled, true
	case req.Status == domain.RequestExpired || !req.ExpiresAt.After(now):
		return domain.ArchiveExpired, true
	case req.Status == domain.RequestCancelled &&
		now.Sub(req.CreatedAt) > s.policy.ArchiveCancelledAfter:
		return domain.ArchiveCancelled, true
	default:
		return "", false
	}
}

// AutoArchive sweeps the whole active set. One move per transaction, so the
// sweep is interruptible and re-running it is a no-op for records already
// moved (they are simply absent from the active set).
func (s *ArchiveService) AutoArchive(ctx context.Context) (*domain.ArchiveSweepResult, error) {
	const op = "service.Archive.AutoArchive"

	now := s.now()
	active, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := &domain.ArchiveSweepResult{ByReason: map[domain.ArchiveReason]int{}}
	for _, req := range active {
		reason, ok := s.reasonFor(req, now)
		if !ok {
			continue
		}
		if err := s.archive.Move(ctx, req.ID, reason, now); err != nil {
			s.logger.Error("auto-archive: move failed",
				slog.String("request_id", req.ID.String()),
				slog.String("reason", string(reason)),
				slog.Any("error", err))
			continue
		}
		result.Archived++
		result.ByReason[reason]++
	}

	s.logger.Info("auto-archive done",
		slog.Int("archived", result.Archived),
		slog.Int("scanned", len(active)))
	return result, nil
}

// ArchiveManually moves a single request regardless of the rule set.
func (s *ArchiveService) ArchiveManually(ctx context.Context, requestID uuid.UUID) error {
	const op = "service.Archive.ArchiveManually"

	if err := s.archive.Move(ctx, requestID, domain.ArchiveManual, s.now()); err != nil {
		return e.Wrap(op, err)
	}
	s.logger.Info("request archived manually", slog.String("request_id", requestID.String()))
	return nil
}

// Restore moves an archived request back into the active store; the archive
// entry disappears and the record carries no archive-only fields.
func (s *ArchiveService) Restore(ctx context.Context, requestID uuid.UUID) (*domain.FootageRequest, error) {
	const op = "service.Archive.Restore"

	req, err := s.archive.Restore(ctx, requestID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Info("request restored from archive", slog.String("request_id", requestID.String()))
	return req, nil
}

func (s *ArchiveService) Get(ctx context.Context, id uuid.UUID) (*domain.ArchivedRequest, error) {
	return s.archive.Get(ctx, id)
}

func (s *ArchiveService) Stats(ctx context.Context) (*domain.ArchiveStats, error) {
	return s.archive.Stats(ctx)
}

func (s *ArchiveService) ListByRequester(ctx context.Context, userID uuid.UUID) ([]*domain.ArchivedRequest, error) {
	return s.archive.ListByRequester(ctx, userID)
}
