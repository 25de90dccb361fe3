package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"neighbourcam/internal/domain"

	"github.com/google/uuid"
)

// NotificationQueue is the Redis-backed buffer the sender worker drains.
type NotificationQueue interface {
	Enqueue(ctx context.Context, n domain.OwnerNotification) error
}

// QueueNotifier groups a request's slots by owner and enqueues one
// notification per owner, naming how many of their devices are targeted.
// Enqueue failures are logged and swallowed: the request record is the
// source of truth and notifications are best effort.
type QueueNotifier struct {
	queue  NotificationQueue
	logger *slog.Logger
}

func NewQueueNotifier(queue NotificationQueue, logger *slog.Logger) *QueueNotifier {
	return &QueueNotifier{queue: queue, logger: logger}
}

func (n *QueueNotifier) RequestCreated(ctx context.Context, req *domain.FootageRequest) {
	now := time.Now()

	byOwner := make(map[uuid.UUID]int)
	for i := range req.Responses {
		byOwner[req.Responses[i].OwnerID]++
	}

	for ownerID, count := range byOwner {
		notification := domain.OwnerNotification{
			UserID:      ownerID,
			RequestID:   req.ID,
			Title:       fmt.Sprintf("New footage request (%s priority)", req.Priority),
			Message: fmt.Sprintf("%s incident nearby: %d of your device(s) may have captured footage.",
				req.IncidentType, count),
			DeviceCount: count,
			CreatedAt:   now,
		}
		if err := n.queue.Enqueue(ctx, notification); err != nil {
			n.logger.Error("enqueue notification failed",
				slog.String("request_id", req.ID.String()),
				slog.String("owner_id", ownerID.String()),
				slog.Any("error", err))
			continue
		}
	}

	n.logger.Info("owner notifications enqueued",
		slog.String("request_id", req.ID.String()),
		slog.Int("owners", len(byOwner)))
}
