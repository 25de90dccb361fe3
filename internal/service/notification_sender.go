package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"neighbourcam/internal/config"
	"neighbourcam/internal/domain"
	"neighbourcam/internal/redis"
	"neighbourcam/pkg/e"
)

// NotificationSender drains the queue and posts each payload to the external
// dispatcher (email/SMS/push is its problem). Failures are retried a few
// times, then logged and dropped; they never reach the request path.
type NotificationSender struct {
	logger *slog.Logger
	cfg    config.NotifyConfig
	queue  *redis.NotificationQueue
	http   *http.Client
}

func NewNotificationSender(logger *slog.Logger, cfg config.NotifyConfig, q *redis.NotificationQueue) *NotificationSender {
	return &NotificationSender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *NotificationSender) Run(ctx context.Context) {
	if s.cfg.Disabled {
		s.logger.Warn("notification sender disabled by config")
		return
	}
	s.logger.Info("notification sender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.sendWithRetry(ctx, payload)
	}
}

func (s *NotificationSender) sendWithRetry(ctx context.Context, n domain.OwnerNotification) {
	const maxRetries = 3

	body, err := json.Marshal(n)
	if err != nil {
		s.logger.Error("marshal notification failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create dispatch request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}
		s.logger.Warn("notification dispatch failed",
			slog.Int("attempt", attempt),
			slog.String("user_id", n.UserID.String()),
			slog.String("reason", reason))

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
