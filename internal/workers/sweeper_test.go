package workers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/workers"
)

type sweeperStub struct {
	calls int32
	err   error
}

func (s *sweeperStub) SweepExpired(context.Context) (int, error) {
	atomic.AddInt32(&s.calls, 1)
	return 1, s.err
}

type archiverStub struct {
	calls int32
}

func (a *archiverStub) AutoArchive(context.Context) (*domain.ArchiveSweepResult, error) {
	atomic.AddInt32(&a.calls, 1)
	return &domain.ArchiveSweepResult{
		Archived: 1,
		ByReason: map[domain.ArchiveReason]int{domain.ArchiveExpired: 1},
	}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeper_RunsImmediatelyAndOnTicks(t *testing.T) {
	requests := &sweeperStub{}
	archive := &archiverStub{}
	sw := workers.NewSweeper(discard(), requests, archive, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&requests.calls) >= 2
	}, time.Second, 5*time.Millisecond, "expected the startup pass plus at least one tick")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancel")
	}

	require.Equal(t, atomic.LoadInt32(&requests.calls), atomic.LoadInt32(&archive.calls),
		"every pass runs both the expiry and the archive sweep")
}

func TestSweeper_ArchiveStillRunsAfterExpiryFailure(t *testing.T) {
	requests := &sweeperStub{err: errors.New("connection reset")}
	archive := &archiverStub{}
	sw := workers.NewSweeper(discard(), requests, archive, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sw.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&archive.calls) >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
