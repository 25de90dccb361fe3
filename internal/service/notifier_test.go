package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"neighbourcam/internal/domain"
	"neighbourcam/internal/service"
)

type queueStub struct {
	enqueued []domain.OwnerNotification
	err      error
}

func (q *queueStub) Enqueue(_ context.Context, n domain.OwnerNotification) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, n)
	return nil
}

func TestQueueNotifier_GroupsByOwner(t *testing.T) {
	owner1 := uuid.New()
	owner2 := uuid.New()

	d1 := matchableDevice(northOf(incident, 10))
	d1.OwnerID = owner1
	d2 := matchableDevice(northOf(incident, 20))
	d2.OwnerID = owner1
	d3 := matchableDevice(northOf(incident, 30))
	d3.OwnerID = owner2

	req := pendingRequest(uuid.New(), d1, d2, d3)
	req.IncidentType = "vandalism"

	q := &queueStub{}
	n := service.NewQueueNotifier(q, testLogger)
	n.RequestCreated(context.Background(), req)

	if len(q.enqueued) != 2 {
		t.Fatalf("one notification per owner: got %d, want 2", len(q.enqueued))
	}
	counts := map[uuid.UUID]int{}
	for _, msg := range q.enqueued {
		counts[msg.UserID] = msg.DeviceCount
		if msg.RequestID != req.ID {
			t.Errorf("notification for wrong request: %s", msg.RequestID)
		}
	}
	if counts[owner1] != 2 || counts[owner2] != 1 {
		t.Errorf("device counts by owner = %v", counts)
	}
}

func TestQueueNotifier_SwallowsEnqueueFailures(t *testing.T) {
	d := matchableDevice(northOf(incident, 10))
	req := pendingRequest(uuid.New(), d)

	q := &queueStub{err: errors.New("connection refused")}
	n := service.NewQueueNotifier(q, testLogger)

	// Must not panic or propagate; the request record is the source of truth.
	n.RequestCreated(context.Background(), req)
	if len(q.enqueued) != 0 {
		t.Fatalf("nothing should have been enqueued")
	}
}
