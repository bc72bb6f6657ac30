package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitforge/playground-api/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
	want   int
}

func (s *recordingAuditService) Process(_ context.Context, event domain.AuthEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := &recordingAuditService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, action := range []domain.AuthAction{domain.ActionSignup, domain.ActionLogin, domain.ActionLogout} {
		d.Enqueue(domain.AuthEvent{
			Email:     "alice@example.com",
			Action:    action,
			Timestamp: time.Now().UTC(),
		})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(svc.events))
	}
	// same email shards to the same worker, preserving order
	if svc.events[0].Action != domain.ActionSignup || svc.events[2].Action != domain.ActionLogout {
		t.Fatalf("unexpected event order: %+v", svc.events)
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
