package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
	gate   chan struct{}
}

func (r *recordingAudit) Record(_ context.Context, e ports.AuthEventInput) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingAudit) snapshot() []ports.AuthEventInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.AuthEventInput(nil), r.events...)
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(4, audit, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	kinds := []domain.AuthEventType{domain.AuthEventLogin, domain.AuthEventRefresh, domain.AuthEventLogout}
	for _, k := range kinds {
		d.Enqueue(ports.AuthEventInput{UserID: 7, Type: k, Success: true})
	}

	require.Eventually(t, func() bool { return len(audit.snapshot()) == len(kinds) }, time.Second, 5*time.Millisecond)
	cancel()
	d.Wait()

	for i, e := range audit.snapshot() {
		assert.Equal(t, kinds[i], e.Type)
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(8, &recordingAudit{}, zerolog.Nop())

	a := d.shardIndex(ports.AuthEventInput{UserID: 42, Email: "x@example.com"})
	b := d.shardIndex(ports.AuthEventInput{UserID: 42, Email: "other@example.com"})
	assert.Equal(t, a, b)

	anon := d.shardIndex(ports.AuthEventInput{Email: "ghost@example.com"})
	assert.Equal(t, anon, d.shardIndex(ports.AuthEventInput{Email: "ghost@example.com"}))
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	audit := &recordingAudit{gate: make(chan struct{})}
	d := NewDispatcher(1, audit, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for range channelBuffer + 10 {
			d.Enqueue(ports.AuthEventInput{UserID: 1, Type: domain.AuthEventLogin})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
	assert.Len(t, d.workers[0], channelBuffer)
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(2, audit, zerolog.Nop())

	for i := range 20 {
		d.Enqueue(ports.AuthEventInput{UserID: int64(i + 1), Type: domain.AuthEventLogin})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	assert.Len(t, audit.snapshot(), 20)
}
