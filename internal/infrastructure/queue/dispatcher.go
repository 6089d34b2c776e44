package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/journal-system/internal/api/metrics"
	"github.com/99minutos/journal-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth events to a fixed set of workers using consistent
// hashing on the user, so each user's events are recorded in order.
type Dispatcher struct {
	workers []chan ports.AuthEventInput
	service ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuthEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuthEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their buffers and stop
// when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands the event to its worker. It never blocks: when the worker's
// buffer is full the event is dropped and counted.
func (d *Dispatcher) Enqueue(event ports.AuthEventInput) {
	idx := d.shardIndex(event)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("type", string(event.Type)).
			Int64("user_id", event.UserID).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a user (or the email, for anonymous attempts) to a worker.
func (d *Dispatcher) shardIndex(event ports.AuthEventInput) int {
	key := event.Email
	if event.UserID != 0 {
		key = strconv.FormatInt(event.UserID, 10)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AuthEventInput) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	// the request that produced an event may already be gone
	recordCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			// drain what is already buffered before exiting
			for {
				select {
				case event := <-ch:
					d.process(recordCtx, id, event)
				default:
					metrics.AuditQueueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		case event := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(recordCtx, id, event)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event ports.AuthEventInput) {
	if err := d.service.Record(ctx, event); err != nil {
		d.log.Error().Err(err).
			Str("type", string(event.Type)).
			Int64("user_id", event.UserID).
			Int("worker_id", id).
			Msg("audit event processing failed")
	}
}
