package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrDispatcherStopped is returned for events submitted after Stop.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

type job struct {
	ctx   context.Context
	event domain.IdentityEvent
	done  chan error
}

// Dispatcher routes identity events to a fixed set of workers using
// consistent hashing on the external user id, so created and deleted events
// for the same user are applied in order.
type Dispatcher struct {
	workers []chan job
	service ports.IdentityEventService
	log     zerolog.Logger

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.IdentityEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		service: service,
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or Stop is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop signals every worker to exit and waits for in-flight events.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.quit) })
	d.wg.Wait()
}

// Dispatch hands event to the worker owning its user and waits for the
// result.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.IdentityEvent) error {
	idx := d.shardIndex(shardKey(event))
	j := job{ctx: ctx, event: event, done: make(chan error, 1)}

	select {
	case <-d.quit:
		return ErrDispatcherStopped
	default:
	}

	select {
	case <-d.quit:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	case d.workers[idx] <- j:
		metrics.DispatcherQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	}

	select {
	case err := <-j.done:
		return err
	case <-d.quit:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func shardKey(event domain.IdentityEvent) string {
	if event.ExternalID != "" {
		return event.ExternalID
	}
	return event.DeliveryID
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.quit:
			return
		case j := <-ch:
			metrics.DispatcherQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			err := d.service.Process(j.ctx, j.event)
			if err != nil {
				d.log.Error().Err(err).
					Str("delivery_id", j.event.DeliveryID).
					Str("external_id", j.event.ExternalID).
					Int("worker_id", id).
					Msg("identity event processing failed")
			}
			j.done <- err
		}
	}
}
