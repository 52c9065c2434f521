package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowbook/salon-booking/internal/api/metrics"
	"github.com/glowbook/salon-booking/internal/core/domain"
	"github.com/glowbook/salon-booking/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes appointment events to a fixed set of workers using
// consistent hashing on the appointment id, guaranteeing per-appointment
// event ordering. It satisfies ports.EventPublisher so services never wait
// on the broker.
type Dispatcher struct {
	workers []chan domain.AppointmentEvent
	sink    ports.EventPublisher
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// forward events to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AppointmentEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers flush their buffer and stop when ctx is cancelled.
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

// Publish sends an event to the worker responsible for its appointment.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	idx := d.shardIndex(event.Appointment.ID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appointmentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	defer d.wg.Done()
	depth := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, event)
		}
	}
}

// drain delivers whatever is still buffered once the worker is told to stop.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, event domain.AppointmentEvent) {
	typ := string(event.Type)
	start := time.Now()
	// ctx only stops the loop; delivery itself is not cut short.
	err := d.sink.Publish(context.WithoutCancel(ctx), event)
	metrics.EventPublishDuration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EventsErrorsTotal.WithLabelValues(typ).Inc()
		d.log.Error().Err(err).
			Str("appointment_id", event.Appointment.ID).
			Str("event", typ).
			Int("worker_id", workerID).
			Msg("event publishing failed")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(typ).Inc()
}
