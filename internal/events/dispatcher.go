package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const dispatchBuffer = 100

// Dispatcher hands events to a Publisher on a background worker so request
// paths never wait on the broker.
type Dispatcher struct {
	publisher Publisher
	logger    zerolog.Logger
	ch        chan *Event
	done      chan struct{}
	once      sync.Once
	onResult  func(eventType string, err error)
}

// NewDispatcher starts the worker. onResult, when set, is called after every
// publish attempt.
func NewDispatcher(publisher Publisher, logger zerolog.Logger, onResult func(eventType string, err error)) *Dispatcher {
	d := &Dispatcher{
		publisher: publisher,
		logger:    logger,
		ch:        make(chan *Event, dispatchBuffer),
		done:      make(chan struct{}),
		onResult:  onResult,
	}
	go d.worker()
	return d
}

// Emit queues an event. When the queue is full the event is published
// synchronously.
func (d *Dispatcher) Emit(ctx context.Context, event *Event) {
	select {
	case d.ch <- event:
	default:
		d.publish(ctx, event)
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for event := range d.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		d.publish(ctx, event)
		cancel()
	}
}

func (d *Dispatcher) publish(ctx context.Context, event *Event) {
	err := d.publisher.Publish(ctx, event)
	if err != nil {
		d.logger.Warn().Err(err).Str("event_type", event.EventType).Msg("activity event dropped")
	}
	if d.onResult != nil {
		d.onResult(event.EventType, err)
	}
}

// Close drains queued events and closes the publisher.
func (d *Dispatcher) Close() error {
	var err error
	d.once.Do(func() {
		close(d.ch)
		<-d.done
		err = d.publisher.Close()
	})
	return err
}
