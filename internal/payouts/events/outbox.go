package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/logging"
	"github.com/cicconee/payouts/internal/platform/messaging"
	"github.com/cicconee/payouts/internal/platform/retry"
	"github.com/cicconee/payouts/internal/shared/payouts"
	"github.com/segmentio/kafka-go"
)

// Writer is the part of *kafka.Writer the outbox needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewKafkaWriter(brokers []string, topic string, log *logging.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		ErrorLogger:  kafka.LoggerFunc(log.Errorf),
	}
}

// Outbox decouples the payment request service from Kafka: Notify only
// queues, Run publishes.
type Outbox struct {
	w     Writer
	log   *logging.Logger
	queue chan app.Event
	retry retry.Config

	drainTimeout time.Duration
}

// DefaultDrainTimeout bounds how long Run keeps publishing after its context
// is done.
const DefaultDrainTimeout = 5 * time.Second

func NewOutbox(w Writer, log *logging.Logger, size int) *Outbox {
	if size <= 0 {
		size = 1
	}

	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = 5
	cfg.IsRetryable = isRetryableKafka
	cfg.OnRetry = func(attempt int, err error, sleep time.Duration) {
		log.Warn("event publish retry", "attempt", attempt, "err", err, "sleep", sleep)
	}

	return &Outbox{
		w:     w,
		log:   log,
		queue: make(chan app.Event, size),
		retry: cfg,

		drainTimeout: DefaultDrainTimeout,
	}
}

// Notify queues e without blocking. When the queue is full the event is
// dropped and logged.
func (o *Outbox) Notify(e app.Event) {
	select {
	case o.queue <- e:
		o.log.Debug("event queued", "event_id", e.ID, "event_type", e.Type)
	default:
		o.log.Error("event outbox full, dropping event",
			"event_id", e.ID,
			"event_type", e.Type,
			"request_id", e.Request.ID,
		)
	}
}

// Run publishes queued events until ctx is done, then drains what is still
// queued for at most the drain timeout. A failed publish is logged and
// skipped so one bad event cannot stall the queue.
func (o *Outbox) Run(ctx context.Context) error {
	o.log.Info("event outbox started")

	for {
		select {
		case <-ctx.Done():
			o.drain()
			return nil
		case e := <-o.queue:
			err := o.deliver(ctx, e)
			if err == nil {
				continue
			}
			if ctx.Err() != nil {
				// Cancelled mid-publish: e is still undelivered.
				o.drain(e)
				return nil
			}
			o.logFailure(e, err)
		}
	}
}

func (o *Outbox) drain(pending ...app.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), o.drainTimeout)
	defer cancel()

	for {
		var e app.Event
		if len(pending) > 0 {
			e, pending = pending[0], pending[1:]
		} else {
			select {
			case e = <-o.queue:
			default:
				o.log.Info("event outbox stopped")
				return
			}
		}

		if ctx.Err() != nil {
			o.log.Error("event outbox stopped with undelivered events",
				"undelivered", 1+len(pending)+len(o.queue),
			)
			return
		}
		if err := o.deliver(ctx, e); err != nil {
			o.logFailure(e, err)
		}
	}
}

func (o *Outbox) deliver(ctx context.Context, e app.Event) error {
	if err := o.publish(ctx, e); err != nil {
		return err
	}

	o.log.Info("event published",
		"event_id", e.ID,
		"event_type", e.Type,
		"request_id", e.Request.ID,
	)
	return nil
}

func (o *Outbox) logFailure(e app.Event, err error) {
	o.log.Error("event publish failed",
		"err", err,
		"event_id", e.ID,
		"event_type", e.Type,
		"request_id", e.Request.ID,
	)
}

func (o *Outbox) Close() error {
	return o.w.Close()
}

func (o *Outbox) publish(ctx context.Context, e app.Event) error {
	msg, err := Message(e)
	if err != nil {
		return err
	}

	return retry.Do(ctx, o.retry, func() error {
		if err := o.w.WriteMessages(ctx, msg); err != nil {
			return fmt.Errorf("write %s: %w", e.Type, err)
		}
		return nil
	})
}

// Message builds the Kafka record for e, keyed by request id so every
// change to one request lands on the same partition in order.
func Message(e app.Event) (kafka.Message, error) {
	value, err := messaging.EncodeConnectEnvelopeValid(e.Payload())
	if err != nil {
		return kafka.Message{}, err
	}

	// In-process mutations carry no inbound trace; the event id stands in.
	headers := messaging.Headers{}
	headers.
		Set(messaging.HeaderEventID, e.ID).
		Set(messaging.HeaderEventType, string(e.Type)).
		Set(messaging.HeaderAggregateType, payouts.AggregateTypePaymentRequest).
		Set(messaging.HeaderTraceID, e.ID).
		Set(messaging.HeaderRouteKey, payouts.RouteKeyPaymentRequestEvt)

	return kafka.Message{
		Key:     []byte(strconv.FormatInt(e.Request.ID, 10)),
		Value:   value,
		Headers: headers.Kafka(),
		Time:    e.OccurredAt,
	}, nil
}

func isRetryableKafka(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Temporary()
	}

	// Dial and connection errors surface as plain network errors.
	return true
}
