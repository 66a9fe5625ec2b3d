// Package events publishes order lifecycle changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"food-marketplace/pkg/messaging"
	"food-marketplace/pkg/tracing"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       int64     `json:"order_id"`
	PreviousState string    `json:"previous_state,omitempty"`
	NewState      string    `json:"new_state"`
	Actor         string    `json:"actor"`
	CourierID     *int64    `json:"courier_id,omitempty"`
	PreferenceID  *string   `json:"preference_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	TypeOrderCreated      = "order.created"
	TypeOrderStateChanged = "order.state_changed"
)

// DefaultEnqueueTimeout bounds how long a request waits for room in the producer queue.
const DefaultEnqueueTimeout = 100 * time.Millisecond

var ErrQueueFull = errors.New("order event queue full")

type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

type kafkaPublisher struct {
	producer       sarama.AsyncProducer
	topic          string
	enqueueTimeout time.Duration
	log            *zap.Logger
	done           chan struct{}
}

// eventMeta rides on ProducerMessage.Metadata so delivery reports can be logged.
type eventMeta struct {
	traceID string
	typ     string
	orderID int64
}

// NewKafkaPublisher starts a goroutine that drains delivery reports until the producer
// is closed.
func NewKafkaPublisher(producer sarama.AsyncProducer, topic string, log *zap.Logger) Publisher {
	p := &kafkaPublisher{
		producer:       producer,
		topic:          topic,
		enqueueTimeout: DefaultEnqueueTimeout,
		log:            log.With(zap.String("publisher", "kafka")),
		done:           make(chan struct{}),
	}
	go p.drain()
	return p
}

// PublishOrderEvent enqueues the event keyed by order id so one order's events stay ordered.
// Delivery happens in the background; only a full queue or a done ctx is reported.
func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	var headers messaging.HeaderCarrier
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	meta := eventMeta{
		traceID: tracing.TraceID(ctx),
		typ:     event.Type,
		orderID: event.OrderID,
	}
	msg := &sarama.ProducerMessage{
		Topic:    p.topic,
		Key:      sarama.StringEncoder(strconv.FormatInt(event.OrderID, 10)),
		Value:    sarama.ByteEncoder(payload),
		Headers:  []sarama.RecordHeader(headers),
		Metadata: meta,
	}

	timer := time.NewTimer(p.enqueueTimeout)
	defer timer.Stop()

	select {
	case p.producer.Input() <- msg:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue order event for order %d: %w", event.OrderID, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("enqueue order event for order %d: %w", event.OrderID, ErrQueueFull)
	}
}

func (p *kafkaPublisher) drain() {
	defer close(p.done)

	successes := p.producer.Successes()
	failures := p.producer.Errors()
	for successes != nil || failures != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			meta, _ := msg.Metadata.(eventMeta)
			p.log.Info("Event published",
				zap.String("trace_id", meta.traceID),
				zap.String("topic", msg.Topic),
				zap.String("type", meta.typ),
				zap.Int64("order_id", meta.orderID),
				zap.Int32("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
		case perr, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
			var meta eventMeta
			if perr.Msg != nil {
				meta, _ = perr.Msg.Metadata.(eventMeta)
			}
			p.log.Warn("Failed to publish order event",
				zap.Error(perr.Err),
				zap.String("trace_id", meta.traceID),
				zap.String("type", meta.typ),
				zap.Int64("order_id", meta.orderID),
			)
		}
	}
}

type noopPublisher struct {
	log *zap.Logger
}

// NewNoopPublisher logs events at debug level instead of sending them.
func NewNoopPublisher(log *zap.Logger) Publisher {
	return &noopPublisher{log: log.With(zap.String("publisher", "noop"))}
}

func (p *noopPublisher) PublishOrderEvent(_ context.Context, event OrderEvent) error {
	p.log.Debug("Order event",
		zap.String("type", event.Type),
		zap.Int64("order_id", event.OrderID),
		zap.String("new_state", event.NewState),
	)
	return nil
}
