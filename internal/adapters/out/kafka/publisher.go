// Package kafka publishes assignment events to a Kafka topic. Events are
// emitted after the owning transaction commits and are best-effort: a failed
// write is the caller's to log, never to roll back.
package kafka

import (
	"context"
	"encoding/json"

	"shipping/internal/core/ports"

	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of segmentio's kafka.Writer the publisher needs.
// It keeps the publisher testable without a broker.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// AssignmentPublisher implements ports.EventPublisher on a Kafka topic.
// Messages are keyed by departure ID so all load changes for one departure
// land on the same partition, in order.
type AssignmentPublisher struct {
	writer Writer
}

// NewAssignmentPublisher creates a publisher writing to the given broker and topic.
func NewAssignmentPublisher(brokerURL, topic string) *AssignmentPublisher {
	return &AssignmentPublisher{
		writer: &skafka.Writer{
			Addr:     skafka.TCP(brokerURL),
			Topic:    topic,
			Balancer: &skafka.LeastBytes{},
		},
	}
}

// NewAssignmentPublisherWithWriter allows injecting a test writer.
func NewAssignmentPublisherWithWriter(w Writer) *AssignmentPublisher {
	return &AssignmentPublisher{writer: w}
}

// PublishAssignment writes the event as JSON, keyed by departure ID.
func (p *AssignmentPublisher) PublishAssignment(ctx context.Context, event ports.AssignmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, skafka.Message{
		Key:   []byte(event.DepartureID),
		Value: payload,
	})
}

// Close closes the underlying writer.
func (p *AssignmentPublisher) Close() error {
	return p.writer.Close()
}
