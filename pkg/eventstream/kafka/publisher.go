// Package kafka publishes reply events to a Kafka topic.
package kafka

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/inletlabs/attache/pkg/eventstream"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher writes reply events to a Kafka topic, keyed by event ID.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkago.LeastBytes{},
		},
	}
}

// PublishReply marshals the event and writes it to the topic.
func (p *Publisher) PublishReply(ctx context.Context, event *eventstream.ReplyProcessedEvent) error {
	if event == nil {
		return eventstream.ErrNilReplyEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(event.EventID),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
