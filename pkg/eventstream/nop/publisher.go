package nop

import (
	"context"

	"github.com/inletlabs/attache/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishReply validates input and otherwise does nothing.
func (p *Publisher) PublishReply(_ context.Context, event *eventstream.ReplyProcessedEvent) error {
	if event == nil {
		return eventstream.ErrNilReplyEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
