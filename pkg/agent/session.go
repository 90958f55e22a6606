package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/eventstream"
	"github.com/inletlabs/attache/pkg/eventstream/nop"
	"github.com/inletlabs/attache/pkg/llm"
	"github.com/inletlabs/attache/pkg/tools"
)

// SystemPrompt describes the assistant and its tools to the model. The tool
// names and one-line descriptions must match the registry exactly.
const SystemPrompt = `You are a helpful AI assistant with access to various tools.
Use the tools when appropriate to help answer user questions.

Available tools:
- calculate_sum: Sum a list of numbers
- convert_currency: Convert between USD, EUR, and INR
- get_current_date: Get current date and time
- get_weather: Get weather for Bangalore, Berlin, or New York
- search_web: Search the web for information

Always explain what you're doing and provide clear, helpful responses.
After using a tool, summarize the result in a user-friendly way.`

// Invoker drives one full model/tool exchange. Implementations return the
// turn sequence the exchange worked over: the conversation supplied as
// input plus every assistant and tool turn generated in response.
type Invoker interface {
	Invoke(ctx context.Context, turns []llm.Turn, specs []tools.Spec, systemPrompt string) ([]llm.Turn, error)
}

// Session is the single entry point for processing chat messages. It owns
// the conversation history and the invoker handle for the process lifetime,
// and serializes invocations: overlapping requests are handled one at a
// time, so a snapshot can never race its own commit.
type Session struct {
	invoker   Invoker
	registry  *tools.Registry
	history   *History
	publisher eventstream.Publisher
	logger    *zap.Logger
	mu        sync.Mutex
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHistoryCap bounds the conversation to the given number of turns.
func WithHistoryCap(cap int) SessionOption {
	return func(s *Session) {
		s.history = NewHistory(cap)
	}
}

// WithPublisher sets the reply event publisher. Defaults to the nop
// publisher.
func WithPublisher(p eventstream.Publisher) SessionOption {
	return func(s *Session) {
		s.publisher = p
	}
}

// NewSession creates a session with an empty conversation.
func NewSession(invoker Invoker, registry *tools.Registry, logger *zap.Logger, opts ...SessionOption) *Session {
	s := &Session{
		invoker:   invoker,
		registry:  registry,
		history:   NewHistory(DefaultHistoryCap),
		publisher: nop.NewPublisher(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessMessage runs one agent invocation for the user's message and
// returns the classified reply. Invocation failures never mutate history;
// they surface as a reply whose text embeds the error.
func (s *Session) ProcessMessage(ctx context.Context, message string) llm.ProcessedReply {
	requestID := uuid.NewString()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	input := append(s.history.Snapshot(), llm.NewUserTurn(message))

	turns, err := s.invoker.Invoke(ctx, input, s.registry.Specs(), SystemPrompt)
	if err != nil {
		s.logger.Error("agent invocation failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return llm.ProcessedReply{
			Response: fmt.Sprintf("I encountered an error processing your request: %v", err),
		}
	}

	reply := Classify(turns)
	s.history.AppendExchange(message, reply.Response)

	s.logger.Info("message processed",
		zap.String("request_id", requestID),
		zap.String("tool_used", reply.ToolUsed),
		zap.Int("history_len", s.history.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	s.publishReply(ctx, requestID, message, reply, time.Since(start))

	return reply
}

// ClearHistory resets the conversation. It takes the session lock, so a
// clear issued while an invocation is in flight applies after that
// invocation commits.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	s.logger.Info("chat history cleared")
}

// HistoryLen returns the number of retained conversation turns.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// publishReply emits a reply-processed event. Best effort: failures are
// logged and never affect the caller.
func (s *Session) publishReply(ctx context.Context, requestID, message string, reply llm.ProcessedReply, elapsed time.Duration) {
	event := &eventstream.ReplyProcessedEvent{
		SchemaVersion: eventstream.SchemaVersionV1,
		EventType:     eventstream.EventTypeReplyProcessed,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		RequestID:     requestID,
		Message:       message,
		Reply:         reply,
		DurationMs:    elapsed.Milliseconds(),
	}
	if err := s.publisher.PublishReply(ctx, event); err != nil {
		s.logger.Warn("failed to publish reply event",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}
