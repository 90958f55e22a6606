package agent_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/inletlabs/attache/pkg/agent"
	"github.com/inletlabs/attache/pkg/eventstream"
	"github.com/inletlabs/attache/pkg/llm"
	"github.com/inletlabs/attache/pkg/tools"
	"github.com/inletlabs/attache/pkg/tools/builtin"
)

var ctx = context.Background()

type fakeInvoker struct {
	invoke func(turns []llm.Turn) ([]llm.Turn, error)
	calls  [][]llm.Turn
}

func (f *fakeInvoker) Invoke(_ context.Context, turns []llm.Turn, _ []tools.Spec, _ string) ([]llm.Turn, error) {
	f.calls = append(f.calls, turns)
	return f.invoke(turns)
}

// echoInvoker answers every message with a fixed reply, echoing its input
// the way a real invocation does.
func echoInvoker(response string) *fakeInvoker {
	return &fakeInvoker{invoke: func(turns []llm.Turn) ([]llm.Turn, error) {
		return append(turns, llm.NewAssistantTurn(response)), nil
	}}
}

type capturingPublisher struct {
	events []*eventstream.ReplyProcessedEvent
}

func (p *capturingPublisher) PublishReply(_ context.Context, event *eventstream.ReplyProcessedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

var _ = Describe("Session", func() {
	var registry *tools.Registry

	BeforeEach(func() {
		registry = builtin.NewRegistry(zap.NewNop())
	})

	newSession := func(invoker agent.Invoker, opts ...agent.SessionOption) *agent.Session {
		return agent.NewSession(invoker, registry, zap.NewNop(), opts...)
	}

	It("returns the classified reply and commits the exchange", func() {
		session := newSession(echoInvoker("Hello!"))

		reply := session.ProcessMessage(ctx, "hi")
		Expect(reply.Response).To(Equal("Hello!"))
		Expect(session.HistoryLen()).To(Equal(2))
	})

	It("passes prior history plus the new user turn to the invoker", func() {
		invoker := echoInvoker("ok")
		session := newSession(invoker)

		session.ProcessMessage(ctx, "first")
		session.ProcessMessage(ctx, "second")

		Expect(invoker.calls).To(HaveLen(2))
		Expect(invoker.calls[1]).To(HaveLen(3))
		Expect(invoker.calls[1][0].Content).To(Equal("first"))
		Expect(invoker.calls[1][1].Content).To(Equal("ok"))
		Expect(invoker.calls[1][2].Content).To(Equal("second"))
	})

	It("caps retained history at the default bound", func() {
		session := newSession(echoInvoker("ok"))
		for i := 0; i < 15; i++ {
			session.ProcessMessage(ctx, fmt.Sprintf("message %d", i))
		}
		Expect(session.HistoryLen()).To(Equal(agent.DefaultHistoryCap))
	})

	It("embeds invocation errors in the reply without touching history", func() {
		invoker := &fakeInvoker{invoke: func([]llm.Turn) ([]llm.Turn, error) {
			return nil, errors.New("connection refused")
		}}
		session := newSession(invoker)

		reply := session.ProcessMessage(ctx, "hi")
		Expect(reply.Response).To(Equal("I encountered an error processing your request: connection refused"))
		Expect(reply.ToolUsed).To(BeEmpty())
		Expect(session.HistoryLen()).To(BeZero())
	})

	It("clears history and accepts new messages afterwards", func() {
		session := newSession(echoInvoker("ok"))
		session.ProcessMessage(ctx, "one")
		session.ProcessMessage(ctx, "two")

		session.ClearHistory()
		Expect(session.HistoryLen()).To(BeZero())

		session.ProcessMessage(ctx, "three")
		Expect(session.HistoryLen()).To(Equal(2))
	})

	It("publishes a reply event per processed message", func() {
		publisher := &capturingPublisher{}
		session := newSession(echoInvoker("Hello!"), agent.WithPublisher(publisher))

		session.ProcessMessage(ctx, "hi")

		Expect(publisher.events).To(HaveLen(1))
		event := publisher.events[0]
		Expect(event.EventType).To(Equal(eventstream.EventTypeReplyProcessed))
		Expect(event.SchemaVersion).To(Equal(eventstream.SchemaVersionV1))
		Expect(event.EventID).NotTo(BeEmpty())
		Expect(event.RequestID).NotTo(BeEmpty())
		Expect(event.Message).To(Equal("hi"))
		Expect(event.Reply.Response).To(Equal("Hello!"))
	})

	It("still replies when the publisher fails", func() {
		failing := &failingPublisher{}
		session := newSession(echoInvoker("Hello!"), agent.WithPublisher(failing))

		reply := session.ProcessMessage(ctx, "hi")
		Expect(reply.Response).To(Equal("Hello!"))
		Expect(session.HistoryLen()).To(Equal(2))
	})
})

type failingPublisher struct{}

func (failingPublisher) PublishReply(context.Context, *eventstream.ReplyProcessedEvent) error {
	return errors.New("broker unavailable")
}

func (failingPublisher) Close() error { return nil }
