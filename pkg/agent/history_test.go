package agent_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inletlabs/attache/pkg/agent"
	"github.com/inletlabs/attache/pkg/llm"
)

var _ = Describe("History", func() {
	It("starts empty", func() {
		history := agent.NewHistory(agent.DefaultHistoryCap)
		Expect(history.Len()).To(BeZero())
		Expect(history.Snapshot()).To(BeEmpty())
	})

	It("appends user/assistant pairs in order", func() {
		history := agent.NewHistory(agent.DefaultHistoryCap)
		history.AppendExchange("question", "answer")

		turns := history.Snapshot()
		Expect(turns).To(HaveLen(2))
		Expect(turns[0].Role).To(Equal(llm.RoleUser))
		Expect(turns[0].Content).To(Equal("question"))
		Expect(turns[1].Role).To(Equal(llm.RoleAssistant))
		Expect(turns[1].Content).To(Equal("answer"))
	})

	It("evicts the oldest turns past the cap", func() {
		history := agent.NewHistory(agent.DefaultHistoryCap)
		for i := 0; i < 15; i++ {
			history.AppendExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}

		Expect(history.Len()).To(Equal(agent.DefaultHistoryCap))

		turns := history.Snapshot()
		Expect(turns[0].Content).To(Equal("q5"))
		Expect(turns[len(turns)-1].Content).To(Equal("a14"))
	})

	It("clears to empty", func() {
		history := agent.NewHistory(agent.DefaultHistoryCap)
		history.AppendExchange("q", "a")
		history.Clear()
		Expect(history.Len()).To(BeZero())
	})

	It("returns snapshots detached from internal state", func() {
		history := agent.NewHistory(agent.DefaultHistoryCap)
		history.AppendExchange("q", "a")

		snapshot := history.Snapshot()
		snapshot[0].Content = "mutated"

		Expect(history.Snapshot()[0].Content).To(Equal("q"))
	})

	It("falls back to the default cap for non-positive caps", func() {
		history := agent.NewHistory(0)
		for i := 0; i < 30; i++ {
			history.AppendExchange("q", "a")
		}
		Expect(history.Len()).To(Equal(agent.DefaultHistoryCap))
	})
})
