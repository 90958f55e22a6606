// Package agent owns the chat session: the bounded conversation history,
// the reply classifier, and the facade that drives one model invocation per
// incoming message.
package agent

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/inletlabs/attache/pkg/llm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FallbackResponse is substituted when no assistant turn produced any text.
const FallbackResponse = "I apologize, but I couldn't process your request."

// Classify reduces the turn sequence produced by one agent invocation to a
// single ProcessedReply. Pure function of its input.
//
// The scan rules mirror the external contract exactly:
//   - the last tool call seen in forward order sets ToolUsed and Thinking,
//   - the last tool turn's content sets ToolOutput,
//   - the last non-empty assistant content sets Response, whether or not
//     that turn also carried tool calls,
//   - failing that, a reverse scan takes the first non-empty assistant
//     content, and failing that too, Response is FallbackResponse.
func Classify(turns []llm.Turn) llm.ProcessedReply {
	var reply llm.ProcessedReply

	for _, turn := range turns {
		switch turn.Role {
		case llm.RoleAssistant:
			if turn.HasToolCalls() {
				call := turn.ToolCalls[len(turn.ToolCalls)-1]
				reply.ToolUsed = call.Name
				reply.Thinking = fmt.Sprintf("Decided to use '%s' with input: %s", call.Name, formatArguments(call.Arguments))
			}
			if turn.Content != "" {
				reply.Response = turn.Content
			}
		case llm.RoleTool:
			reply.ToolOutput = turn.Content
		}
	}

	if reply.Response == "" {
		for i := len(turns) - 1; i >= 0; i-- {
			if turns[i].Role == llm.RoleAssistant && turns[i].Content != "" {
				reply.Response = turns[i].Content
				break
			}
		}
	}

	if reply.Response == "" {
		reply.Response = FallbackResponse
	}

	return reply
}

// formatArguments renders tool arguments compactly. Map keys come out
// sorted, so the rendering is deterministic.
func formatArguments(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	encoded, err := json.MarshalToString(args)
	if err != nil {
		return fmt.Sprintf("%v", args)
	}
	return encoded
}
