package llm

// ProcessedReply is the classified outcome of one agent invocation, shaped
// for the chat API response body.
type ProcessedReply struct {
	Response   string `json:"response"`
	ToolUsed   string `json:"tool_used,omitempty"`
	ToolOutput string `json:"tool_output,omitempty"`
	Thinking   string `json:"thinking,omitempty"`
}
