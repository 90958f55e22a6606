// Package llm defines the provider-neutral conversation model shared by the
// agent loop, the response classifier, and the HTTP layer.
package llm

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-issued request to execute a named tool. It is purely
// descriptive metadata carried inside an assistant turn.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Turn is a single message in a conversation, tagged by role. Turns are
// immutable once created; their insertion order is the chronological
// conversation. ToolCalls is populated only on assistant turns.
type Turn struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// NewUserTurn creates a user turn with the given text.
func NewUserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: text}
}

// NewAssistantTurn creates an assistant turn with the given text.
func NewAssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Content: text}
}

// NewToolTurn creates a tool turn carrying a tool's textual output.
func NewToolTurn(output string) Turn {
	return Turn{Role: RoleTool, Content: output}
}

// HasToolCalls reports whether the turn carries at least one tool call.
func (t Turn) HasToolCalls() bool {
	return len(t.ToolCalls) > 0
}
