// Package tools defines the tool contract and the registry the agent loop
// dispatches against.
package tools

import "context"

// Spec describes a tool to the model: its name, a one-line description, and
// a JSON schema for its arguments.
type Spec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Tool is a named capability the model can invoke with JSON arguments.
//
// Execute returns the textual output fed back to the model. Implementations
// fold recoverable failures into that text ("Error: ...") instead of
// returning an error, so one bad call never aborts the surrounding turn; an
// error return is reserved for failures the tool cannot describe.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}
