package ports

import "context"

// Message is one turn of an agent conversation.
type Message struct {
	Role    string // "user", "assistant", or "tool"
	Content string
}

// LLM defines the interface to a language-model completion backend.
// Implementations format and transport the request however they like; the
// agent layer only sees text in and text out.
type LLM interface {
	// Complete returns the model's reply to the transcript under the given
	// system prompt.
	Complete(ctx context.Context, system string, transcript []Message) (string, error)
}

// ToolCaller invokes named operations on the tool host. Every call is
// treated as potentially failing; callers record the failure text rather
// than crashing.
type ToolCaller interface {
	// CallTool runs the named tool with structured arguments and returns
	// its text result.
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)

	// Close tears down the connection to the tool host.
	Close() error
}

// Planner produces a numbered, newline-delimited step list for a task.
type Planner interface {
	Plan(ctx context.Context, task string) (string, error)
}

// Executor carries out a single natural-language instruction, driving the
// tool host as needed.
type Executor interface {
	Execute(ctx context.Context, instruction string) error
}
