// Package agent runs role-tagged LLM agents: a planner that turns an
// article into a numbered step list, and an executor that carries steps out
// through the tool host, bounded by tool-round and turn caps.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"breakdown/internal/ports"
)

// Role selects an agent's system prompt and capability set.
type Role int

const (
	RolePlanner Role = iota
	RoleExecutor
)

func (r Role) String() string {
	switch r {
	case RolePlanner:
		return "planner"
	case RoleExecutor:
		return "executor"
	default:
		return "unknown"
	}
}

// Limit errors force a bounded outcome instead of a silent hang.
var (
	// ErrToolRoundLimit is returned when a single task exceeds the cap on
	// consecutive tool-use rounds.
	ErrToolRoundLimit = errors.New("tool round limit reached")
	// ErrTurnLimit is returned when an agent exceeds its conversational
	// turn cap.
	ErrTurnLimit = errors.New("turn limit reached")
)

const (
	defaultMaxToolRounds = 15
	defaultMaxTurns      = 40
)

// Agent is a single role with its capability set. A planner has no tools;
// an executor dispatches tool invocations parsed from model output.
type Agent struct {
	role          Role
	system        string
	llm           ports.LLM
	tools         ports.ToolCaller
	maxToolRounds int
	maxTurns      int
	turns         int
	log           *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithMaxToolRounds caps consecutive tool-use rounds per task.
func WithMaxToolRounds(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxToolRounds = n
		}
	}
}

// WithMaxTurns caps conversational turns over the agent's lifetime.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// WithLogger sets the agent's logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *Agent) {
		a.log = log
	}
}

// NewPlanner creates the planning agent. It carries no tools.
func NewPlanner(llm ports.LLM, opts ...Option) *Agent {
	return newAgent(RolePlanner, plannerSystemPrompt, llm, nil, opts...)
}

// NewExecutor creates the executing agent with its tool set.
func NewExecutor(llm ports.LLM, tools ports.ToolCaller, opts ...Option) *Agent {
	return newAgent(RoleExecutor, executorSystemPrompt, llm, tools, opts...)
}

func newAgent(role Role, system string, llm ports.LLM, tools ports.ToolCaller, opts ...Option) *Agent {
	a := &Agent{
		role:          role,
		system:        system,
		llm:           llm,
		tools:         tools,
		maxToolRounds: defaultMaxToolRounds,
		maxTurns:      defaultMaxTurns,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run submits a task and drives the tool-use loop until the model produces
// a final text answer, a cap is hit, or the context is cancelled.
func (a *Agent) Run(ctx context.Context, task string) (string, error) {
	a.turns++
	if a.turns > a.maxTurns {
		return "", ErrTurnLimit
	}

	transcript := []ports.Message{{Role: "user", Content: task}}

	rounds := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		reply, err := a.llm.Complete(ctx, a.system, transcript)
		if err != nil {
			return "", fmt.Errorf("%s completion: %w", a.role, err)
		}

		call, ok := parseToolCall(reply)
		if !ok || a.tools == nil {
			return strings.TrimSpace(reply), nil
		}

		if rounds >= a.maxToolRounds {
			a.log.Warn("tool round limit reached", "role", a.role.String(), "rounds", rounds)
			return "", ErrToolRoundLimit
		}
		rounds++

		transcript = append(transcript, ports.Message{Role: "assistant", Content: reply})

		result, err := a.tools.CallTool(ctx, call.Tool, call.Arguments)
		if err != nil {
			// Tool failures feed back into the conversation; the model
			// decides whether to retry or give up.
			result = fmt.Sprintf("tool %s failed: %v", call.Tool, err)
			a.log.Warn("tool call failed", "tool", call.Tool, "error", err)
		}
		transcript = append(transcript, ports.Message{
			Role:    "tool",
			Content: fmt.Sprintf("Result of %s:\n%s", call.Tool, result),
		})
	}
}

// Plan implements ports.Planner.
func (a *Agent) Plan(ctx context.Context, task string) (string, error) {
	return a.Run(ctx, task)
}

// Execute implements ports.Executor.
func (a *Agent) Execute(ctx context.Context, instruction string) error {
	_, err := a.Run(ctx, instruction)
	return err
}

// toolCall is the invocation shape the executor prompt asks the model for.
type toolCall struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// parseToolCall extracts a tool invocation from model output. The model may
// wrap the JSON in a code fence or surround it with prose; anything without
// a well-formed {"tool": ...} object is treated as a final answer.
func parseToolCall(reply string) (toolCall, bool) {
	text := strings.TrimSpace(reply)
	if matches := codeBlockRe.FindStringSubmatch(text); len(matches) > 1 {
		text = strings.TrimSpace(matches[1])
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return toolCall{}, false
	}

	var call toolCall
	if err := json.Unmarshal([]byte(text[start:end+1]), &call); err != nil {
		return toolCall{}, false
	}
	if call.Tool == "" {
		return toolCall{}, false
	}
	return call, true
}
