// Package claudecli implements the LLM port by shelling out to the Claude
// Code CLI in non-interactive JSON mode.
package claudecli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"breakdown/internal/ports"
)

// Client implements ports.LLM using the claude CLI.
type Client struct {
	model string
}

// Option configures the Client.
type Option func(*Client)

// WithModel sets the Claude model to use.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a new Claude CLI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		model: "sonnet",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// claudeResponse represents the JSON envelope from the claude CLI.
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMS   int     `json:"duration_ms"`
	DurationAPI  int     `json:"duration_api_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Complete runs one completion. The transcript is flattened into a single
// prompt; the CLI holds no session state between calls.
func (c *Client) Complete(ctx context.Context, system string, transcript []ports.Message) (string, error) {
	args := []string{
		"-p", flattenTranscript(transcript),
		"--output-format", "json",
		"--model", c.model,
	}
	if system != "" {
		args = append(args, "--system-prompt", system)
	}

	cmd := exec.CommandContext(ctx, "claude", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("claude CLI error: %w", err)
	}

	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", fmt.Errorf("failed to parse claude response: %w", err)
	}
	if response.IsError {
		return "", fmt.Errorf("claude returned an error: %s", response.Result)
	}

	return response.Result, nil
}

// flattenTranscript renders the conversation as labeled blocks. Tool
// results are framed so the model treats them as observations, not user
// input.
func flattenTranscript(transcript []ports.Message) string {
	if len(transcript) == 1 && transcript[0].Role == "user" {
		return transcript[0].Content
	}

	var sb strings.Builder
	for i, msg := range transcript {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.Role {
		case "assistant":
			sb.WriteString("[Your previous reply]\n")
		case "tool":
			sb.WriteString("[Tool result]\n")
		default:
			sb.WriteString("[User]\n")
		}
		sb.WriteString(msg.Content)
	}
	sb.WriteString("\n\nContinue from the tool results above.")
	return sb.String()
}

// IsAvailable checks if the claude CLI is installed and accessible.
func (c *Client) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}
