package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"breakdown/internal/ports"
)

// scriptedLLM replies with a fixed sequence of completions.
type scriptedLLM struct {
	replies []string
	calls   int
}

func (s *scriptedLLM) Complete(_ context.Context, _ string, _ []ports.Message) (string, error) {
	if s.calls >= len(s.replies) {
		return "done", nil
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

// recordingTools records tool invocations and returns canned results.
type recordingTools struct {
	calls []string
	fail  bool
}

func (r *recordingTools) CallTool(_ context.Context, name string, _ map[string]any) (string, error) {
	r.calls = append(r.calls, name)
	if r.fail {
		return "", errors.New("boom")
	}
	return "ok", nil
}

func (r *recordingTools) Close() error { return nil }

func TestAgentRun(t *testing.T) {
	t.Run("plain reply finishes immediately", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{"Summary created."}}
		a := NewExecutor(llm, &recordingTools{})

		out, err := a.Run(context.Background(), "do something")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "Summary created." {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("tool invocations are dispatched then the loop finishes", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{
			`{"tool": "create_folder", "arguments": {"path": "X-Breakdown"}}`,
			"```json\n{\"tool\": \"write_file\", \"arguments\": {\"path\": \"X-Breakdown/00-Summary.md\", \"content\": \"hi\"}}\n```",
			"All files written.",
		}}
		tools := &recordingTools{}
		a := NewExecutor(llm, tools)

		out, err := a.Run(context.Background(), "create the breakdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "All files written." {
			t.Errorf("unexpected output %q", out)
		}
		if len(tools.calls) != 2 || tools.calls[0] != "create_folder" || tools.calls[1] != "write_file" {
			t.Errorf("unexpected tool calls: %v", tools.calls)
		}
	})

	t.Run("tool failure is fed back, not fatal", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{
			`{"tool": "write_file", "arguments": {"path": "p", "content": "c"}}`,
			"could not write, giving up",
		}}
		a := NewExecutor(llm, &recordingTools{fail: true})

		out, err := a.Run(context.Background(), "write it")
		if err != nil {
			t.Fatalf("tool failure should not abort the run: %v", err)
		}
		if out == "" {
			t.Error("expected a final reply after tool failure")
		}
	})

	t.Run("tool round cap forces a limit-reached outcome", func(t *testing.T) {
		replies := make([]string, 10)
		for i := range replies {
			replies[i] = fmt.Sprintf(`{"tool": "read_file", "arguments": {"path": "f%d"}}`, i)
		}
		a := NewExecutor(&scriptedLLM{replies: replies}, &recordingTools{}, WithMaxToolRounds(3))

		_, err := a.Run(context.Background(), "loop forever")
		if !errors.Is(err, ErrToolRoundLimit) {
			t.Fatalf("expected ErrToolRoundLimit, got %v", err)
		}
	})

	t.Run("turn cap bounds interactive sessions", func(t *testing.T) {
		a := NewPlanner(&scriptedLLM{}, WithMaxTurns(2))
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			if _, err := a.Run(ctx, "turn"); err != nil {
				t.Fatalf("turn %d failed: %v", i+1, err)
			}
		}
		if _, err := a.Run(ctx, "one too many"); !errors.Is(err, ErrTurnLimit) {
			t.Fatalf("expected ErrTurnLimit, got %v", err)
		}
	})

	t.Run("planner ignores tool-shaped replies", func(t *testing.T) {
		llm := &scriptedLLM{replies: []string{`{"tool": "read_file", "arguments": {}}`}}
		a := NewPlanner(llm)

		out, err := a.Run(context.Background(), "plan")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == "" {
			t.Error("planner should return the raw reply")
		}
	})
}

func TestParseToolCall(t *testing.T) {
	t.Run("extracts JSON surrounded by prose", func(t *testing.T) {
		call, ok := parseToolCall(`I'll read the file now. {"tool": "read_file", "arguments": {"path": "a.md"}}`)
		if !ok {
			t.Fatal("expected a tool call")
		}
		if call.Tool != "read_file" || call.Arguments["path"] != "a.md" {
			t.Errorf("unexpected call: %+v", call)
		}
	})

	t.Run("rejects malformed and tool-less JSON", func(t *testing.T) {
		for _, text := range []string{
			"plain text answer",
			`{"tool": }`,
			`{"arguments": {"path": "a"}}`,
			"",
		} {
			if _, ok := parseToolCall(text); ok {
				t.Errorf("expected no tool call for %q", text)
			}
		}
	})
}
