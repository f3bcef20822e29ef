// Package application drives one article breakdown end to end: ask the
// planner for a numbered step list, then walk the executor through each
// step with the right context injected, stopping at the first failure.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"breakdown/internal/ports"
)

// Status is the run state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusPlanning
	StatusExecuting
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlanning:
		return "planning"
	case StatusExecuting:
		return "executing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunResult summarizes one orchestration run.
type RunResult struct {
	Article    string
	Folder     string
	Plan       []string
	StepsRun   int
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
}

// Pipeline is the orchestration loop. It owns no state between runs; the
// change detector decides what runs and records what completed.
type Pipeline struct {
	planner  ports.Planner
	executor ports.Executor
	log      *slog.Logger
}

// NewPipeline wires the two capabilities together.
func NewPipeline(planner ports.Planner, executor ports.Executor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{planner: planner, executor: executor, log: log}
}

// Run breaks down one article. The article is read directly (the vault is
// local), its content is handed to the planner, and each parsed step is
// dispatched to the executor with a per-step cancellation context. The
// first step failure fails the whole run; steps are not retried. A future
// change to the file starts a fresh run.
func (p *Pipeline) Run(ctx context.Context, articlePath string) (*RunResult, error) {
	res := &RunResult{
		Article:   articlePath,
		Status:    StatusIdle,
		StartedAt: time.Now(),
	}

	content, err := os.ReadFile(articlePath)
	if err != nil {
		res.Status = StatusFailed
		res.FinishedAt = time.Now()
		return res, fmt.Errorf("reading article: %w", err)
	}
	article := string(content)

	title := strings.TrimSuffix(filepath.Base(articlePath), filepath.Ext(articlePath))
	res.Folder = title + "-Breakdown"

	res.Status = StatusPlanning
	p.log.Info("requesting plan", "article", articlePath)

	task := fmt.Sprintf("User request: Break down the article located at %s\n\nArticle Content:\n%s",
		articlePath, article)
	planText, err := p.planner.Plan(ctx, task)
	if err != nil {
		res.Status = StatusFailed
		res.FinishedAt = time.Now()
		return res, &PlanError{Article: articlePath, Err: err}
	}

	steps := parsePlanSteps(planText)
	if len(steps) == 0 {
		res.Status = StatusFailed
		res.FinishedAt = time.Now()
		return res, &PlanError{Article: articlePath, Err: ErrEmptyPlan}
	}
	res.Plan = steps
	p.log.Info("plan ready", "steps", len(steps))

	res.Status = StatusExecuting
	for i, step := range steps {
		instruction := enrichStep(step, article, articlePath)
		p.log.Info("executing step", "n", i+1, "of", len(steps), "step", step)

		stepCtx, cancel := context.WithCancel(ctx)
		err := p.executor.Execute(stepCtx, instruction)
		cancel()
		if err != nil {
			res.Status = StatusFailed
			res.FinishedAt = time.Now()
			return res, &StepError{Step: i + 1, Instruction: step, Err: err}
		}
		res.StepsRun++
	}

	res.Status = StatusCompleted
	res.FinishedAt = time.Now()
	p.log.Info("breakdown completed", "article", articlePath, "steps", res.StepsRun)
	return res, nil
}

// enrichStep injects context into steps that need it: content-creation
// steps get the raw article text, canvas steps get the source path. The
// recognition is a best-effort substring match on the step wording, not a
// contract; unrecognized steps pass through unchanged.
func enrichStep(step, article, articlePath string) string {
	lower := strings.ToLower(step)

	switch {
	case strings.HasPrefix(lower, "create summary file"),
		strings.HasPrefix(lower, "create section file"),
		strings.HasPrefix(lower, "create subsection file"):
		return fmt.Sprintf("%s. Use this content:\n\n%s\nOriginal article path for linking: %s",
			step, article, articlePath)

	case strings.Contains(lower, "canvas"):
		return fmt.Sprintf("%s\nOriginal article path for canvas node: %s", step, articlePath)

	default:
		return step
	}
}

// parsePlanSteps extracts numbered instructions from plan text; lines not
// starting with digits and a period are ignored.
func parsePlanSteps(text string) []string {
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] < '0' || line[0] > '9' {
			continue
		}
		i := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i >= len(line) || line[i] != '.' {
			continue
		}
		if step := strings.TrimSpace(line[i+1:]); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}
