package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for run outcomes
var (
	ErrEmptyPlan = errors.New("planner produced no usable steps")
	ErrRunFailed = errors.New("breakdown run failed")
)

// PlanError wraps a failure to obtain a plan for an article.
type PlanError struct {
	Article string
	Err     error
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("planning breakdown of %s: %v", e.Article, e.Err)
}

func (e *PlanError) Unwrap() error { return e.Err }

func (e *PlanError) Is(target error) bool { return target == ErrRunFailed }

// StepError wraps a failure while executing one plan step. Remaining steps
// are abandoned; the item stays unmarked so a future change can retry it.
type StepError struct {
	Step        int
	Instruction string
	Err         error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing step %d (%s): %v", e.Step, e.Instruction, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) Is(target error) bool { return target == ErrRunFailed }
