package script

import (
	"context"
	"errors"
	"log/slog"

	"reel/internal/history"
	"reel/internal/logging"
	"reel/internal/project"
)

var (
	// ErrNothingToUndo marks an undo step that found the undo stack empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo marks a redo step that found the redo stack empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Result summarizes a run. Skipped counts undo and redo steps that had
// nothing to act on; they are logged and the run continues.
type Result struct {
	Applied int
	Undone  int
	Redone  int
	Skipped int
}

// Steps is the number of steps that completed.
func (r Result) Steps() int { return r.Applied + r.Undone + r.Redone }

// Runner executes scripts against one project through a command stack.
type Runner struct {
	project *project.Project
	stack   *history.Stack
	logger  *slog.Logger
}

// NewRunner returns a runner editing p through stack. A nil logger discards
// output.
func NewRunner(p *project.Project, stack *history.Stack, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		project: p,
		stack:   stack,
		logger:  logging.NewComponentLogger(logger, "script"),
	}
}

// Run applies every step of s in order. It stops at the first failing step
// and returns a *StepError; steps before it stay applied.
func (r *Runner) Run(ctx context.Context, s *Script) (Result, error) {
	var res Result
	if s == nil {
		return res, nil
	}
	logger := logging.WithContext(logging.WithProject(ctx, r.project.ID), r.logger)
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, &StepError{Step: i + 1, Op: step.Op, Err: err}
		}
		err := r.apply(step, &res)
		if errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo) {
			res.Skipped++
			logger.Warn("script step skipped",
				logging.Step(i+1, step.Op),
				logging.Error(err),
			)
			continue
		}
		if err != nil {
			logger.Warn("script step refused",
				logging.Step(i+1, step.Op),
				logging.Error(err),
			)
			return res, &StepError{Step: i + 1, Op: step.Op, Err: err}
		}
		logger.Debug("script step applied",
			logging.Step(i+1, step.Op),
			logging.String("target", stepTarget(step)),
		)
	}
	logger.Info("script applied",
		logging.StepCounts(res.Applied, res.Undone, res.Redone, res.Skipped),
	)
	return res, nil
}

func (r *Runner) apply(step Step, res *Result) error {
	switch step.Op {
	case opUndo:
		if _, ok := r.stack.Undo(); !ok {
			return ErrNothingToUndo
		}
		res.Undone++
		return nil
	case opRedo:
		if _, ok := r.stack.Redo(); !ok {
			return ErrNothingToRedo
		}
		res.Redone++
		return nil
	}
	build, ok := builders[step.Op]
	if !ok {
		return history.Invalid(history.ErrUnsupported, step.Op, "unknown op")
	}
	cmd, err := build(r.project, step)
	if err != nil {
		return err
	}
	r.stack.Execute(cmd)
	res.Applied++
	return nil
}
