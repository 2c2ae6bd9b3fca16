package history

import (
	"log/slog"

	"reel/internal/logging"
)

// State is a snapshot of the stack published to subscribers.
type State struct {
	CanUndo         bool
	CanRedo         bool
	UndoDescription string
	RedoDescription string
	UndoDepth       int
	RedoDepth       int
}

// Option configures a Stack.
type Option func(*Stack)

// WithLimit caps the undo depth. Zero or negative means unlimited.
func WithLimit(limit int) Option {
	return func(s *Stack) {
		if limit < 0 {
			limit = 0
		}
		s.limit = limit
	}
}

// WithLogger sets the logger used to trace applied commands.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stack) {
		s.logger = logging.NewComponentLogger(logger, "history")
	}
}

// Stack holds applied commands (undo) and undone commands (redo).
type Stack struct {
	undo   []Command
	redo   []Command
	limit  int
	logger *slog.Logger

	listeners []func(State)
}

// NewStack returns an empty stack.
func NewStack(opts ...Option) *Stack {
	s := &Stack{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute applies cmd, pushes it on the undo stack, and clears the redo stack.
func (s *Stack) Execute(cmd Command) {
	if cmd == nil {
		return
	}
	cmd.Do()
	s.undo = append(s.undo, cmd)
	s.redo = nil
	if s.limit > 0 && len(s.undo) > s.limit {
		dropped := len(s.undo) - s.limit
		clear(s.undo[:dropped])
		s.undo = s.undo[dropped:]
	}
	s.logger.Debug("command executed",
		logging.Command(cmd.Description()),
		logging.Int("undo_depth", len(s.undo)),
	)
	s.publish()
}

// Undo reverts the most recent applied command and returns its description.
// ok is false when there is nothing to undo.
func (s *Stack) Undo() (string, bool) {
	n := len(s.undo)
	if n == 0 {
		return "", false
	}
	cmd := s.undo[n-1]
	s.undo[n-1] = nil
	s.undo = s.undo[:n-1]
	cmd.Undo()
	s.redo = append(s.redo, cmd)
	s.logger.Debug("command undone", logging.Command(cmd.Description()))
	s.publish()
	return cmd.Description(), true
}

// Redo reapplies the most recently undone command and returns its
// description. ok is false when there is nothing to redo.
func (s *Stack) Redo() (string, bool) {
	n := len(s.redo)
	if n == 0 {
		return "", false
	}
	cmd := s.redo[n-1]
	s.redo[n-1] = nil
	s.redo = s.redo[:n-1]
	cmd.Do()
	s.undo = append(s.undo, cmd)
	s.logger.Debug("command redone", logging.Command(cmd.Description()))
	s.publish()
	return cmd.Description(), true
}

// Clear drops both stacks without replaying anything.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.publish()
}

func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Len returns the number of applied commands.
func (s *Stack) Len() int { return len(s.undo) }

// UndoDescription describes the command Undo would revert, or "".
func (s *Stack) UndoDescription() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Description()
}

// RedoDescription describes the command Redo would reapply, or "".
func (s *Stack) RedoDescription() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Description()
}

// UndoHistory lists applied command descriptions, oldest first.
func (s *Stack) UndoHistory() []string {
	out := make([]string, len(s.undo))
	for i, cmd := range s.undo {
		out[i] = cmd.Description()
	}
	return out
}

// State returns the current snapshot.
func (s *Stack) State() State {
	return State{
		CanUndo:         s.CanUndo(),
		CanRedo:         s.CanRedo(),
		UndoDescription: s.UndoDescription(),
		RedoDescription: s.RedoDescription(),
		UndoDepth:       len(s.undo),
		RedoDepth:       len(s.redo),
	}
}

// Subscribe registers fn to receive the state after every transition.
func (s *Stack) Subscribe(fn func(State)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *Stack) publish() {
	if len(s.listeners) == 0 {
		return
	}
	state := s.State()
	for _, fn := range s.listeners {
		fn(state)
	}
}
