package history_test

import (
	"errors"
	"fmt"
	"testing"

	"reel/internal/history"
)

// counter is a tiny model: a list of applied labels.
type counter struct {
	log []string
}

func (c *counter) push(label string) history.Command {
	return history.Func("push "+label,
		func() { c.log = append(c.log, label) },
		func() { c.log = c.log[:len(c.log)-1] },
	)
}

func (c *counter) state() string { return fmt.Sprint(c.log) }

func TestUndoRedoOnEmptyStack(t *testing.T) {
	s := history.NewStack()
	if desc, ok := s.Undo(); ok || desc != "" {
		t.Fatalf("Undo on empty stack = %q, %v", desc, ok)
	}
	if desc, ok := s.Redo(); ok || desc != "" {
		t.Fatalf("Redo on empty stack = %q, %v", desc, ok)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("empty stack reports available history")
	}
}

func TestExecuteUndoRedo(t *testing.T) {
	model := &counter{}
	s := history.NewStack()

	s.Execute(model.push("a"))
	s.Execute(model.push("b"))
	if model.state() != "[a b]" || s.UndoDescription() != "push b" {
		t.Fatalf("after execute: %s / %q", model.state(), s.UndoDescription())
	}

	desc, ok := s.Undo()
	if !ok || desc != "push b" || model.state() != "[a]" {
		t.Fatalf("undo = %q %v, model %s", desc, ok, model.state())
	}
	if !s.CanRedo() || s.RedoDescription() != "push b" {
		t.Fatal("undone command should be on the redo stack")
	}

	desc, ok = s.Redo()
	if !ok || desc != "push b" || model.state() != "[a b]" {
		t.Fatalf("redo = %q %v, model %s", desc, ok, model.state())
	}
	if s.CanRedo() {
		t.Fatal("redone command must leave the redo stack")
	}
}

func TestExecuteClearsRedo(t *testing.T) {
	model := &counter{}
	s := history.NewStack()
	s.Execute(model.push("a"))
	s.Execute(model.push("b"))
	s.Undo()
	s.Execute(model.push("c"))

	if s.CanRedo() {
		t.Fatal("new edit must invalidate the redo stack")
	}
	if model.state() != "[a c]" {
		t.Fatalf("model = %s", model.state())
	}
	if got := s.UndoHistory(); len(got) != 2 || got[0] != "push a" || got[1] != "push c" {
		t.Fatalf("history = %v", got)
	}
}

func TestUndoAllRestoresInitialState(t *testing.T) {
	model := &counter{}
	s := history.NewStack()
	for i := range 10 {
		s.Execute(model.push(fmt.Sprint(i)))
	}
	for s.CanUndo() {
		s.Undo()
	}
	if len(model.log) != 0 {
		t.Fatalf("model not restored: %s", model.state())
	}
	for s.CanRedo() {
		s.Redo()
	}
	if len(model.log) != 10 || model.log[9] != "9" {
		t.Fatalf("redo all = %s", model.state())
	}
}

func TestClearDoesNotReplay(t *testing.T) {
	model := &counter{}
	s := history.NewStack()
	s.Execute(model.push("a"))
	s.Execute(model.push("b"))
	s.Undo()
	s.Clear()
	if s.CanUndo() || s.CanRedo() || s.Len() != 0 {
		t.Fatal("Clear should empty both stacks")
	}
	if model.state() != "[a]" {
		t.Fatalf("Clear must not touch the model, got %s", model.state())
	}
}

func TestLimitDropsOldest(t *testing.T) {
	model := &counter{}
	s := history.NewStack(history.WithLimit(3))
	for _, label := range []string{"a", "b", "c", "d", "e"} {
		s.Execute(model.push(label))
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	for s.CanUndo() {
		s.Undo()
	}
	if model.state() != "[a b]" {
		t.Fatalf("only the newest three steps should be undoable, got %s", model.state())
	}
}

func TestGroupIsOneStepAndUndoesInReverse(t *testing.T) {
	var order []string
	step := func(name string) history.Command {
		return history.Func(name,
			func() { order = append(order, "do "+name) },
			func() { order = append(order, "undo "+name) },
		)
	}
	s := history.NewStack()
	s.Execute(history.Group("both", step("one"), nil, step("two")))
	if s.Len() != 1 || s.UndoDescription() != "both" {
		t.Fatalf("group should be one step, len=%d desc=%q", s.Len(), s.UndoDescription())
	}
	s.Undo()
	want := []string{"do one", "do two", "undo two", "undo one"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestSubscribeReceivesState(t *testing.T) {
	model := &counter{}
	s := history.NewStack()
	var states []history.State
	s.Subscribe(func(st history.State) { states = append(states, st) })

	s.Execute(model.push("a"))
	s.Undo()
	s.Undo() // nothing to undo: no notification

	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}
	if !states[0].CanUndo || states[0].UndoDescription != "push a" {
		t.Fatalf("unexpected state after execute: %+v", states[0])
	}
	if states[1].CanUndo || !states[1].CanRedo || states[1].RedoDepth != 1 {
		t.Fatalf("unexpected state after undo: %+v", states[1])
	}
}

func TestValidationError(t *testing.T) {
	err := history.Invalid(history.ErrDuplicateName, "rename bin", "a bin named %q already exists", "B-Roll")
	if !errors.Is(err, history.ErrDuplicateName) {
		t.Fatal("expected sentinel to unwrap")
	}
	if !history.IsValidation(fmt.Errorf("apply: %w", err)) {
		t.Fatal("expected wrapped validation error to be detected")
	}
	var ve *history.ValidationError
	if !errors.As(err, &ve) || ve.ErrorKind() != "validation" {
		t.Fatalf("unexpected error kind for %v", err)
	}
	if got := err.Error(); got != `rename bin: a bin named "B-Roll" already exists` {
		t.Fatalf("Error() = %q", got)
	}
	if history.IsValidation(errors.New("disk full")) {
		t.Fatal("plain errors are not validation errors")
	}
}
