// Package history implements the undo/redo command stack for project edits.
//
// A Command is an invertible, describable unit of change. Stack applies
// commands, keeps applied ones on the undo stack and undone ones on the redo
// stack, and never holds a command on both at once. Commands are validated by
// their constructors (see package edit); Do and Undo are replay operations and
// must not fail once construction has succeeded.
//
// Validation failures are reported as *ValidationError so callers can
// distinguish a refused edit from an infrastructure fault. The stack itself is
// not safe for concurrent use.
package history
