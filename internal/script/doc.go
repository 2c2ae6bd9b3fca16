// Package script replays YAML edit scripts against a project.
//
// A script is an ordered list of steps. Each step names an operation (op) and
// the fields it needs; references to tracks, clips, effects, media items and
// bins accept either an id or a name. Every step is built through the
// validating constructors in package edit and executed on a history.Stack, so
// a script run can be undone one step at a time and may itself contain undo
// and redo steps.
//
// The first step that fails stops the run. Steps before it stay applied and
// the returned *StepError carries the 1-based step number.
package script
