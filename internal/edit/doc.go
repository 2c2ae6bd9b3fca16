// Package edit provides the invertible commands that mutate a timeline and
// its media library.
//
// Every constructor validates its arguments against the current model and
// returns a *history.ValidationError before anything changes. A command that
// was constructed successfully replays unconditionally: Do and Undo never
// fail, and Undo restores removed objects at their original positions.
// Constructors assume the command is executed right away; building several
// commands against the same state and executing them later is not supported.
package edit
