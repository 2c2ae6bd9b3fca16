// Package textutil provides name handling shared by the media library, the
// edit commands, and the CLI.
//
// Names typed by users are compared case-insensitively with Unicode case
// folding, display names are derived from file paths with title casing, and
// project names are turned into safe file names for exports.
package textutil
