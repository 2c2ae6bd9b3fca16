// Package preflight provides readiness checks for the directories, the
// project store, and the external programs reel depends on.
//
// The CLI "reel doctor" command runs RunAll and prints one line per check.
// Checks marked Optional report problems without failing the command:
// a missing ffprobe only disables probing on import, and offline media
// still load and sample.
package preflight
