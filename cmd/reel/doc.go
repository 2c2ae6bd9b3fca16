// Command reel manages timeline projects stored in the local project store.
//
// Projects are created with "reel project new", edited by replaying YAML edit
// scripts with "reel apply", and inspected with "reel project show",
// "reel sample" and "reel eval". Every apply saves a new revision; "reel
// project history" lists them.
//
// "reel import" probes source files with ffprobe before adding them to a
// project's media library. "reel doctor" checks the data directories, the
// store and the external tools.
package main
