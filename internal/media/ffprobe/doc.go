// Package ffprobe reads container metadata of source files with the ffprobe
// binary.
//
// Inspect runs ffprobe and decodes its JSON report. Describe turns a report
// into a media.Item ready for import: the media kind, the frame rate of the
// first video stream, and the duration in frames.
package ffprobe
