// Package project ties a timeline and its media library into one editable
// unit and defines the serialized Document form used for persistence and
// export.
//
// # Key Types
//
// Project: the live model (Timeline plus Library) with its id, name, and
// canvas size.
//
// Document: plain records mirroring tracks, clips, effects, keyframes,
// transitions, markers, overlays, and bins. Frames are integers, colors hex
// strings, and keyframe values boxed as {"type", "value"} pairs with decimals
// carried as strings. Linked clips serialize as an id only.
//
// # Entry Points
//
// Encode/Decode convert between Project and Document. Marshal/Unmarshal add
// the JSON step. Encoding is deterministic, so two projects in the same state
// marshal to identical bytes.
package project
