// Package keyframe implements per-parameter animation: the tagged Value union,
// sorted keyframe tracks, and the pure interpolation engine that answers
// "what is this parameter's value at frame F".
//
// Evaluation never mutates a Track and holds no state between calls, so a
// preview or export path may evaluate concurrently with other readers as long
// as nothing mutates the Track at the same time. Mutation must be serialized
// by the caller.
//
// Blending is type-directed: matching float, int, and decimal pairs blend
// linearly (ints truncate after the multiply); every other pairing steps from
// the earlier value to the later one at the 0.5 mark.
package keyframe
