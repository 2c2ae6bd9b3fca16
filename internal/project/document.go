package project

import "reel/internal/keyframe"

// FormatVersion is written to every document. Decode rejects newer versions.
const FormatVersion = 1

// Document is the serialized form of a Project.
type Document struct {
	Version   int             `json:"version"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	FrameRate float64         `json:"frame_rate"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Tracks    []TrackRecord   `json:"tracks"`
	Markers   []MarkerRecord  `json:"markers,omitempty"`
	Overlays  []OverlayRecord `json:"overlays,omitempty"`
	Library   LibraryRecord   `json:"library"`
}

// TrackRecord mirrors timeline.Track.
type TrackRecord struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"`
	Name        string             `json:"name"`
	Volume      float64            `json:"volume"`
	Pan         float64            `json:"pan"`
	Muted       bool               `json:"muted,omitempty"`
	Locked      bool               `json:"locked,omitempty"`
	Hidden      bool               `json:"hidden,omitempty"`
	Clips       []ClipRecord       `json:"clips"`
	Transitions []TransitionRecord `json:"transitions,omitempty"`
}

// ClipRecord mirrors timeline.Clip.
type ClipRecord struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	MediaID        string         `json:"media_id,omitempty"`
	Start          int64          `json:"start"`
	End            int64          `json:"end"`
	SourceIn       int64          `json:"source_in"`
	SourceOut      int64          `json:"source_out"`
	SourceDuration int64          `json:"source_duration"`
	FrameRate      float64        `json:"frame_rate"`
	LinkedClipID   string         `json:"linked_clip_id,omitempty"`
	Effects        []EffectRecord `json:"effects,omitempty"`
	Grade          *GradeRecord   `json:"grade,omitempty"`
}

// EffectRecord mirrors timeline.Effect. Keyframe tracks are listed in
// parameter declaration order.
type EffectRecord struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Enabled    bool                  `json:"enabled"`
	Parameters []ParameterRecord     `json:"parameters,omitempty"`
	Animation  []KeyframeTrackRecord `json:"animation,omitempty"`
}

// ParameterRecord is one static effect parameter.
type ParameterRecord struct {
	Name  string         `json:"name"`
	Value keyframe.Value `json:"value"`
}

// KeyframeTrackRecord holds the keyframes bound to one parameter.
type KeyframeTrackRecord struct {
	Parameter string           `json:"parameter"`
	Keyframes []KeyframeRecord `json:"keyframes"`
}

// KeyframeRecord mirrors keyframe.Keyframe.
type KeyframeRecord struct {
	Frame   int64                 `json:"frame"`
	Value   keyframe.Value        `json:"value"`
	Mode    keyframe.Mode         `json:"mode"`
	EaseIn  keyframe.ControlPoint `json:"ease_in"`
	EaseOut keyframe.ControlPoint `json:"ease_out"`
}

// GradeRecord mirrors timeline.ColorGrade with hex colors.
type GradeRecord struct {
	Exposure    float64 `json:"exposure"`
	Contrast    float64 `json:"contrast"`
	Saturation  float64 `json:"saturation"`
	Temperature float64 `json:"temperature"`
	Tint        float64 `json:"tint"`
	Lift        string  `json:"lift"`
	Gamma       string  `json:"gamma"`
	Gain        string  `json:"gain"`
}

// TransitionRecord mirrors timeline.Transition.
type TransitionRecord struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	FromClipID     string `json:"from_clip_id"`
	ToClipID       string `json:"to_clip_id"`
	DurationFrames int64  `json:"duration_frames"`
}

// MarkerRecord mirrors timeline.Marker.
type MarkerRecord struct {
	ID    string `json:"id"`
	Frame int64  `json:"frame"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Note  string `json:"note,omitempty"`
}

// OverlayRecord mirrors timeline.TextOverlay.
type OverlayRecord struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	StartFrame int64   `json:"start_frame"`
	EndFrame   int64   `json:"end_frame"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FontSize   float64 `json:"font_size"`
	Color      string  `json:"color"`
}

// LibraryRecord mirrors media.Library. The system bin is implicit; only its
// id is kept.
type LibraryRecord struct {
	SystemBinID string       `json:"system_bin_id"`
	Items       []ItemRecord `json:"items,omitempty"`
	Bins        []BinRecord  `json:"bins,omitempty"`
}

// ItemRecord mirrors media.Item.
type ItemRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Path           string  `json:"path"`
	Kind           string  `json:"kind"`
	DurationFrames int64   `json:"duration_frames"`
	FrameRate      float64 `json:"frame_rate,omitempty"`
}

// BinRecord mirrors a user bin.
type BinRecord struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []string `json:"items,omitempty"`
}
