package timeline

// Transition blends the end of one clip into the start of another on the same
// track. Clip references are ids; a transition survives the removal of either
// clip until it is removed explicitly.
type Transition struct {
	ID             string
	Kind           string
	FromClipID     string
	ToClipID       string
	DurationFrames int64
}

// Marker is a named point on the timeline.
type Marker struct {
	ID    string
	Frame int64
	Name  string
	Color Color
	Note  string
}

// TextOverlay is a title card drawn over every track between StartFrame and
// EndFrame. X and Y are normalized [0,1] canvas coordinates.
type TextOverlay struct {
	ID         string
	Text       string
	StartFrame int64
	EndFrame   int64
	X          float64
	Y          float64
	FontSize   float64
	Color      Color
}
