package workspace

// WorkspaceRecord is one workspace document: a named board of avatars.
type WorkspaceRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Avatars []AvatarRecord `json:"avatars"`
}

// AvatarRecord is a positioned, styled view of a card inside a workspace.
type AvatarRecord struct {
	Geometry  Geometry  `json:"geometry"`
	Style     Style     `json:"style"`
	Condition Condition `json:"condition"`
	Date      Date      `json:"date"`
	ID        string    `json:"id"`
}

// Geometry places an avatar on the desktop.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Style holds the visual attributes of an avatar.
type Style struct {
	UIColor         string  `json:"uiColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Opacity         float64 `json:"opacity"`
	Zoom            float64 `json:"zoom"`
}

// Condition holds avatar flags.
type Condition struct {
	Locked bool `json:"locked"`
}

// Date holds avatar timestamps as stored strings.
type Date struct {
	CreatedDate  string `json:"createdDate"`
	ModifiedDate string `json:"modifiedDate"`
}
