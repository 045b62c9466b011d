package model

type ScaleState struct {
	Root        string  `json:"root"`
	Type        string  `json:"type"`
	Notes       Notes   `json:"notes"`
	RelativeKey string  `json:"relative_key"`
	ParentMajor *string `json:"parent_major"`
}

// Display holds presentation flags a sequence may toggle.
type Display struct {
	Temperament     string `json:"temperament"`
	Fifths          bool   `json:"fifths"`
	ChromaticColors bool   `json:"chromatic_colors"`
}

// State is what the visualization reads each frame.
type State struct {
	SessionId   string            `json:"session_id"`
	Scale       ScaleState        `json:"scale"`
	Display     Display           `json:"display"`
	Sounding    Notes             `json:"sounding"`
	Chords      []ChordMatch      `json:"chords"`
	Progression *ProgressionChord `json:"progression"`
}
