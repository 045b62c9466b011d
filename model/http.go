package model

type ScaleRequestBody struct {
	Root string `json:"root"`
	Type string `json:"type"`
}

type ProgressionRequestBody struct {
	Name string `json:"name"`
}

type AutoplayRequestBody struct {
	IntervalMs int `json:"interval_ms"`
}

type DemoResponse struct {
	Events int  `json:"events"`
	Config bool `json:"config"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type SoundingResponse struct {
	Sounding Notes `json:"sounding"`
}

type ChordsResponse struct {
	Sounding Notes            `json:"sounding"`
	Chords   []ChordMatch     `json:"chords"`
	Detected map[string]Notes `json:"detected"`
}

type AutoplayResponse struct {
	Running    bool              `json:"running"`
	IntervalMs int               `json:"interval_ms"`
	Chord      *ProgressionChord `json:"chord"`
}
