package model

// Triad qualities as reported per scale degree.
const (
	QualityMajor      = ""
	QualityMinor      = "m"
	QualityDiminished = "dim"
	QualityAugmented  = "aug"
)

type Notes = []string

// ChordMatch is one chord found inside a set of sounding notes.
type ChordMatch struct {
	Root   string `json:"root"`
	Suffix string `json:"suffix"`
	Notes  Notes  `json:"notes"`
}

func (c ChordMatch) Name() string {
	return c.Root + c.Suffix
}

type DegreeChord struct {
	Degree  int    `json:"degree"`
	Note    string `json:"note"`
	Quality string `json:"quality"`
}

// ProgressionChord is the chord under a progression cursor.
type ProgressionChord struct {
	Progression string `json:"progression"`
	Degree      int    `json:"degree"`
	Root        string `json:"root"`
	Quality     string `json:"quality"`
	Numeral     string `json:"numeral"`
	Step        int    `json:"step"`
	StepCount   int    `json:"step_count"`
	Label       string `json:"label"`
}

func (c ProgressionChord) Name() string {
	return c.Root + c.Quality
}
