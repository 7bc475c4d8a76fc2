package diff

import "symdiff/core/symdiff"

// Request is the body of POST /diff. Each side is given either inline or as
// a source location (s3://bucket/object or db://table), never both.
type Request struct {
	Keys        []string         `json:"keys"`
	Left        []symdiff.Record `json:"left,omitempty"`
	Right       []symdiff.Record `json:"right,omitempty"`
	LeftSource  string           `json:"left_source,omitempty"`
	RightSource string           `json:"right_source,omitempty"`
	// Detailed adds side-tagged entries to the report.
	Detailed bool `json:"detailed,omitempty"`
}

// Summary counts the inputs and the result of a diff.
type Summary struct {
	LeftTotal   int `json:"left_total"`
	RightTotal  int `json:"right_total"`
	LeftOnly    int `json:"left_only"`
	RightOnly   int `json:"right_only"`
	ResultTotal int `json:"result_total"`
}

// Report is the response of POST /diff.
type Report struct {
	Keys    []string         `json:"keys"`
	Results []symdiff.Record `json:"results"`
	Entries []symdiff.Entry  `json:"entries,omitempty"`
	Summary Summary          `json:"summary"`
}
