package parser

import (
	"slices"

	"tasklogger/internal/model"
)

// Label field label recognized by the tokenizer
type Label string

const (
	LabelDate     Label = "date"
	LabelProject  Label = "project"
	LabelLeave    Label = "leave"
	LabelTasks    Label = "tasks"
	LabelHours    Label = "hours"
	LabelBlockers Label = "blockers"
	LabelTomorrow Label = "tomorrow"
	LabelNotes    Label = "notes"
)

// Source where a field value came from
type Source string

const (
	SourceNone   Source = "none"   // no match, value is empty
	SourceLabel  Source = "label"  // "Hours: 3"
	SourcePhrase Source = "phrase" // "3 hours worked"
)

// Segment text following a label, up to the next label or end of input
type Segment struct {
	Label  Label  `json:"label"`
	Value  string `json:"value"`
	Offset int    `json:"offset"` // byte offset of the label in the input
}

// Document tokenized update text
type Document struct {
	Prose    string    `json:"prose"` // text before the first label
	Segments []Segment `json:"segments"`
}

// Segment returns the first segment carrying label l.
func (d Document) Segment(l Label) (Segment, bool) {
	for _, s := range d.Segments {
		if s.Label == l {
			return s, true
		}
	}
	return Segment{}, false
}

// Text returns the prose and all segment values with the label tokens removed.
func (d Document) Text() string {
	parts := make([]string, 0, len(d.Segments)+1)
	parts = append(parts, d.Prose)
	for _, s := range d.Segments {
		parts = append(parts, s.Value)
	}
	return joinNonEmpty(parts, "\n")
}

// TextExcept is Text without the values of the excluded labels.
func (d Document) TextExcept(excluded ...Label) string {
	parts := make([]string, 0, len(d.Segments)+1)
	parts = append(parts, d.Prose)
	for _, s := range d.Segments {
		if !slices.Contains(excluded, s.Label) {
			parts = append(parts, s.Value)
		}
	}
	return joinNonEmpty(parts, "\n")
}

// Extraction extracted entry plus the source of every column
type Extraction struct {
	Entry   model.UpdateEntry `json:"entry"`
	Sources map[string]Source `json:"sources"`
}

// Missing lists the columns nothing was extracted for, in column order.
// "Date update on" mirrors Date and is not reported separately.
func (x Extraction) Missing() []string {
	var out []string
	for _, col := range model.Columns {
		if col == model.ColumnDateUpdateOn {
			continue
		}
		if src, ok := x.Sources[col]; !ok || src == SourceNone {
			out = append(out, col)
		}
	}
	return out
}
