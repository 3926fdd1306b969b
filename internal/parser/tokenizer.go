package parser

import (
	"regexp"
	"strings"
)

// labelRe matches a field label followed by ':' or a spaced '-'.
// Longer spellings come first so "Blockers / Issues:" is one label.
var labelRe = regexp.MustCompile(`(?i)\b(planned\s+tasks?\s+for\s+tomorrow|tomorrow|tasks?\s+(?:done|completed(?:\s+today)?)|blockers?(?:\s*/\s*issues)?|project(?:\s+name)?|hours(?:\s+worked)?|leave(?:\s*/\s*wfh)?|wfh|notes?(?:\s*/\s*remarks)?|remarks|date)\s*(:|-\s)`)

// Tokenize splits text on recognized field labels.
// A Notes label ends tokenizing: the rest of the input is the note.
func Tokenize(text string) Document {
	locs := labelLocs(text)
	if len(locs) == 0 {
		return Document{Prose: text}
	}

	doc := Document{
		Prose:    text[:locs[0][0]],
		Segments: make([]Segment, 0, len(locs)),
	}
	for i, loc := range locs {
		label := labelOf(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) && label != LabelNotes {
			end = locs[i+1][0]
		}
		doc.Segments = append(doc.Segments, Segment{
			Label:  label,
			Value:  strings.TrimSpace(text[loc[1]:end]),
			Offset: loc[0],
		})
		if label == LabelNotes {
			break
		}
	}
	return doc
}

// labelLocs returns the label matches of text. A hyphen only separates a
// label that starts a clause: "Date - 3rd March" is a label,
// "up to date - then" is prose.
func labelLocs(text string) [][]int {
	all := labelRe.FindAllStringSubmatchIndex(text, -1)
	locs := all[:0]
	for _, loc := range all {
		if text[loc[4]] == '-' && !clauseStart(text[:loc[0]]) {
			continue
		}
		locs = append(locs, loc)
	}
	return locs
}

func clauseStart(before string) bool {
	before = strings.TrimRight(before, " \t")
	if before == "" {
		return true
	}
	return strings.ContainsRune(".,;:!?\n", rune(before[len(before)-1]))
}

func labelOf(token string) Label {
	t := strings.ToLower(token)
	switch {
	case strings.Contains(t, "tomorrow"):
		return LabelTomorrow
	case strings.HasPrefix(t, "task"):
		return LabelTasks
	case strings.HasPrefix(t, "blocker"):
		return LabelBlockers
	case strings.HasPrefix(t, "project"):
		return LabelProject
	case strings.HasPrefix(t, "hour"):
		return LabelHours
	case strings.HasPrefix(t, "leave"), t == "wfh":
		return LabelLeave
	case strings.HasPrefix(t, "note"), strings.HasPrefix(t, "remark"):
		return LabelNotes
	default:
		return LabelDate
	}
}
