package parser

import (
	"regexp"
	"strings"

	"tasklogger/internal/model"
)

var (
	labelDateRe  = regexp.MustCompile(`(?i)^\s*` + datePattern)
	phraseDateRe = regexp.MustCompile(`(?i)today['’]?s\s+date\s+is\s*:?\s*` + datePattern)

	workedOnRe   = regexp.MustCompile(`(?i)\bworked\s+on\s+([^.,;\n]+?)\s+project\b`)
	wfhRe        = regexp.MustCompile(`(?i)from\s+home|\bwfh\b`)
	officeRe     = regexp.MustCompile(`(?i)office|on-?site`)
	completedRe  = regexp.MustCompile(`(?i)\bcompleted\s+([^.,;\n]+)`)
	taskStopRe   = regexp.MustCompile(`(?i)\b(?:blockers?|tomorrow)\b`)
	labelHoursRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
	hoursRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\s+worked`)
	noBlockersRe = regexp.MustCompile(`(?i)\bno\s+blockers\b`)
	noneRe       = regexp.MustCompile(`(?i)\b(?:none|no)\b`)
	tomorrowRe   = regexp.MustCompile(`(?i)\btomorrow\b[^.\n]*?\b(?:will|to)\s+([^.\n]+)`)
)

// Extract turns a free text daily update into an UpdateEntry.
// It never fails: a field with no match is left empty.
func Extract(text string) model.UpdateEntry {
	return Analyze(text).Entry
}

// Analyze is Extract plus the source of every extracted column.
func Analyze(text string) Extraction {
	doc := Tokenize(text)
	x := Extraction{Sources: make(map[string]Source, len(model.Columns))}

	set := func(col string, dst *string) func(string, Source) {
		return func(value string, src Source) {
			if value == "" {
				src = SourceNone
			}
			*dst = value
			x.Sources[col] = src
		}
	}

	e := &x.Entry
	set(model.ColumnDate, &e.Date)(extractDate(doc))
	e.DateUpdateOn = e.Date
	x.Sources[model.ColumnDateUpdateOn] = x.Sources[model.ColumnDate]

	set(model.ColumnProjectName, &e.ProjectName)(extractProject(doc))
	set(model.ColumnLeaveWFH, &e.LeaveWFH)(extractLeave(doc))
	set(model.ColumnTasksCompleted, &e.TasksCompleted)(extractTasks(doc))
	set(model.ColumnHoursWorked, &e.HoursWorked)(extractHours(doc))
	set(model.ColumnBlockers, &e.Blockers)(extractBlockers(doc))
	set(model.ColumnPlannedTasks, &e.PlannedTasks)(extractTomorrow(doc))
	set(model.ColumnNotes, &e.Notes)(extractNotes(doc))

	return x
}

// phraseText is where prose phrases are searched: everything but the note.
func phraseText(doc Document) string {
	return doc.TextExcept(LabelNotes)
}

func extractDate(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelDate); ok {
		if m := labelDateRe.FindStringSubmatch(seg.Value); m != nil {
			return parsedDate(m), SourceLabel
		}
	}
	if m := phraseDateRe.FindStringSubmatch(phraseText(doc)); m != nil {
		return parsedDate(m), SourcePhrase
	}
	return "", SourceNone
}

func parsedDate(m []string) string {
	date, err := ParseDayMonthYear(m[1], m[2], m[3])
	if err != nil {
		return ""
	}
	return date
}

func extractProject(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelProject); ok {
		if v := firstClause(seg.Value); v != "" {
			return v, SourceLabel
		}
	}
	if m := workedOnRe.FindStringSubmatch(phraseText(doc)); m != nil {
		return NormalizeSpace(m[1]) + " project", SourcePhrase
	}
	return "", SourceNone
}

func extractLeave(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelLeave); ok {
		if v := classifyLeave(seg.Value); v != "" {
			return v, SourceLabel
		}
	}
	return classifyLeave(doc.Text()), SourcePhrase
}

func classifyLeave(text string) string {
	switch {
	case wfhRe.MatchString(text):
		return model.LocationWFH
	case officeRe.MatchString(text):
		return model.LocationOffice
	default:
		return ""
	}
}

func extractTasks(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelTasks); ok {
		if v := firstClause(seg.Value); v != "" {
			return v, SourceLabel
		}
	}
	if m := completedRe.FindStringSubmatch(phraseText(doc)); m != nil {
		v := m[1]
		if loc := taskStopRe.FindStringIndex(v); loc != nil {
			v = v[:loc[0]]
		}
		return NormalizeSpace(v), SourcePhrase
	}
	return "", SourceNone
}

func extractHours(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelHours); ok {
		if m := labelHoursRe.FindStringSubmatch(seg.Value); m != nil {
			return m[1], SourceLabel
		}
	}
	if m := hoursRe.FindStringSubmatch(phraseText(doc)); m != nil {
		return m[1], SourcePhrase
	}
	return "", SourceNone
}

func extractBlockers(doc Document) (string, Source) {
	if noBlockersRe.MatchString(doc.Text()) {
		return model.NoBlockers, SourcePhrase
	}
	seg, ok := doc.Segment(LabelBlockers)
	if !ok {
		return "", SourceNone
	}
	v := firstSentence(seg.Value)
	if noneRe.MatchString(v) {
		return model.NoBlockers, SourceLabel
	}
	return v, SourceLabel
}

func extractTomorrow(doc Document) (string, Source) {
	if seg, ok := doc.Segment(LabelTomorrow); ok {
		if v := firstSentence(seg.Value); v != "" {
			return v, SourceLabel
		}
	}
	if m := tomorrowRe.FindStringSubmatch(phraseText(doc)); m != nil {
		return NormalizeSpace(m[1]), SourcePhrase
	}
	return "", SourceNone
}

func extractNotes(doc Document) (string, Source) {
	seg, ok := doc.Segment(LabelNotes)
	if !ok {
		return "", SourceNone
	}
	return strings.TrimSpace(seg.Value), SourceLabel
}
