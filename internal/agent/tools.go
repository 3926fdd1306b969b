package agent

import (
	"fmt"

	"google.golang.org/genai"

	"tasklogger/internal/model"
)

// Tool names exposed to the model
const (
	ToolHandleNaturalLanguage = "handle_natural_language_update"
	ToolLogDailyUpdate        = "log_daily_update"
)

// Instruction system instruction of the task logger agent
const Instruction = "You manage employee task and daily updates in Google Sheets.\n" +
	"Use `handle_natural_language_update` for natural language input.\n" +
	"Use `log_daily_update` if the entry is already structured.\n" +
	"Report the tool result to the user; do not invent field values."

// entryKeys maps tool argument keys to sheet columns.
var entryKeys = []struct {
	key    string
	column string
}{
	{"date", model.ColumnDate},
	{"project_name", model.ColumnProjectName},
	{"leave_wfh", model.ColumnLeaveWFH},
	{"tasks_completed_today", model.ColumnTasksCompleted},
	{"hours_worked", model.ColumnHoursWorked},
	{"blockers_issues", model.ColumnBlockers},
	{"planned_tasks_for_tomorrow", model.ColumnPlannedTasks},
	{"notes_remarks", model.ColumnNotes},
	{"date_update_on", model.ColumnDateUpdateOn},
}

func declarations() []*genai.FunctionDeclaration {
	entryProps := make(map[string]*genai.Schema, len(entryKeys))
	for _, k := range entryKeys {
		entryProps[k.key] = &genai.Schema{
			Type:        genai.TypeString,
			Description: fmt.Sprintf("value of the %q column", k.column),
		}
	}

	return []*genai.FunctionDeclaration{
		{
			Name:        ToolHandleNaturalLanguage,
			Description: "Parse a free text daily update that starts with 'Update for <Name>:' and append it to the sheet <Name>.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"prompt": {
						Type:        genai.TypeString,
						Description: "the full update text, including the 'Update for <Name>:' prefix",
					},
				},
				Required: []string{"prompt"},
			},
		},
		{
			Name:        ToolLogDailyUpdate,
			Description: "Append an already structured daily update to the sheet named name.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "sheet (employee) name",
					},
					"entry": {
						Type:        genai.TypeObject,
						Description: "daily update fields; missing fields are logged empty",
						Properties:  entryProps,
					},
				},
				Required: []string{"name", "entry"},
			},
		},
	}
}

// entryFields converts the tool "entry" argument to column keyed fields.
// Both snake_case keys and column names are accepted.
func entryFields(arg any) map[string]string {
	raw, _ := arg.(map[string]any)
	fields := make(map[string]string, len(entryKeys))
	for _, k := range entryKeys {
		for _, key := range []string{k.key, k.column} {
			if v, ok := raw[key]; ok && v != nil {
				fields[k.column] = fmt.Sprint(v)
				break
			}
		}
	}
	return fields
}

func resultMap(res model.Result) map[string]any {
	out := map[string]any{"status": res.Status}
	if res.OK() {
		out["report"] = res.Report
	} else {
		out["error_message"] = res.ErrorMessage
	}
	return out
}
