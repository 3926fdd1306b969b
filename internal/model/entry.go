package model

// Column names of a daily update sheet, in row order.
const (
	ColumnDate           = "Date"
	ColumnProjectName    = "Project Name"
	ColumnLeaveWFH       = "Leave/WFH"
	ColumnTasksCompleted = "Tasks Completed Today"
	ColumnHoursWorked    = "Hours Worked"
	ColumnBlockers       = "Blockers / Issues"
	ColumnPlannedTasks   = "Planned Tasks for Tomorrow"
	ColumnNotes          = "Notes/Remarks"
	ColumnDateUpdateOn   = "Date update on"
)

// Columns is the fixed header row of every update sheet.
var Columns = []string{
	ColumnDate,
	ColumnProjectName,
	ColumnLeaveWFH,
	ColumnTasksCompleted,
	ColumnHoursWorked,
	ColumnBlockers,
	ColumnPlannedTasks,
	ColumnNotes,
	ColumnDateUpdateOn,
}

// Leave/WFH values
const (
	LocationWFH    = "WFH"
	LocationOffice = "Office"
)

// NoBlockers is the normalized value for an update that reports no blockers.
const NoBlockers = "no blockers"

// UpdateEntry one daily update, one spreadsheet row
type UpdateEntry struct {
	Date           string `json:"Date"`
	ProjectName    string `json:"Project Name"`
	LeaveWFH       string `json:"Leave/WFH"`
	TasksCompleted string `json:"Tasks Completed Today"`
	HoursWorked    string `json:"Hours Worked"`
	Blockers       string `json:"Blockers / Issues"`
	PlannedTasks   string `json:"Planned Tasks for Tomorrow"`
	Notes          string `json:"Notes/Remarks"`
	DateUpdateOn   string `json:"Date update on"`
}

// Row returns the cells in Columns order.
func (e UpdateEntry) Row() []string {
	return []string{
		e.Date,
		e.ProjectName,
		e.LeaveWFH,
		e.TasksCompleted,
		e.HoursWorked,
		e.Blockers,
		e.PlannedTasks,
		e.Notes,
		e.DateUpdateOn,
	}
}

// Map returns the entry keyed by column name. All nine keys are always present.
func (e UpdateEntry) Map() map[string]string {
	row := e.Row()
	out := make(map[string]string, len(Columns))
	for i, col := range Columns {
		out[col] = row[i]
	}
	return out
}

// FromMap builds an entry from a column-keyed mapping.
// Unknown keys are ignored, missing keys stay empty.
func FromMap(fields map[string]string) UpdateEntry {
	return UpdateEntry{
		Date:           fields[ColumnDate],
		ProjectName:    fields[ColumnProjectName],
		LeaveWFH:       fields[ColumnLeaveWFH],
		TasksCompleted: fields[ColumnTasksCompleted],
		HoursWorked:    fields[ColumnHoursWorked],
		Blockers:       fields[ColumnBlockers],
		PlannedTasks:   fields[ColumnPlannedTasks],
		Notes:          fields[ColumnNotes],
		DateUpdateOn:   fields[ColumnDateUpdateOn],
	}
}
