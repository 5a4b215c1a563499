package model

// SummaryRow is one line of the project summary export.
//
// Numeric columns are preformatted so that the placeholder row of a project
// without tasks can leave task columns empty.
type SummaryRow struct {
	ProjectName        string
	ProjectDescription string
	ProjectStatus      string
	ProjectCreatedAt   string
	ProjectUsers       string
	TotalTasks         string
	CompletedTasks     string
	TotalHours         string
	TaskName           string
	TaskDescription    string
	TaskAssignedTo     string
	TaskStartTime      string
	TaskEndTime        string
	TaskDuration       string
}
