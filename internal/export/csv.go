// Package export renders project summaries as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// Header is the fixed column order of a summary export.
var Header = []string{
	"Project Name",
	"Project Description",
	"Project Status",
	"Project Created At",
	"Project Users",
	"Total Tasks",
	"Completed Tasks",
	"Total Hours",
	"Task Name",
	"Task Description",
	"Task Assigned To",
	"Task Start Time",
	"Task End Time",
	"Task Duration (hours)",
}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, rows []model.SummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func record(r model.SummaryRow) []string {
	return []string{
		r.ProjectName,
		r.ProjectDescription,
		r.ProjectStatus,
		r.ProjectCreatedAt,
		r.ProjectUsers,
		r.TotalTasks,
		r.CompletedTasks,
		r.TotalHours,
		r.TaskName,
		r.TaskDescription,
		r.TaskAssignedTo,
		r.TaskStartTime,
		r.TaskEndTime,
		r.TaskDuration,
	}
}
