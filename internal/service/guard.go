package service

import (
	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

// IsMember reports whether callerID is listed among the project's members.
// Identifiers are compared in their canonical string form.
func IsMember(callerID string, project model.Project) bool {
	for _, id := range project.MemberIDs {
		if id.String() == callerID {
			return true
		}
	}
	return false
}

func isMember(callerID uuid.UUID, project model.Project) bool {
	return IsMember(callerID.String(), project)
}
