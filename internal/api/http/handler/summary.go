package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/service"
)

const (
	exportScopeAll     = "all"
	exportScopeProject = "project"
)

// SummaryService builds CSV summaries as temporary artifacts.
type SummaryService interface {
	AllProjects(ctx context.Context, callerID uuid.UUID) (*service.Artifact, error)
	Project(ctx context.Context, callerID, projectID uuid.UUID) (*service.Artifact, error)
}

// ExportRecorder counts summary exports.
type ExportRecorder interface {
	RecordExport(scope string, success bool)
}

// Summary streams CSV summaries.
type Summary struct {
	summaryService SummaryService
	contextManager model.ContextManager
	recorder       ExportRecorder
	logger         *logger.Logger
}

// NewSummary creates a new Summary handler.
func NewSummary(summaryService SummaryService, contextManager model.ContextManager, recorder ExportRecorder, logger *logger.Logger) *Summary {
	return &Summary{
		summaryService: summaryService,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

func (h *Summary) AllProjects(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	artifact, err := h.summaryService.AllProjects(r.Context(), caller)
	h.stream(w, exportScopeAll, artifact, err)
}

func (h *Summary) Project(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}
	projectID, err := pathID(r, "projectId")
	if err != nil {
		response.Error(w, err)
		return
	}

	artifact, err := h.summaryService.Project(r.Context(), caller, projectID)
	h.stream(w, exportScopeProject, artifact, err)
}

// stream copies the artifact to the client. The artifact is closed, and its
// temp file removed, whether or not the copy succeeds.
func (h *Summary) stream(w http.ResponseWriter, scope string, artifact *service.Artifact, err error) {
	if err != nil {
		h.recorder.RecordExport(scope, false)
		writeError(w, h.logger, "Summary handler: export failed", err)
		return
	}
	defer func() {
		if cerr := artifact.Close(); cerr != nil {
			h.logger.Warn("Summary handler: failed to remove artifact",
				"file", artifact.Filename,
				"error", cerr.Error())
		}
	}()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", contentDisposition(artifact.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, artifact); err != nil {
		h.recorder.RecordExport(scope, false)
		h.logger.Error("Summary handler: failed to stream artifact",
			"file", artifact.Filename,
			"error", err.Error())
		return
	}

	h.recorder.RecordExport(scope, true)
}

// contentDisposition builds an attachment header with a plain ASCII filename
// and an RFC 5987 filename* carrying the UTF-8 name.
func contentDisposition(name string) string {
	var fallback, encoded strings.Builder
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			fallback.WriteByte('_')
			continue
		}
		fallback.WriteRune(r)
	}
	for _, b := range []byte(name) {
		if isAttrChar(b) {
			encoded.WriteByte(b)
			continue
		}
		fmt.Fprintf(&encoded, "%%%02X", b)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback.String(), encoded.String())
}

func isAttrChar(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", b) >= 0
}
