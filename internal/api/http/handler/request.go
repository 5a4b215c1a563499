package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

var errUserIDRequired = apperror.BadRequest("User ID is required")

// decoder reads request bodies with a size limit and rejects unknown fields.
type decoder struct {
	limit int64
}

// decode reads a JSON object into dst. An empty body is accepted when
// optional is set.
func (d decoder) decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	body := http.MaxBytesReader(w, r.Body, d.limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && optional {
			return nil
		}
		return apperror.NewErrInvalidRequestBody(err)
	}

	if dec.More() {
		return apperror.BadRequest("Invalid request body", "body must contain a single JSON object")
	}

	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperror.NewErrInvalidID(name)
	}
	return id, nil
}

// parseOptionalID parses an identifier field that may be empty.
func parseOptionalID(value, name string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.NewErrInvalidID(name)
	}
	return id, nil
}

func callerID(ctxManager model.ContextManager, r *http.Request) (uuid.UUID, error) {
	id, ok := ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperror.NewErrMissingAuthorizationToken()
	}
	return id, nil
}

// writeError renders err and logs it. Client errors are logged at debug
// level, everything else as an error.
func writeError(w http.ResponseWriter, log *logger.Logger, msg string, err error) {
	status := response.Error(w, err)
	if status >= http.StatusInternalServerError {
		log.Error(msg, "error", err.Error())
		return
	}
	log.Debug(msg,
		"status", status,
		"error", err.Error(),
	)
}
