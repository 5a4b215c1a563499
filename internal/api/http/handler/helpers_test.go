package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
)

const testBodyLimit = 1 << 16

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

// newRequest builds a request authenticated as caller (unless uuid.Nil) with
// the given mux path variables.
func newRequest(method, body string, caller uuid.UUID, vars map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, "/", reader)
	if caller != uuid.Nil {
		r = r.WithContext(httpctx.NewManager().SetUserIDToContext(r.Context(), caller))
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}
