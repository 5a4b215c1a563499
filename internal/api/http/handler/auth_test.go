package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/apperror"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

// authServiceStub overrides the methods a test needs. Calling any other
// method panics on the nil embedded interface.
type authServiceStub struct {
	AuthService

	register       func(model.RegisterParams) (model.User, error)
	login          func(model.LoginParams) (model.Session, error)
	refreshSession func(string) (model.Session, error)
	logout         func(uuid.UUID) error
	deleteAccount  func(uuid.UUID, string) error
}

func (s authServiceStub) Register(_ context.Context, p model.RegisterParams) (model.User, error) {
	return s.register(p)
}

func (s authServiceStub) Login(_ context.Context, p model.LoginParams) (model.Session, error) {
	return s.login(p)
}

func (s authServiceStub) RefreshSession(_ context.Context, token string) (model.Session, error) {
	return s.refreshSession(token)
}

func (s authServiceStub) Logout(_ context.Context, id uuid.UUID) error {
	return s.logout(id)
}

func (s authServiceStub) DeleteAccount(_ context.Context, id uuid.UUID, password string) error {
	return s.deleteAccount(id, password)
}

func newAuthHandler(svc AuthService) *Auth {
	return NewAuth(svc, httpctx.NewManager(), testBodyLimit, true, testutil.MakeNoopLogger())
}

func cookiesByName(w *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range w.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	user := model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice"}

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "created",
			body:       `{"fullName":"Alice","email":"alice@example.com","username":"alice","password":"pw"}`,
			wantStatus: http.StatusCreated,
			wantMsg:    "User Registered Successfully",
		},
		{
			name:       "service rejects",
			body:       `{"fullName":"","email":"","username":"","password":""}`,
			err:        apperror.NewErrAllFieldsRequired(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "All fields are required",
		},
		{
			name:       "duplicate",
			body:       `{"fullName":"Alice","email":"alice@example.com","username":"alice","password":"pw"}`,
			err:        apperror.NewErrUserExists(),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unexpected failure hides detail",
			body:       `{"fullName":"Alice","email":"alice@example.com","username":"alice","password":"pw"}`,
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
		{
			name:       "unknown field",
			body:       `{"role":"admin"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request body",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newAuthHandler(authServiceStub{
				register: func(p model.RegisterParams) (model.User, error) {
					if tt.err != nil {
						return model.User{}, tt.err
					}
					assert.Equal(t, "alice", p.Username)
					return user, nil
				},
			})

			w := httptest.NewRecorder()
			h.Register(w, newRequest(http.MethodPost, tt.body, uuid.Nil, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.Equal(t, tt.wantStatus < http.StatusBadRequest, env.Success)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Message)
			}
			if !env.Success {
				assert.NotNil(t, env.Errors)
			}
		})
	}
}

func TestAuth_LoginSetsCookies(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	h := newAuthHandler(authServiceStub{
		login: func(p model.LoginParams) (model.Session, error) {
			assert.Equal(t, "alice@example.com", p.Email)
			return model.Session{
				User:         model.User{ID: userID, Username: "alice"},
				AccessToken:  "access",
				RefreshToken: "refresh",
			}, nil
		},
	})

	w := httptest.NewRecorder()
	h.Login(w, newRequest(http.MethodPost, `{"email":"alice@example.com","password":"pw"}`, uuid.Nil, nil))

	require.Equal(t, http.StatusOK, w.Code)

	cookies := cookiesByName(w)
	require.Contains(t, cookies, "accessToken")
	require.Contains(t, cookies, "refreshToken")
	assert.Equal(t, "access", cookies["accessToken"].Value)
	assert.True(t, cookies["accessToken"].HttpOnly)
	assert.True(t, cookies["accessToken"].Secure)
	assert.Equal(t, "refresh", cookies["refreshToken"].Value)

	env := decodeEnvelope(t, w)
	assert.Equal(t, "User Logged In Successfully", env.Message)

	var data sessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotNil(t, data.User)
	assert.Equal(t, userID, data.User.ID)
	assert.Equal(t, "access", data.AccessToken)
	assert.Equal(t, "refresh", data.RefreshToken)
}

func TestAuth_RefreshTokenSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cookie    string
		body      string
		wantToken string
	}{
		{name: "cookie", cookie: "from-cookie", wantToken: "from-cookie"},
		{name: "body", body: `{"refreshToken":"from-body"}`, wantToken: "from-body"},
		{name: "cookie preferred", cookie: "from-cookie", body: `{"refreshToken":"from-body"}`, wantToken: "from-cookie"},
		{name: "nothing", wantToken: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			h := newAuthHandler(authServiceStub{
				refreshSession: func(token string) (model.Session, error) {
					got = token
					if token == "" {
						return model.Session{}, apperror.NewErrMissingAuthorizationToken()
					}
					return model.Session{AccessToken: "a2", RefreshToken: "r2"}, nil
				},
			})

			r := newRequest(http.MethodPost, tt.body, uuid.Nil, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "refreshToken", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			h.Refresh(w, r)

			assert.Equal(t, tt.wantToken, got)
			if tt.wantToken == "" {
				assert.Equal(t, http.StatusUnauthorized, w.Code)
				return
			}
			assert.Equal(t, http.StatusOK, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, "Access token refreshed successfully", env.Message)
			assert.Equal(t, "r2", cookiesByName(w)["refreshToken"].Value)
		})
	}
}

func TestAuth_LogoutClearsCookies(t *testing.T) {
	t.Parallel()

	caller := uuid.New()
	var revoked uuid.UUID
	h := newAuthHandler(authServiceStub{
		logout: func(id uuid.UUID) error {
			revoked = id
			return nil
		},
	})

	w := httptest.NewRecorder()
	h.Logout(w, newRequest(http.MethodPost, "", caller, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, caller, revoked)

	cookies := cookiesByName(w)
	for _, name := range []string{"accessToken", "refreshToken"} {
		require.Contains(t, cookies, name)
		assert.Empty(t, cookies[name].Value)
		assert.Less(t, cookies[name].MaxAge, 0)
	}

	env := decodeEnvelope(t, w)
	assert.Equal(t, "User Logged Out Successfully", env.Message)
	assert.JSONEq(t, "null", string(env.Data))
}

func TestAuth_LogoutWithoutCaller(t *testing.T) {
	t.Parallel()

	h := newAuthHandler(authServiceStub{})

	w := httptest.NewRecorder()
	h.Logout(w, newRequest(http.MethodPost, "", uuid.Nil, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_DeleteAccountOptionalPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		wantPass string
	}{
		{name: "no body", wantPass: ""},
		{name: "with password", body: `{"password":"pw"}`, wantPass: "pw"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			h := newAuthHandler(authServiceStub{
				deleteAccount: func(_ uuid.UUID, password string) error {
					got = password
					return nil
				},
			})

			w := httptest.NewRecorder()
			h.DeleteAccount(w, newRequest(http.MethodDelete, tt.body, uuid.New(), nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantPass, got)
			assert.Less(t, cookiesByName(w)["accessToken"].MaxAge, 0)
		})
	}
}
