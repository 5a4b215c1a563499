package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/api/http/middleware"
	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

const refreshTokenCookie = "refreshToken"

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, params model.LoginParams) (model.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (model.Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (model.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, params model.UpdateAccountParams) (model.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error
	UserProjects(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
}

// Auth handles the /users endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	decoder        decoder
	secureCookies  bool
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, bodyLimit int64, secureCookies bool, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		decoder:        decoder{limit: bodyLimit},
		secureCookies:  secureCookies,
		logger:         logger,
	}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, "Auth handler: registration failed", err)
		return
	}

	response.JSON(w, http.StatusCreated, toUserResponse(user), "User Registered Successfully")
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	session, err := h.authService.Login(r.Context(), model.LoginParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.logger, "Auth handler: login failed", err)
		return
	}

	h.setSessionCookies(w, session)
	response.JSON(w, http.StatusOK, sessionResponse{
		User:         toUserResponse(session.User),
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, "User Logged In Successfully")
}

// Refresh reads the refresh token from its cookie or, failing that, from
// the request body.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var token string
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := h.decoder.decode(w, r, &req, true); err != nil {
			response.Error(w, err)
			return
		}
		token = req.RefreshToken
	}

	session, err := h.authService.RefreshSession(r.Context(), token)
	if err != nil {
		writeError(w, h.logger, "Auth handler: token refresh failed", err)
		return
	}

	h.setSessionCookies(w, session)
	response.JSON(w, http.StatusOK, sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, "Access token refreshed successfully")
}

func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeError(w, h.logger, "Auth handler: logout failed", err)
		return
	}

	h.clearSessionCookies(w)
	response.JSON(w, http.StatusOK, nil, "User Logged Out Successfully")
}

func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req changePasswordRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.logger, "Auth handler: password change failed", err)
		return
	}

	response.JSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

func (h *Auth) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, "Auth handler: current user lookup failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user), "User found successfully")
}

func (h *Auth) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req updateAccountRequest
	if err := h.decoder.decode(w, r, &req, false); err != nil {
		response.Error(w, err)
		return
	}

	user, err := h.authService.UpdateAccount(r.Context(), userID, model.UpdateAccountParams{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, h.logger, "Auth handler: account update failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toUserResponse(user), "Account details updated successfully")
}

func (h *Auth) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req deleteAccountRequest
	if err := h.decoder.decode(w, r, &req, true); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.authService.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		writeError(w, h.logger, "Auth handler: account deletion failed", err)
		return
	}

	h.clearSessionCookies(w)
	response.JSON(w, http.StatusOK, nil, "User account deleted successfully")
}

func (h *Auth) UserProjects(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	projects, err := h.authService.UserProjects(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, "Auth handler: user projects lookup failed", err)
		return
	}

	response.JSON(w, http.StatusOK, toProjectResponses(projects), "User projects fetched successfully")
}

func (h *Auth) setSessionCookies(w http.ResponseWriter, session model.Session) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, session.AccessToken))
	http.SetCookie(w, h.cookie(refreshTokenCookie, session.RefreshToken))
}

func (h *Auth) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		c := h.cookie(name, "")
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *Auth) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
	}
}
