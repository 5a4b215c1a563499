package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/middleware"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/metrics"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// APIPrefix is the path prefix of every domain route.
const APIPrefix = "/api/v1"

// Options holds the HTTP settings the router needs.
type Options struct {
	BodyLimit     int64
	SecureCookies bool
	CORSOrigins   string
}

// Services groups the domain services the handlers call.
type Services struct {
	Auth    handler.AuthService
	Project handler.ProjectService
	Task    handler.TaskService
	Summary handler.SummaryService
	Tokens  middleware.TokenService
}

// Router builds the HTTP handler tree for the task tracker API.
type Router struct {
	services       Services
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	pinger         handler.Pinger
	options        Options
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	services Services,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	pinger handler.Pinger,
	options Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		metrics:        metrics,
		pinger:         pinger,
		options:        options,
		logger:         logger,
	}
}

// Register wires every route and middleware and returns the root handler.
//
// Middleware order is CORS, metrics, logging and, for protected routes,
// authentication.
func (r *Router) Register() http.Handler {
	auth := handler.NewAuth(r.services.Auth, r.contextManager, r.options.BodyLimit, r.options.SecureCookies, r.logger)
	projects := handler.NewProject(r.services.Project, r.contextManager, r.options.BodyLimit, r.logger)
	tasks := handler.NewTask(r.services.Task, r.contextManager, r.options.BodyLimit, r.logger)
	summary := handler.NewSummary(r.services.Summary, r.contextManager, r.metrics, r.logger)
	health := handler.NewHealth(r.pinger, r.logger)

	authenticate := middleware.NewAuthenticate(r.services.Tokens, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	root := mux.NewRouter()
	root.Use(middleware.Metrics(r.metrics))
	root.Use(logging.Handle)

	root.HandleFunc("/healthz", health.Check).Methods(http.MethodGet)
	root.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix(APIPrefix).Subrouter()

	api.HandleFunc("/users/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/refresh-token", auth.Refresh).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(authenticate.Handle)

	protected.HandleFunc("/users/logout", auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/users/change-password", auth.ChangePassword).Methods(http.MethodPost)
	protected.HandleFunc("/users/update-account", auth.UpdateAccount).Methods(http.MethodPatch)
	protected.HandleFunc("/users/current-user", auth.CurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/users/delete-account", auth.DeleteAccount).Methods(http.MethodDelete)
	protected.HandleFunc("/users/get-user-all-projects", auth.UserProjects).Methods(http.MethodGet)

	protected.HandleFunc("/projects", projects.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects", projects.List).Methods(http.MethodGet)

	// Summary routes come before /projects/{projectId} so "get-summary" is
	// never taken for a project ID.
	protected.HandleFunc("/projects/get-summary", summary.AllProjects).Methods(http.MethodGet)
	protected.HandleFunc("/projects/get-summary/{projectId}", summary.Project).Methods(http.MethodGet)

	protected.HandleFunc("/projects/{projectId}", projects.Get).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}", projects.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{projectId}", projects.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/projects/{projectId}/status", projects.ChangeStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{projectId}/members", projects.AddMember).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{projectId}/members/{userId}", projects.RemoveMember).Methods(http.MethodDelete)

	protected.HandleFunc("/projects/{projectId}/tasks", tasks.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects/{projectId}/tasks", tasks.List).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}/tasks/{taskId}", tasks.Get).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{projectId}/tasks/{taskId}", tasks.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{projectId}/tasks/{taskId}", tasks.Delete).Methods(http.MethodDelete)

	return middleware.CORS(r.options.CORSOrigins)(root)
}
