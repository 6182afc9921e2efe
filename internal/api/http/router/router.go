package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dtroode/todo-server/internal/api/http/handler"
	"github.com/dtroode/todo-server/internal/api/http/middleware"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TokenService is the token surface the router needs: refresh for the
// public auth routes and authenticate for the bearer middleware.
type TokenService interface {
	handler.TokenService
	middleware.TokenService
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router builds the HTTP handler tree for the todo API.
type Router struct {
	authService    handler.AuthService
	tokenService   TokenService
	userService    handler.UserService
	todoService    handler.TodoService
	pinger         Pinger
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

func New(
	authService handler.AuthService,
	tokenService TokenService,
	userService handler.UserService,
	todoService handler.TodoService,
	pinger Pinger,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		tokenService:   tokenService,
		userService:    userService,
		todoService:    todoService,
		pinger:         pinger,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register mounts middleware and routes. Everything except /health and the
// register, login and refresh endpoints requires a bearer token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.tokenService, r.userService, r.contextManager, r.logger)
	todoHandler := handler.NewTodo(r.todoService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(
		chimw.RequestID,
		chimw.RealIP,
		logging.Handle,
		chimw.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   r.allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
	)

	mux.Get("/health", r.health)

	mux.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", authHandler.Register)
		ar.Post("/login", authHandler.Login)
		ar.Post("/refresh", authHandler.Refresh)

		ar.Group(func(pr chi.Router) {
			pr.Use(authenticate.Handle)
			pr.Post("/logout", authHandler.Logout)
			pr.Get("/current_user", authHandler.CurrentUser)
			pr.Put("/current_user", authHandler.ChangePassword)
			pr.Patch("/current_user", authHandler.UpdateCurrentUser)
			pr.Delete("/current_user", authHandler.DeleteCurrentUser)
		})
	})

	mux.Route("/todos", func(tr chi.Router) {
		tr.Use(authenticate.Handle)
		tr.Get("/", todoHandler.List)
		tr.Post("/", todoHandler.Create)
		tr.Get("/{id}", todoHandler.Get)
		tr.Put("/{id}", todoHandler.Update)
		tr.Patch("/{id}", todoHandler.Update)
		tr.Delete("/{id}", todoHandler.Delete)
	})

	return mux
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	status, code := "ok", http.StatusOK
	if err := r.pinger.Ping(req.Context()); err != nil {
		r.logger.Error("Router: health check failed", "error", err.Error())
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	response.JSON(w, code, response.Status{Status: status})
}
