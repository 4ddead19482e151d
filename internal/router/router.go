package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/lingua-lambda/docs"
	"github.com/saulo-duarte/lingua-lambda/internal/auth"
	"github.com/saulo-duarte/lingua-lambda/internal/config"
	"github.com/saulo-duarte/lingua-lambda/internal/middlewares"
	"github.com/saulo-duarte/lingua-lambda/internal/progress"
	"github.com/saulo-duarte/lingua-lambda/internal/tutor"
	"github.com/saulo-duarte/lingua-lambda/internal/user"
)

type RouterConfig struct {
	CORSOrigins     []string
	UserHandler     *user.Handler
	TutorHandler    *tutor.Handler
	ProgressHandler *progress.Handler
	// Health reports readiness; nil means always healthy.
	Health func(r *http.Request) error
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.CORSOrigins))

	r.Get("/health", health(cfg.Health))
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/conversations", tutor.ConversationRoutes(cfg.TutorHandler))
		r.Mount("/tests", tutor.TestRoutes(cfg.TutorHandler))
		r.Mount("/progress", progress.Routes(cfg.ProgressHandler))

		r.Post("/prompt", cfg.TutorHandler.Prompt)
	})
	return r
}

// health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func health(check func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				config.WithContext(r.Context()).WithError(err).Error("Health check failed")
				config.Error(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
