// This is the main entry point of the devlearn application: the
// authentication and authorization backend of the learning platform. It
// loads configuration, connects the database pool, runs migrations, wires
// the services and handlers together, sets up the HTTP router and
// middleware, and starts the server with graceful shutdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/user/devlearn-go/apperror"
	"github.com/user/devlearn-go/auth"
	"github.com/user/devlearn-go/config"
	"github.com/user/devlearn-go/db"
	"github.com/user/devlearn-go/mail"
	"github.com/user/devlearn-go/store"
	"github.com/user/devlearn-go/users"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .env is a development convenience; production sets real env vars.
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Warn(".env file not found or not readable")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	pool, err := db.NewDBPool(cfg.Pool)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Pool, "./migrations"); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// All collaborators are constructed here and injected explicitly; no
	// package holds an ambient client.
	userStore := store.NewUsers(pool, log)
	courseStore := store.NewCourses(pool)
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	mailer, err := mail.NewSESSender(context.Background(), cfg.Mail)
	if err != nil {
		log.WithError(err).Fatal("failed to create mail sender")
	}

	authService := auth.NewAuthService(userStore, tokenService, log)
	authHandlers := auth.NewHandlers(authService, cfg.Auth, mailer, log)

	userService := users.NewUserService(userStore)
	userHandlers := users.NewUserHandlers(userService)

	requireAuth := auth.RequireAuth(tokenService, userStore, log)
	requireInstructor := auth.RequireInstructor(userStore, log)
	requireEnrollment := auth.RequireEnrollment(userStore, courseStore, log)

	r := chi.NewRouter()

	// Global middleware must be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendOrigin(cfg)},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Convert any panic that escapes a handler into a standard 500 response.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.WithField("panic", fmt.Sprintf("%+v", rvr)).Error("recovered from panic")
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public account lifecycle routes.
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Get("/logout", authHandlers.HandleLogout())
		r.Post("/forgot-password", authHandlers.HandleForgotPassword())
		r.Get("/user/{id}", userHandlers.HandleGetUserDetails())

		// Routes behind the authentication gate.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/current-user", userHandlers.HandleCurrentUser())
			r.Put("/current-user/update", userHandlers.HandleUpdateProfile())
		})

		// Instructor-only routes: authentication gate, then role gate.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireInstructor)
			r.Get("/current-instructor", userHandlers.HandleCurrentUser())
		})

		// Enrollment-gated routes: authentication gate, then membership gate
		// on the {slug} course.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireEnrollment)
			r.Get("/user/course/{slug}", userHandlers.HandleCurrentUser())
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown failed")
	}
	log.Info("server stopped gracefully")
}

// frontendOrigin returns the origin allowed to send credentialed requests.
// Cookies with SameSite=None require an explicit origin rather than "*".
func frontendOrigin(cfg *config.AppConfig) string {
	if cfg.Auth.IsProduction() {
		if origin := os.Getenv("FRONTEND_URL"); origin != "" {
			return origin
		}
	}
	return "http://localhost:3000"
}

// writeError is a local helper for the panic recovery middleware, kept
// separate to avoid an import cycle with the handler packages.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"success":false,"message":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
