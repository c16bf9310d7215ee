package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Shoury-Rana/LinkCrate/internal/api/handlers"
	"github.com/Shoury-Rana/LinkCrate/internal/api/middleware"
	"github.com/Shoury-Rana/LinkCrate/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	authMux := http.NewServeMux()
	authMux.HandleFunc("/sign-up", handlers.RegisterUser)
	authMux.HandleFunc("/login", handlers.LoginUser)
	authMux.HandleFunc("/google/login", handlers.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", handlers.HandleGoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// Public share access goes through the evaluator, never through auth.
	publicMux := http.NewServeMux()
	publicMux.HandleFunc("GET /{shareableId}", handlers.PublicShareDetail)
	publicMux.HandleFunc("POST /{shareableId}/download", handlers.RequestDownload)

	mainMux.Handle("/api/v1/public/shares/",
		http.StripPrefix("/api/v1/public/shares", publicMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	shareMux := http.NewServeMux()
	shareMux.HandleFunc("POST /upload/initiate", handlers.InitiateUpload)
	shareMux.HandleFunc("POST /upload/complete", handlers.CompleteUpload)
	shareMux.HandleFunc("GET /{$}", handlers.ListShares)
	shareMux.HandleFunc("GET /{shareableId}", handlers.GetShare)
	shareMux.HandleFunc("PATCH /{shareableId}", handlers.UpdateShare)
	shareMux.HandleFunc("DELETE /{shareableId}", handlers.DeleteShare)

	protectedMux.Handle("/shares/",
		http.StripPrefix("/shares", shareMux),
	)

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("GET /shares", handlers.AdminListShares)

	protectedMux.Handle("/admin/",
		http.StripPrefix("/admin", middleware.RequireAdmin(adminMux)),
	)

	protectedMux.HandleFunc("/auth/logout", handlers.Logout)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
