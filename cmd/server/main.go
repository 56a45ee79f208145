// @title           NotesFlow API
// @version         2.0
// @description     REST backend for NotesFlow - notes, tasks, profiles and public share links.
// @host            localhost:8080
// @schemes         http https
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/om-khorwal/NotesFlow/internal/api"
	"github.com/om-khorwal/NotesFlow/internal/config"
	"github.com/om-khorwal/NotesFlow/internal/database"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/om-khorwal/NotesFlow/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	store := database.NewStore(dbpool)
	server := api.NewServer(cfg, store)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", server.HealthCheckHandler)

		r.Post("/auth/register", server.RegisterHandler)
		r.Post("/auth/login", server.LoginHandler)

		// Share resolution is anonymous. The token is the credential; a
		// bearer token sent here is ignored.
		r.Get("/share/note/{token}", server.GetSharedNoteHandler)
		r.Get("/share/task/{token}", server.GetSharedTaskHandler)
		r.Get("/share/{token}", server.GetSharedItemHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)

			r.Post("/auth/logout", server.LogoutHandler)
			r.Get("/auth/profile", server.GetCurrentUserHandler)

			r.Get("/notes", server.ListNotesHandler)
			r.Post("/notes", server.CreateNoteHandler)
			r.Get("/notes/{noteId}", server.GetNoteHandler)
			r.Put("/notes/{noteId}", server.UpdateNoteHandler)
			r.Delete("/notes/{noteId}", server.DeleteNoteHandler)
			r.Put("/notes/{noteId}/pin", server.ToggleNotePinHandler)
			r.Put("/notes/{noteId}/color", server.SetNoteColorHandler)
			r.Post("/notes/{noteId}/share", server.ShareNoteHandler)
			r.Delete("/notes/{noteId}/share", server.RevokeNoteShareHandler)

			r.Get("/tasks", server.ListTasksHandler)
			r.Post("/tasks", server.CreateTaskHandler)
			r.Get("/tasks/stats", server.GetTaskStatsHandler)
			r.Get("/tasks/{taskId}", server.GetTaskHandler)
			r.Put("/tasks/{taskId}", server.UpdateTaskHandler)
			r.Delete("/tasks/{taskId}", server.DeleteTaskHandler)
			r.Put("/tasks/{taskId}/pin", server.ToggleTaskPinHandler)
			r.Put("/tasks/{taskId}/color", server.SetTaskColorHandler)
			r.Post("/tasks/{taskId}/share", server.ShareTaskHandler)
			r.Delete("/tasks/{taskId}/share", server.RevokeTaskShareHandler)

			r.Get("/profile", server.GetProfileHandler)
			r.Put("/profile", server.UpdateProfileHandler)
		})
	})

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
