package routes

import (
	"net/http"

	"github.com/Dosada05/kicker-tournament/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/kicker-tournament/docs" // регистрирует swagger-спецификацию
)

// SetupRoutes mounts the API, the websocket endpoint and the API docs on router.
func SetupRoutes(
	router chi.Router,
	allowedOrigins []string,
	tournamentHandler *handlers.TournamentHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.HealthHandler)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/ws/tournaments/{name}", webSocketHandler.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Post("/", tournamentHandler.CreateHandler)
			r.Get("/current", tournamentHandler.CurrentHandler)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetHandler)
				r.Post("/select", tournamentHandler.SelectHandler)

				r.Post("/teams", tournamentHandler.AddTeamHandler)
				r.Post("/teams/import", tournamentHandler.ImportTeamsHandler)

				r.Put("/groups", tournamentHandler.AssignGroupsHandler)
				r.Post("/groups/draw", tournamentHandler.DrawGroupsHandler)

				r.Post("/schedule", tournamentHandler.GenerateScheduleHandler)
				r.Put("/matches/{matchNumber}", tournamentHandler.RecordGroupScoreHandler)
				r.Get("/standings", tournamentHandler.StandingsHandler)
				r.Get("/progress", tournamentHandler.ProgressHandler)

				r.Post("/knockout", tournamentHandler.GenerateKnockoutHandler)
				r.Post("/knockout/advance", tournamentHandler.AdvanceKnockoutHandler)
				r.Put("/knockout/{round}", tournamentHandler.RecordKnockoutScoreHandler)
			})
		})

		r.Get("/roster", adminHandler.ListRosterHandler)
		r.Post("/tools/duration", adminHandler.EstimateDurationHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/snapshots", adminHandler.ListSnapshotsHandler)
			r.Post("/snapshots", adminHandler.SnapshotHandler)
		})
	})
}
