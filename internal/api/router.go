package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"refbot/internal/config"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
}

// SetupRoutes настраивает все маршруты административного API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(deps.Config.AdminToken))

		r.Route("/api/admin", func(r chi.Router) {
			// Каталог проектов
			r.Get("/projects", GetProjects)
			r.Post("/projects", CreateProject)
			r.Put("/projects/{id}", UpdateProject)
			r.Delete("/projects/{id}", DeleteProject)

			// Настройки уведомлений о заказах
			r.Get("/settings", GetSettings)
			r.Put("/settings", UpdateSettings)

			// Списки и выгрузки
			r.Get("/members", GetMembers)
			r.Get("/orders", GetOrders)
			r.Get("/export/members", ExportMembersXLSX)
			r.Get("/export/orders", ExportOrdersXLSX)
		})
	})
}
