package hc

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle report uptime, version and which storage the engine runs on
func Handle(ver string, app core.App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, app))
	return r
}

func handle(version string, app core.App) http.HandlerFunc {
	storage := "db"
	if app.Memory {
		storage = "memory"
	}

	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"app":     app.Name,
			"storage": storage,
			"uptime":  time.Since(b).Truncate(time.Millisecond).String(),
			"version": version,
		})
	}
}
