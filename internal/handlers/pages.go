package handlers

import (
	"net/http"

	"github.com/example/userhub/internal/handlers/render"
	"github.com/example/userhub/internal/logger"
)

// Home page. Touches the database so the schema exists and a broken database
// shows up here instead of on the first registration.
func handleHome(users userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := users.EnsureSchema(r.Context()); err != nil {
			l.Error("database unavailable", "error", err)
			render.HTML(w, "home_unavailable.html", nil)
			return
		}

		render.HTML(w, "home.html", nil)
	})
}
