package handlers

import (
	"errors"
	"net/http"

	"github.com/example/userhub/internal/apperrors"
	"github.com/example/userhub/internal/handlers/render"
	"github.com/example/userhub/internal/logger"
)

func handleLoginForm() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, "login.html", nil)
	})
}

// Stateless login: credentials are checked on every call, no session is issued.
// Unknown user and wrong password render the same fragment with the same status.
func handleLogin(users userService, l logger.Logger) http.Handler {
	type loginForm struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindForm[loginForm](w, r)
		if err != nil {
			return
		}

		_, err = users.Authenticate(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.HTML(w, "login_invalid.html", nil)
			default:
				l.Error("can't authenticate user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.HTML(w, "login_success.html", nil)
	})
}

func handleLogout() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, "logout.html", nil)
	})
}
