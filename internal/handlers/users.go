package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/userhub/internal/apperrors"
	"github.com/example/userhub/internal/handlers/render"
	"github.com/example/userhub/internal/logger"
)

// userID parses the {id} path segment
func userID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func handleListUsers(users userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context())
		if err != nil {
			l.Error("can't list users", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.HTML(w, "users_list.html", list)
	})
}

func handleNewUserForm() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.HTML(w, "user_new.html", nil)
	})
}

func handleCreateUser(users userService, l logger.Logger) http.Handler {
	type createUserForm struct {
		Username string `form:"username" validate:"required,max=255"`
		Password string `form:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindForm[createUserForm](w, r)
		if err != nil {
			return
		}

		_, err = users.Register(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "User already exists", http.StatusBadRequest)
			default:
				l.Error("can't register user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		http.Redirect(w, r, "/users", http.StatusFound)
	})
}

func handleShowUser(users userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			render.Text(w, "User not found", http.StatusNotFound)
			return
		}

		user, err := users.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Text(w, "User not found", http.StatusNotFound)
			default:
				l.Error("can't get user", "id", id, "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.HTML(w, "user_show.html", user)
	})
}

func handleEditUserForm(users userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			render.Text(w, "User not found", http.StatusNotFound)
			return
		}

		user, err := users.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.Text(w, "User not found", http.StatusNotFound)
			default:
				l.Error("can't get user", "id", id, "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.HTML(w, "user_edit.html", user)
	})
}

func handleUpdateUser(users userService, l logger.Logger) http.Handler {
	type updateUserForm struct {
		Username string `form:"username" validate:"required,max=255"`
		Password string `form:"password"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			render.Text(w, "User not found", http.StatusNotFound)
			return
		}

		data, err := render.BindForm[updateUserForm](w, r)
		if err != nil {
			return
		}

		err = users.Update(r.Context(), id, data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "User already exists", http.StatusBadRequest)
			default:
				l.Error("can't update user", "id", id, "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		// Updating a nonexistent id is still a 200, same as the delete flow
		w.WriteHeader(http.StatusOK)
	})
}

func handleDeleteUser(users userService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userID(r)
		if err != nil {
			render.Text(w, "User not found", http.StatusNotFound)
			return
		}

		if err := users.Delete(r.Context(), id); err != nil {
			l.Error("can't delete user", "id", id, "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}
