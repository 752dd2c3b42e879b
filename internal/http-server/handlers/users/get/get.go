package get

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type UserGetter interface {
	GetUser(ctx context.Context, id string) (*api.UserResponse, error)
	ListUsers(ctx context.Context, role *string, skip, limit int) ([]*api.UserResponse, error)
}

type Response struct {
	response.Response
	User  *api.UserResponse  `json:"user,omitempty"`
	Users []api.UserResponse `json:"users,omitempty"`
}

func New(log *slog.Logger, getter UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			user, err := getter.GetUser(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get user"))
				return
			}

			log.Info("User retrieved", slog.String("user_id", user.ID))
			render.JSON(w, r, Response{
				User: user,
			})
			return
		}

		var rolePtr *string
		if role := r.URL.Query().Get("role"); role != "" {
			rolePtr = &role
		}

		skip, limit := pagination(r)

		users, err := getter.ListUsers(r.Context(), rolePtr, skip, limit)

		if errors.Is(err, response.ErrValidation) {
			log.Error("invalid role filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), err.Error()))
			return
		}

		if err != nil {
			log.Error("Failed to list users", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list users"))
			return
		}

		log.Info("Users retrieved", slog.Int("count", len(users)))

		result := make([]api.UserResponse, len(users))
		for i, user := range users {
			result[i] = *user
		}
		render.JSON(w, r, Response{
			Users: result,
		})
	}
}

func pagination(r *http.Request) (int, int) {
	skip := 0
	limit := 100

	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}

	return skip, limit
}
