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

type RegistrationLister interface {
	ListVisitorRegistrations(ctx context.Context, visitorID string, skip, limit int) ([]*api.RegistrationResponse, error)
	ListGroupRegistrations(ctx context.Context, groupID string, skip, limit int) ([]*api.RegistrationResponse, error)
}

type Response struct {
	response.Response
	Registrations []api.RegistrationResponse `json:"registrations"`
}

func New(log *slog.Logger, lister RegistrationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registrations.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		skip, limit := pagination(r)

		var (
			registrations []*api.RegistrationResponse
			err           error
		)

		if groupID := chi.URLParam(r, "group_id"); groupID != "" {
			registrations, err = lister.ListGroupRegistrations(r.Context(), groupID, skip, limit)
		} else {
			visitorID := r.URL.Query().Get("visitor_id")
			if visitorID == "" {
				log.Error("visitor_id is empty")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "visitor_id is required"))
				return
			}
			registrations, err = lister.ListVisitorRegistrations(r.Context(), visitorID, skip, limit)
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list registrations", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list registrations"))
			return
		}

		log.Info("Registrations retrieved", slog.Int("count", len(registrations)))

		result := make([]api.RegistrationResponse, len(registrations))
		for i, reg := range registrations {
			result[i] = *reg
		}
		render.JSON(w, r, Response{
			Registrations: result,
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
