package available

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type AvailableLister interface {
	ListAvailableGroups(ctx context.Context, visitorID string, skip, limit int) ([]*api.GroupListItem, error)
}

type Response struct {
	response.Response
	Groups []api.GroupListItem `json:"groups"`
}

func New(log *slog.Logger, lister AvailableLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.available.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		visitorID := r.URL.Query().Get("visitor_id")
		if visitorID == "" {
			log.Error("visitor_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "visitor_id is required"))
			return
		}

		skip, limit := pagination(r)

		groups, err := lister.ListAvailableGroups(r.Context(), visitorID, skip, limit)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("visitor not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "visitor not found"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("cannot determine availability", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), err.Error()))
			return
		}

		if err != nil {
			log.Error("Failed to list available groups", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list available groups"))
			return
		}

		log.Info("Available groups retrieved", slog.Int("count", len(groups)))

		result := make([]api.GroupListItem, len(groups))
		for i, g := range groups {
			result[i] = *g
		}
		render.JSON(w, r, Response{
			Groups: result,
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
