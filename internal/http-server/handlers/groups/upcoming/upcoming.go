package upcoming

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type UpcomingLister interface {
	ListUpcomingGroups(ctx context.Context, skip, limit int) ([]*api.GroupListItem, error)
}

type Response struct {
	response.Response
	Groups []api.GroupListItem `json:"groups"`
}

func New(log *slog.Logger, lister UpcomingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.upcoming.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		skip, limit := pagination(r)

		groups, err := lister.ListUpcomingGroups(r.Context(), skip, limit)

		if err != nil {
			log.Error("Failed to list upcoming groups", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list upcoming groups"))
			return
		}

		log.Info("Upcoming groups retrieved", slog.Int("count", len(groups)))

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
