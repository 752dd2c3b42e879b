package groups

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type InstructorGroupLister interface {
	ListInstructorGroups(ctx context.Context, instructorID string, skip, limit int) ([]*api.GroupListItem, error)
}

type Response struct {
	response.Response
	Groups []api.GroupListItem `json:"groups"`
}

func New(log *slog.Logger, lister InstructorGroupLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructors.groups.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		instructorID := chi.URLParam(r, "id")
		if instructorID == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		skip, limit := pagination(r)

		groups, err := lister.ListInstructorGroups(r.Context(), instructorID, skip, limit)

		if err != nil {
			log.Error("Failed to list instructor groups", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list instructor groups"))
			return
		}

		log.Info("Instructor groups retrieved", slog.Int("count", len(groups)))

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
