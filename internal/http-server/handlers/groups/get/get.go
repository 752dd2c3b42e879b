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

type GroupGetter interface {
	GetGroup(ctx context.Context, id string) (*api.GroupResponse, error)
	ListGroups(ctx context.Context, skip, limit int) ([]*api.GroupListItem, error)
}

type Response struct {
	response.Response
	Group  *api.GroupResponse  `json:"group,omitempty"`
	Groups []api.GroupListItem `json:"groups,omitempty"`
}

func New(log *slog.Logger, getter GroupGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			group, err := getter.GetGroup(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get group", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get group"))
				return
			}

			log.Info("Group retrieved", slog.String("group_id", group.ID))
			render.JSON(w, r, Response{
				Group: group,
			})
			return
		}

		skip, limit := pagination(r)

		groups, err := getter.ListGroups(r.Context(), skip, limit)

		if err != nil {
			log.Error("Failed to list groups", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list groups"))
			return
		}

		log.Info("Groups retrieved", slog.Int("count", len(groups)))
		render.JSON(w, r, Response{
			Groups: dereference(groups),
		})
	}
}

// pagination reads skip/limit query params, falling back to 0/100.
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

func dereference(groups []*api.GroupListItem) []api.GroupListItem {
	result := make([]api.GroupListItem, len(groups))
	for i, g := range groups {
		result[i] = *g
	}
	return result
}
