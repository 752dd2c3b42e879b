package unassign

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type InstructorUnassigner interface {
	UnassignInstructor(ctx context.Context, groupID string) (*api.GroupResponse, error)
}

type Response struct {
	response.Response
	Group *api.GroupResponse `json:"group,omitempty"`
}

func New(log *slog.Logger, unassigner InstructorUnassigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.unassign.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		groupID := chi.URLParam(r, "id")
		if groupID == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		group, err := unassigner.UnassignInstructor(r.Context(), groupID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to unassign instructor", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to unassign instructor"))
			return
		}

		log.Info("Instructor unassigned", slog.String("group_id", groupID))

		render.JSON(w, r, Response{
			Group: group,
		})
	}
}
