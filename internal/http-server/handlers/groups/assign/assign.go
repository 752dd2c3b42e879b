package assign

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

type InstructorAssigner interface {
	AssignInstructor(ctx context.Context, groupID, instructorID string) (*api.GroupResponse, error)
}

type Response struct {
	response.Response
	Group *api.GroupResponse `json:"group,omitempty"`
}

func New(log *slog.Logger, assigner InstructorAssigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.assign.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		groupID := chi.URLParam(r, "id")
		instructorID := chi.URLParam(r, "instructor_id")

		if groupID == "" || instructorID == "" {
			log.Error("id or instructor_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id and instructor_id are required"))
			return
		}

		group, err := assigner.AssignInstructor(r.Context(), groupID, instructorID)

		if errors.Is(err, response.ErrLocked) {
			log.Error("instructor is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if errors.Is(err, response.ErrInstructorUnavailable) {
			log.Error("instructor is not available for this time slot")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.INSTRUCTOR_UNAVAILABLE), "instructor is not available for this time slot"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("assignment rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), err.Error()))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to assign instructor", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to assign instructor"))
			return
		}

		log.Info("Instructor assigned",
			slog.String("group_id", groupID),
			slog.String("instructor_id", instructorID),
		)

		render.JSON(w, r, Response{
			Group: group,
		})
	}
}
