package instructors

import (
	"swimpool-service/api"
	"swimpool-service/internal/service"
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

type AvailabilityLister interface {
	AvailableInstructorsForGroup(ctx context.Context, groupID string, skip, limit int, sortBy string) ([]*api.InstructorAvailability, error)
}

type Response struct {
	response.Response
	Instructors []api.InstructorAvailability `json:"instructors"`
}

func New(log *slog.Logger, lister AvailabilityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.groups.instructors.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		sortBy := r.URL.Query().Get("sort_by")
		if sortBy != "" && sortBy != service.SortByHoursScheduled && sortBy != service.SortByPreferenceMatch {
			log.Error("unknown sort_by", slog.String("sort_by", sortBy))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "sort_by must be hours_scheduled or preference_match"))
			return
		}

		skip, limit := pagination(r)

		instructors, err := lister.AvailableInstructorsForGroup(r.Context(), id, skip, limit, sortBy)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to list available instructors", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list available instructors"))
			return
		}

		log.Info("Available instructors retrieved", slog.Int("count", len(instructors)))

		result := make([]api.InstructorAvailability, len(instructors))
		for i, instructor := range instructors {
			result[i] = *instructor
		}
		render.JSON(w, r, Response{
			Instructors: result,
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
