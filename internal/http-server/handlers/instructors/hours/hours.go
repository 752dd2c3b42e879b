package hours

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type HoursGetter interface {
	InstructorHours(ctx context.Context, instructorID string, weekStart *time.Time) (*api.HoursSummary, error)
}

type Response struct {
	response.Response
	Hours *api.HoursSummary `json:"hours,omitempty"`
}

func New(log *slog.Logger, getter HoursGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructors.hours.New"

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

		var weekStart *time.Time
		if s := r.URL.Query().Get("week_start"); s != "" {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				weekStart = &t
			} else if t, err := time.Parse("2006-01-02", s); err == nil {
				weekStart = &t
			} else {
				log.Error("invalid week_start", slog.String("week_start", s))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "week_start must be a date or RFC3339 timestamp"))
				return
			}
		}

		summary, err := getter.InstructorHours(r.Context(), instructorID, weekStart)

		if errors.Is(err, response.ErrValidation) {
			log.Error("not an instructor", sl.Err(err))
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
			log.Error("Failed to get instructor hours", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get instructor hours"))
			return
		}

		log.Info("Instructor hours retrieved", slog.Float64("current_hours", summary.CurrentHours))

		render.JSON(w, r, Response{
			Hours: summary,
		})
	}
}
