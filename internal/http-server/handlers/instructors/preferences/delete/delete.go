package delete

import (
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

type PreferenceDeleter interface {
	DeletePreference(ctx context.Context, id, instructorID string) error
	ClearPreferences(ctx context.Context, instructorID string) error
}

// New deletes one preference window, or all of the instructor's windows when
// no preference_id is present in the URL.
func New(log *slog.Logger, deleter PreferenceDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructors.preferences.delete.New"

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

		preferenceID := chi.URLParam(r, "preference_id")

		var err error
		if preferenceID != "" {
			err = deleter.DeletePreference(r.Context(), preferenceID, instructorID)
		} else {
			err = deleter.ClearPreferences(r.Context(), instructorID)
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete preferences", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete preferences"))
			return
		}

		log.Info("Preferences deleted",
			slog.String("instructor_id", instructorID),
			slog.String("preference_id", preferenceID),
		)

		render.JSON(w, r, response.Response{})
	}
}
