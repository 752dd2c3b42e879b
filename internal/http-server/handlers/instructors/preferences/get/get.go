package get

import (
	"swimpool-service/api"
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type PreferenceLister interface {
	ListPreferences(ctx context.Context, instructorID string) ([]*api.PreferenceResponse, error)
}

type Response struct {
	response.Response
	Preferences []api.PreferenceResponse `json:"preferences"`
}

func New(log *slog.Logger, lister PreferenceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.instructors.preferences.get.New"

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

		preferences, err := lister.ListPreferences(r.Context(), instructorID)

		if err != nil {
			log.Error("Failed to list preferences", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list preferences"))
			return
		}

		log.Info("Preferences retrieved", slog.Int("count", len(preferences)))

		result := make([]api.PreferenceResponse, len(preferences))
		for i, preference := range preferences {
			result[i] = *preference
		}
		render.JSON(w, r, Response{
			Preferences: result,
		})
	}
}
