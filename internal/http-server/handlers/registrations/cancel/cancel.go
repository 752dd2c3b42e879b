package cancel

import (
	"swimpool-service/pkg/response"
	"swimpool-service/pkg/sl"
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type RegistrationCanceller interface {
	CancelRegistration(ctx context.Context, visitorID, groupID string) (bool, error)
}

type Response struct {
	response.Response
	Removed bool `json:"removed"`
}

func New(log *slog.Logger, canceller RegistrationCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registrations.cancel.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		// the path id is the group to leave
		groupID := chi.URLParam(r, "id")
		if groupID == "" {
			log.Error("group id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "group id is required"))
			return
		}

		visitorID := r.URL.Query().Get("visitor_id")
		if visitorID == "" {
			log.Error("visitor_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "visitor_id is required"))
			return
		}

		removed, err := canceller.CancelRegistration(r.Context(), visitorID, groupID)

		if err != nil {
			log.Error("Failed to cancel registration", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to cancel registration"))
			return
		}

		if !removed {
			log.Error("registration not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "registration not found"))
			return
		}

		log.Info("Registration cancelled",
			slog.String("visitor_id", visitorID),
			slog.String("group_id", groupID),
		)

		render.JSON(w, r, Response{
			Removed: true,
		})
	}
}
