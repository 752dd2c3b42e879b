package create

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

type Enroller interface {
	CreateRegistration(ctx context.Context, req *api.RegistrationRequest) (*api.RegistrationResponse, error)
}

type Request struct {
	api.RegistrationRequest
}

type Response struct {
	response.Response
	Registration *api.RegistrationResponse `json:"registration,omitempty"`
}

// New enrolls a visitor into a group. On the admin route the visitor comes
// from the URL instead of the body.
func New(log *slog.Logger, enroller Enroller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registrations.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if visitorID := chi.URLParam(r, "visitor_id"); visitorID != "" {
			req.VisitorID = visitorID
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if req.VisitorID == "" {
			log.Error("visitor_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "visitor_id is required"))
			return
		}

		if req.GroupID == "" {
			log.Error("group_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "group_id is required"))
			return
		}

		registration, err := enroller.CreateRegistration(r.Context(), &req.RegistrationRequest)

		if errors.Is(err, response.ErrLocked) {
			log.Error("group is locked")
			w.WriteHeader(http.StatusLocked)
			render.JSON(w, r, response.Error(string(response.LOCKED), "resource is locked"))
			return
		}

		if errors.Is(err, response.ErrCapacityExceeded) {
			log.Error("group is at full capacity")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CAPACITY_EXCEEDED), "group is at full capacity"))
			return
		}

		if errors.Is(err, response.ErrGenderCapacityExceeded) {
			log.Error("no more spaces available for this gender")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.GENDER_CAPACITY_EXCEEDED), "no more spaces available for this gender"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("registration already exists")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "registration already exists"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to create registration", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create registration"))
			return
		}

		log.Info("Registration created", slog.String("registration_id", registration.ID))

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, Response{
			Registration: registration,
		})
	}
}
