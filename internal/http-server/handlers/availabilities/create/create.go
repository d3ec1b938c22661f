package create

import (
	"context"
	"errors"
	"log/slog"
	"meetly-service/api"
	"meetly-service/pkg/response"
	"meetly-service/pkg/sl"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type AvailabilityCreator interface {
	CreateAvailability(ctx context.Context, req *api.AvailabilityRequest) (*api.AvailabilityResponse, error)
}

type Request struct {
	api.AvailabilityRequest
}

type Response struct {
	response.Response
	Availability api.AvailabilityResponse `json:"availability,omitempty"`
}

func New(log *slog.Logger, creator AvailabilityCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availabilities.create.New"

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

		log.Info("Request body decoded", slog.Any("request", req))

		rule, err := creator.CreateAvailability(r.Context(), &req.AvailabilityRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "validation failed"))
			return
		}

		if err != nil {
			log.Error("Failed to create availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create availability"))
			return
		}

		log.Info("Availability created", slog.String("id", rule.ID))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, rule)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, rule *api.AvailabilityResponse) {
	render.JSON(w, r, Response{
		Availability: *rule,
	})
}
