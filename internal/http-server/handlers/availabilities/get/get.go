package get

import (
	"context"
	"errors"
	"log/slog"
	"meetly-service/api"
	"meetly-service/pkg/response"
	"meetly-service/pkg/sl"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilityGetter interface {
	GetAvailability(ctx context.Context, id string) (*api.AvailabilityResponse, error)
	ListAvailabilities(ctx context.Context) ([]*api.AvailabilityResponse, error)
}

type Response struct {
	response.Response
	Availabilities []api.AvailabilityResponse `json:"availabilities,omitempty"`
	Availability   *api.AvailabilityResponse  `json:"availability,omitempty"`
}

func New(log *slog.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availabilities.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			rule, err := getter.GetAvailability(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get availability", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get availability"))
				return
			}

			log.Info("Availability retrieved", slog.String("id", rule.ID))
			render.JSON(w, r, Response{Availability: rule})
			return
		}

		rules, err := getter.ListAvailabilities(r.Context())

		if err != nil {
			log.Error("Failed to list availabilities", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list availabilities"))
			return
		}

		log.Info("Availabilities retrieved", slog.Int("count", len(rules)))
		rulesResponse := make([]api.AvailabilityResponse, len(rules))
		for i, rule := range rules {
			rulesResponse[i] = *rule
		}
		render.JSON(w, r, Response{
			Availabilities: rulesResponse,
		})
	}
}
