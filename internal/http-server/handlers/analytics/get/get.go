package get

import (
	"context"
	"log/slog"
	"meetly-service/api"
	"meetly-service/pkg/response"
	"meetly-service/pkg/sl"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type AnalyticsGetter interface {
	Analytics(ctx context.Context) (*api.AnalyticsResponse, error)
}

type Response struct {
	response.Response
	Analytics api.AnalyticsResponse `json:"analytics,omitempty"`
}

func New(log *slog.Logger, getter AnalyticsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.analytics.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		analytics, err := getter.Analytics(r.Context())

		if err != nil {
			log.Error("Failed to build analytics", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build analytics"))
			return
		}

		log.Info("Analytics built", slog.Int("total_bookings", analytics.TotalBookings))
		render.JSON(w, r, Response{
			Analytics: *analytics,
		})
	}
}
