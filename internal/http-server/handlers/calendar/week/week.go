package week

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

type WeekGetter interface {
	CalendarWeek(ctx context.Context, dateISO string) (*api.CalendarWeekResponse, error)
}

type Response struct {
	response.Response
	Week api.CalendarWeekResponse `json:"week,omitempty"`
}

// New serves the dashboard week view. An optional "date" query parameter
// selects the week containing that day; an empty parameter means the
// current week.
func New(log *slog.Logger, getter WeekGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.week.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := r.URL.Query().Get("date")

		week, err := getter.CalendarWeek(r.Context(), date)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "invalid date"))
			return
		}

		if err != nil {
			log.Error("Failed to build calendar week", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to build calendar week"))
			return
		}

		log.Info("Calendar week built", slog.String("week_start", week.WeekStart))
		render.JSON(w, r, Response{
			Week: *week,
		})
	}
}
