package get

import (
	"context"
	"log/slog"
	"meetly-service/internal/schedule"
	"meetly-service/pkg/response"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SlotLister interface {
	AvailableSlots(ctx context.Context, meetingPageID, dateISO, timezone string) []schedule.TimeSlot
}

type Response struct {
	response.Response
	Slots []schedule.TimeSlot `json:"slots"`
}

// New serves the public available-slots read for a booking page. The
// service never fails this call, so the only error path is a missing
// query parameter.
func New(log *slog.Logger, lister SlotLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		meetingPageID := r.URL.Query().Get("meeting_page")
		if meetingPageID == "" {
			log.Error("meeting_page is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "meeting_page is required"))
			return
		}

		date := r.URL.Query().Get("date")
		if date == "" {
			log.Error("date is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "date is required"))
			return
		}

		timezone := r.URL.Query().Get("timezone")

		slots := lister.AvailableSlots(r.Context(), meetingPageID, date, timezone)

		log.Info("Slots retrieved",
			slog.String("meeting_page", meetingPageID),
			slog.String("date", date),
			slog.Int("count", len(slots)),
		)

		render.JSON(w, r, Response{
			Slots: slots,
		})
	}
}
