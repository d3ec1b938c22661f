package get

import (
	"context"
	"errors"
	"log/slog"
	"meetly-service/api"
	"meetly-service/pkg/response"
	"meetly-service/pkg/sl"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingGetter interface {
	GetBooking(ctx context.Context, id string) (*api.BookingResponse, error)
	ListBookings(ctx context.Context, pageID *string, from, to *time.Time, status *string) ([]*api.BookingResponse, error)
	UpcomingBookings(ctx context.Context) ([]*api.BookingResponse, error)
}

type Response struct {
	response.Response
	Bookings []api.BookingResponse `json:"bookings,omitempty"`
	Booking  *api.BookingResponse  `json:"booking,omitempty"`
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			booking, err := getter.GetBooking(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get booking", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get booking"))
				return
			}

			log.Info("Booking retrieved", slog.String("id", booking.ID))
			render.JSON(w, r, Response{Booking: booking})
			return
		}

		var pageID, status *string
		var from, to *time.Time

		if p := r.URL.Query().Get("meeting_page"); p != "" {
			pageID = &p
		}

		if s := r.URL.Query().Get("status"); s != "" {
			status = &s
		}

		if fromStr := r.URL.Query().Get("from"); fromStr != "" {
			if t, err := time.Parse("2006-01-02", fromStr); err == nil {
				from = &t
			} else if t, err := time.Parse(time.RFC3339, fromStr); err == nil {
				from = &t
			}
		}

		if toStr := r.URL.Query().Get("to"); toStr != "" {
			if t, err := time.Parse("2006-01-02", toStr); err == nil {
				to = &t
			} else if t, err := time.Parse(time.RFC3339, toStr); err == nil {
				to = &t
			}
		}

		bookings, err := getter.ListBookings(r.Context(), pageID, from, to, status)

		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		log.Info("Bookings retrieved", slog.Int("count", len(bookings)))
		responseList(w, r, bookings)
	}
}

func NewUpcoming(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.NewUpcoming"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		bookings, err := getter.UpcomingBookings(r.Context())

		if err != nil {
			log.Error("Failed to list upcoming bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list upcoming bookings"))
			return
		}

		log.Info("Upcoming bookings retrieved", slog.Int("count", len(bookings)))
		responseList(w, r, bookings)
	}
}

func responseList(w http.ResponseWriter, r *http.Request, bookings []*api.BookingResponse) {
	bookingsResponse := make([]api.BookingResponse, len(bookings))
	for i, b := range bookings {
		bookingsResponse[i] = *b
	}
	render.JSON(w, r, Response{
		Bookings: bookingsResponse,
	})
}
