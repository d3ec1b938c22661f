package update

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

type MeetingPageUpdater interface {
	UpdateMeetingPage(ctx context.Context, id string, req *api.MeetingPageRequest) (*api.MeetingPageResponse, error)
}

type Request struct {
	api.MeetingPageRequest
}

type Response struct {
	response.Response
	MeetingPage api.MeetingPageResponse `json:"meeting_page,omitempty"`
}

func New(log *slog.Logger, updater MeetingPageUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meeting_pages.update.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		page, err := updater.UpdateMeetingPage(r.Context(), id, &req.MeetingPageRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "validation failed"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("slug already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "slug already taken"))
			return
		}

		if err != nil {
			log.Error("Failed to update meeting page", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to update meeting page"))
			return
		}

		log.Info("Meeting page updated", slog.String("id", page.ID))
		responseOK(w, r, page)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, page *api.MeetingPageResponse) {
	render.JSON(w, r, Response{
		MeetingPage: *page,
	})
}
