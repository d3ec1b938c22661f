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

type MeetingPageCreator interface {
	CreateMeetingPage(ctx context.Context, req *api.MeetingPageRequest) (*api.MeetingPageResponse, error)
}

type Request struct {
	api.MeetingPageRequest
}

type Response struct {
	response.Response
	MeetingPage api.MeetingPageResponse `json:"meeting_page,omitempty"`
}

func New(log *slog.Logger, creator MeetingPageCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meeting_pages.create.New"

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

		page, err := creator.CreateMeetingPage(r.Context(), &req.MeetingPageRequest)

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION_FAILED), "validation failed"))
			return
		}

		if errors.Is(err, response.ErrConflict) {
			log.Error("slug already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.CONFLICT), "slug already taken"))
			return
		}

		if err != nil {
			log.Error("Failed to create meeting page", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to create meeting page"))
			return
		}

		log.Info("Meeting page created", slog.String("id", page.ID))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, page)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, page *api.MeetingPageResponse) {
	render.JSON(w, r, Response{
		MeetingPage: *page,
	})
}
