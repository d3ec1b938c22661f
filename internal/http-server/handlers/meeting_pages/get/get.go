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

type MeetingPageGetter interface {
	GetMeetingPage(ctx context.Context, id string) (*api.MeetingPageResponse, error)
	GetMeetingPageBySlug(ctx context.Context, slug string) (*api.MeetingPageResponse, error)
	ListMeetingPages(ctx context.Context) ([]*api.MeetingPageResponse, error)
}

type Response struct {
	response.Response
	MeetingPages []api.MeetingPageResponse `json:"meeting_pages,omitempty"`
	MeetingPage  *api.MeetingPageResponse  `json:"meeting_page,omitempty"`
}

func New(log *slog.Logger, getter MeetingPageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meeting_pages.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			page, err := getter.GetMeetingPage(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get meeting page", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get meeting page"))
				return
			}

			log.Info("Meeting page retrieved", slog.String("id", page.ID))
			responseOK(w, r, page)
			return
		}

		pages, err := getter.ListMeetingPages(r.Context())

		if err != nil {
			log.Error("Failed to list meeting pages", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list meeting pages"))
			return
		}

		log.Info("Meeting pages retrieved", slog.Int("count", len(pages)))
		pagesResponse := make([]api.MeetingPageResponse, len(pages))
		for i, p := range pages {
			pagesResponse[i] = *p
		}
		render.JSON(w, r, Response{
			MeetingPages: pagesResponse,
		})
	}
}

// NewBySlug resolves the public booking page by its slug. Inactive pages
// are reported as not found.
func NewBySlug(log *slog.Logger, getter MeetingPageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.meeting_pages.get.NewBySlug"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			log.Error("slug is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "slug is required"))
			return
		}

		page, err := getter.GetMeetingPageBySlug(r.Context(), slug)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to get meeting page by slug", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get meeting page"))
			return
		}

		log.Info("Meeting page retrieved by slug", slog.String("slug", slug))
		responseOK(w, r, page)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, page *api.MeetingPageResponse) {
	render.JSON(w, r, Response{
		MeetingPage: page,
	})
}
