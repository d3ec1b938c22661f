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

type CustomerGetter interface {
	GetCustomer(ctx context.Context, id string) (*api.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]*api.CustomerResponse, error)
}

type Response struct {
	response.Response
	Customers []api.CustomerResponse `json:"customers,omitempty"`
	Customer  *api.CustomerResponse  `json:"customer,omitempty"`
}

func New(log *slog.Logger, getter CustomerGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.customers.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if id != "" {
			customer, err := getter.GetCustomer(r.Context(), id)

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get customer", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get customer"))
				return
			}

			log.Info("Customer retrieved", slog.String("id", customer.ID))
			render.JSON(w, r, Response{Customer: customer})
			return
		}

		customers, err := getter.ListCustomers(r.Context())

		if err != nil {
			log.Error("Failed to list customers", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list customers"))
			return
		}

		log.Info("Customers retrieved", slog.Int("count", len(customers)))
		customersResponse := make([]api.CustomerResponse, len(customers))
		for i, c := range customers {
			customersResponse[i] = *c
		}
		render.JSON(w, r, Response{
			Customers: customersResponse,
		})
	}
}
