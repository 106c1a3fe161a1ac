package paysheet

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
)

// API is the HTTP surface for the preauthorization workflow. It is a thin
// shell over Service: decode the request, run the workflow, map the result
// status to an HTTP code.
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{service: service}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Post("/preauthorizations", a.createPreauthorization)
}

type createPreauthorizationRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

func (a *API) createPreauthorization(w http.ResponseWriter, r *http.Request) {
	var create createPreauthorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := a.service.Preauthorize(r.Context(), create.AmountCents, create.Description)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCodeFor(result.Status))
	json.NewEncoder(w).Encode(result)
}

func statusCodeFor(status models.ResultStatus) int {
	switch status {
	case models.StatusAuthorized, models.StatusMock:
		return http.StatusOK
	case models.StatusDeclined:
		return http.StatusPaymentRequired
	case models.StatusUserCancelled:
		return http.StatusConflict
	case models.StatusConfigurationError:
		return http.StatusUnprocessableEntity
	case models.StatusTransportError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
