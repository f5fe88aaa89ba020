package reader

import (
	"encoding/json"
	"net/http"

	"github.com/alovak/cardflow-swipe/reader/models"
	"github.com/go-chi/chi/v5"
)

// API is a HTTP API for the reader service
type API struct {
	svc *Service
}

func NewAPI(svc *Service) *API {
	return &API{
		svc: svc,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/swipes", func(r chi.Router) {
		r.Post("/", a.decodeSwipe)
	})
}

// decodeSwipe answers 200 with the card or 422 with the decode error.
func (a *API) decodeSwipe(w http.ResponseWriter, r *http.Request) {
	req := models.SwipeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Raw == "" {
		http.Error(w, "raw is required", http.StatusBadRequest)
		return
	}

	res := a.svc.Process(req.Raw)

	status := http.StatusOK
	if res.Error != nil {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}
