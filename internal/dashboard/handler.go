package dashboard

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwehrle/salescockpit/internal/config"
	"github.com/jwehrle/salescockpit/internal/period"
)

type Handler struct {
	service DashboardService
}

func NewHandler(service DashboardService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	q := Query{
		Timeframe: period.Kind(r.URL.Query().Get("timeframe")),
		TeamName:  r.URL.Query().Get("team"),
	}

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			config.Error(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		q.TargetUserID = &id
	}

	resp, err := h.service.Overview(r.Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Error(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrTargetNotFound):
			config.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrBadTimeframe):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			// Aggregation failures surface with their originating message;
			// zeroed totals are reserved for the legitimate no-data case.
			log.WithError(err).Error("Dashboard aggregation failed")
			config.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
