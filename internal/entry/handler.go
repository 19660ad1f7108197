package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jwehrle/salescockpit/internal/config"
)

type Handler struct {
	service EntryService
}

func NewHandler(service EntryService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Error("Invalid request body")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.service.CreateToday(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Error(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrAlreadyLogged):
			config.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrNegativeCounter), errors.Is(err, ErrTodosMisaligned):
			config.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.WithError(err).Error("Failed to create daily entry")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	e, err := h.service.Today(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Error(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrNoEntryToday):
			config.Error(w, http.StatusNotFound, err.Error())
		default:
			log.WithError(err).Error("Failed to load today's entry")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, e)
}
