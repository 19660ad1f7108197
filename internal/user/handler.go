package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jwehrle/salescockpit/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto GoogleLoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		log.Warn("Login request without authorization code")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, refreshToken, err := h.service.GoogleLogin(r.Context(), dto.Code)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			config.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		log.WithError(err).Error("Login failed")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	setAuthCookie(w, "jwt", response.Token, accessTokenTTL)
	setAuthCookie(w, "refresh_token", refreshToken, refreshTokenTTL)
	config.JSON(w, http.StatusOK, response)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		log.WithError(err).Warn("Refresh token rejected")
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	setAuthCookie(w, "jwt", accessToken, accessTokenTTL)
	config.JSON(w, http.StatusOK, map[string]string{"token": accessToken})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	response, err := h.service.Me(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			config.Error(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, ErrUserNotFound):
			config.Error(w, http.StatusNotFound, "user not found")
		default:
			log.WithError(err).Error("Failed to load current user")
			config.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	config.JSON(w, http.StatusOK, response)
}

func setAuthCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   os.Getenv("COOKIE_DOMAIN"),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
