package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"flixauth/internal/metrics"
	"flixauth/internal/middlewares"
	"flixauth/internal/models"
	"flixauth/internal/services"
	"flixauth/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService services.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Login answers POST /login with one of three verdicts. Passwords are never
// logged.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Login

	if err := utils.DecodeJSONBody(w, r, &creds); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
		log.Warn().Err(err).Str("request_id", middlewares.RequestIDFromContext(r.Context())).Msg("Invalid request body for Login")
		a.metrics.ObserveInvalidBody()
		utils.RespondWithJSON(w, http.StatusBadRequest, models.LoginResponse{Success: false, Message: models.MessageInvalidBody})
		return
	}

	verdict := a.authService.Verify(creds.Email, creds.Password)
	a.metrics.ObserveVerdict(verdict)

	event := log.Info()
	if verdict != models.Authenticated {
		event = log.Warn()
	}
	event.Str("request_id", middlewares.RequestIDFromContext(r.Context())).
		Str("email", creds.Email).
		Str("verdict", verdict.String()).
		Msg("Login attempt evaluated")

	utils.RespondWithJSON(w, verdict.StatusCode(), verdict.Response())
}
