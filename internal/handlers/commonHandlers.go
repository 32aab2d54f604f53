package handlers

import (
	"net/http"

	"flixauth/internal/utils"
)

type CommonHandler struct{}

func NewCommonHandler() *CommonHandler {
	return &CommonHandler{}
}

// HealthHandler reports liveness on the admin listener.
func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
