package handlers

import (
	"net/http"
)

type geminiKeyRequest struct {
	Key string `json:"key" validate:"required,max=256"`
}

// SetGeminiKey replaces the API key used for subsequent edits.
func (a *App) SetGeminiKey(w http.ResponseWriter, r *http.Request) {
	if a.Keys == nil {
		a.error(w, http.StatusNotImplemented, "not_configured", "key storage is not configured")
		return
	}
	var req geminiKeyRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Keys.SetGeminiAPIKey(r.Context(), trimmed(req.Key)); err != nil {
		log := a.logger(r)
		log.Error().Err(err).Msg("store gemini key failed")
		a.error(w, http.StatusBadRequest, "bad_request", "failed to store key")
		return
	}
	log := a.logger(r)
	log.Info().Msg("gemini api key updated")
	w.WriteHeader(http.StatusNoContent)
}
