package handlers

import (
	"net/http"
)

// Health reports liveness only; it does not touch the quota store or Gemini.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
