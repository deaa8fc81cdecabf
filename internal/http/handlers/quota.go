package handlers

import (
	"net/http"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

// Quota returns the caller's allowance for today, resetting it on the first
// call of a new day.
func (a *App) Quota(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Studio.Quota(r.Context(), a.session(r)))
}

type quotaResetRequest struct {
	Identity string `json:"identity" validate:"omitempty,email"`
}

type quotaResetResponse struct {
	Identity string `json:"identity"`
	studio.Status
}

// ResetQuota is the operator override that restores an identity's allowance.
// An empty identity resets the anonymous bucket.
func (a *App) ResetQuota(w http.ResponseWriter, r *http.Request) {
	var req quotaResetRequest
	if !a.decode(w, r, &req) {
		return
	}
	id := domain.NewIdentity(req.Identity)
	status := a.Studio.ResetQuota(r.Context(), studio.Session{Identity: id})
	log := a.logger(r)
	log.Info().Str("identity", id.Key()).Msg("quota reset by admin")
	a.json(w, http.StatusOK, quotaResetResponse{Identity: id.Key(), Status: status})
}
