package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/middleware"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

type googleVerifyRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type googleVerifyResponse struct {
	Token string         `json:"token"`
	User  userProfileDTO `json:"user"`
	Quota studio.Status  `json:"quota"`
}

type userProfileDTO struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Locale  string `json:"locale"`
}

// AuthGoogle exchanges a Google ID token for a session token whose email is
// the quota identity.
func (a *App) AuthGoogle(w http.ResponseWriter, r *http.Request) {
	if a.GoogleVerifier == nil || a.JWTSecret == "" {
		a.error(w, http.StatusNotImplemented, "not_configured", "google login is not configured")
		return
	}
	var req googleVerifyRequest
	if !a.decode(w, r, &req) {
		return
	}
	log := a.logger(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	profile, err := a.GoogleVerifier.VerifyIDToken(ctx, trimmed(req.IDToken))
	if err != nil {
		log.Warn().Err(err).Msg("google verify failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid google token")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	if profile.Locale != "" && middleware.SupportedLocale(profile.Locale) {
		locale = profile.Locale
	}
	profile.Locale = locale

	token, err := middleware.SignJWT(a.JWTSecret, profile, a.SessionTTL)
	if err != nil {
		log.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}

	sess := studio.Session{Identity: profile.Identity(), Locale: locale}
	log.Info().Str("identity", sess.Identity.Key()).Msg("google login")
	a.json(w, http.StatusOK, googleVerifyResponse{
		Token: token,
		User: userProfileDTO{
			Email:   string(profile.Identity()),
			Name:    profile.Name,
			Picture: profile.Picture,
			Locale:  locale,
		},
		Quota: a.Studio.Quota(r.Context(), sess),
	})
}
