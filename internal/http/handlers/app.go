package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/middleware"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

// IDTokenVerifier checks a Google ID token.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (domain.UserProfile, error)
}

// KeySetter replaces the Gemini API key used for remote calls.
type KeySetter interface {
	SetGeminiAPIKey(ctx context.Context, key string) error
}

type App struct {
	Studio         *studio.Studio
	GoogleVerifier IDTokenVerifier
	Keys           KeySetter
	JWTSecret      string
	SessionTTL     time.Duration
	MaxUploadBytes int64
	Logger         zerolog.Logger

	validate *validator.Validate
}

func NewApp(s *studio.Studio, logger zerolog.Logger) *App {
	return &App{
		Studio:         s,
		SessionTTL:     24 * time.Hour,
		MaxUploadBytes: 20 << 20,
		Logger:         logger,
		validate:       newValidator(),
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// decode reads a JSON body of at most MaxUploadBytes into dst and validates it.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
		case errors.Is(err, io.EOF):
			a.error(w, http.StatusBadRequest, "bad_request", "empty payload")
		default:
			a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		}
		return false
	}
	if err := a.validateStruct(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return false
	}
	return true
}

func (a *App) session(r *http.Request) studio.Session {
	return studio.Session{
		Identity: middleware.IdentityFromContext(r.Context()),
		Locale:   middleware.LocaleFromContext(r.Context()),
	}
}

func (a *App) logger(r *http.Request) zerolog.Logger {
	return a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
