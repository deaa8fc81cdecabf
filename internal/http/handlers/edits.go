package handlers

import (
	"errors"
	"net/http"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/studio"
)

type clothingDTO struct {
	Preset string `json:"preset"`
	Detail string `json:"detail" validate:"max=500"`
}

type editRequest struct {
	Mode           string       `json:"mode" validate:"omitempty,oneof=general clothes reference"`
	SourceImage    string       `json:"source_image"`
	ReferenceImage string       `json:"reference_image"`
	Instruction    string       `json:"instruction" validate:"max=2000"`
	AspectRatio    string       `json:"aspect_ratio"`
	Clothing       *clothingDTO `json:"clothing"`
}

type editResponse struct {
	ImageURL       string `json:"image_url"`
	Text           string `json:"text,omitempty"`
	RemainingQuota int    `json:"remaining_quota"`
}

// Edit runs one image edit for the caller. The allowance is spent only when
// an image comes back.
func (a *App) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !a.decode(w, r, &req) {
		return
	}
	sess := a.session(r)

	in := studio.Request{
		Mode:           imagegen.NormalizeMode(req.Mode),
		SourceImage:    req.SourceImage,
		ReferenceImage: req.ReferenceImage,
		Instruction:    req.Instruction,
		AspectRatio:    req.AspectRatio,
	}
	if req.Clothing != nil {
		in.Clothing = &studio.ClothingChoice{Preset: req.Clothing.Preset, Detail: req.Clothing.Detail}
	}

	out, err := a.Studio.Edit(r.Context(), sess, in)
	if err != nil {
		status, code := editErrorStatus(err)
		if status >= http.StatusInternalServerError {
			log := a.logger(r)
			log.Error().Err(err).Str("code", code).Msg("edit failed")
		}
		a.error(w, status, code, studio.Message(err, sess.Locale))
		return
	}
	a.json(w, http.StatusOK, editResponse{
		ImageURL:       out.Result.ImageURL,
		Text:           out.Result.Text,
		RemainingQuota: out.Remaining,
	})
}

func editErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrQuotaExhausted):
		return http.StatusForbidden, "quota_exhausted"
	case studio.IsInputError(err):
		return http.StatusBadRequest, "bad_request"
	}
	switch imagegen.KindOf(err) {
	case imagegen.KindNoImageProduced:
		return http.StatusUnprocessableEntity, "no_image_produced"
	case imagegen.KindQuotaOrBillingExhausted:
		return http.StatusTooManyRequests, "provider_quota_exhausted"
	case imagegen.KindAuthenticationInvalid:
		return http.StatusBadGateway, "provider_auth_invalid"
	default:
		return http.StatusBadGateway, "provider_failure"
	}
}

// ClothingPresets lists the predefined outfits for clothes mode.
func (a *App) ClothingPresets(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"presets": imagegen.ClothingPresets})
}
