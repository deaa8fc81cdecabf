// Package studio runs one image edit against the caller's daily quota. It is
// the only place where the quota and the image gateway meet.
package studio

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/metrics"
)

// Session is the explicit caller context passed to every operation.
type Session struct {
	Identity domain.Identity
	Locale   string
}

// QuotaManager is the daily allowance used by the studio. A unit is reserved
// before the remote call and refunded when the edit fails.
type QuotaManager interface {
	Initialize(ctx context.Context, id domain.Identity) int
	Reserve(ctx context.Context, id domain.Identity) (remaining int, day string, ok bool)
	Refund(ctx context.Context, id domain.Identity, day string) int
	Reset(ctx context.Context, id domain.Identity) int
	Max() int
}

// Editor performs one remote edit. Invalid input is rejected before the
// remote call.
type Editor interface {
	Edit(ctx context.Context, req imagegen.EditRequest) (imagegen.Result, error)
}

// ClothingChoice selects a preset outfit for clothes mode.
type ClothingChoice struct {
	Preset string
	Detail string
}

// Request is one edit as submitted by a front end. In clothes mode an empty
// Instruction is built from Clothing.
type Request struct {
	Mode           imagegen.Mode
	SourceImage    string
	ReferenceImage string
	Instruction    string
	AspectRatio    string
	Clothing       *ClothingChoice
}

// Status is the caller's allowance for today.
type Status struct {
	Remaining int `json:"remaining"`
	Max       int `json:"max"`
}

// Outcome is a successful edit and the allowance left after it.
type Outcome struct {
	Result    imagegen.Result
	Remaining int
}

// Studio charges edits against the caller's daily allowance.
type Studio struct {
	quota  QuotaManager
	editor Editor
	logger zerolog.Logger
}

// New builds a Studio over a quota manager and an image editor.
func New(quota QuotaManager, editor Editor, logger zerolog.Logger) *Studio {
	return &Studio{quota: quota, editor: editor, logger: logger}
}

// Quota initializes and returns the session's allowance.
func (s *Studio) Quota(ctx context.Context, sess Session) Status {
	return Status{Remaining: s.quota.Initialize(ctx, sess.Identity), Max: s.quota.Max()}
}

// ResetQuota restores the session's allowance to the maximum.
func (s *Studio) ResetQuota(ctx context.Context, sess Session) Status {
	metrics.QuotaResetsTotal.Inc()
	return Status{Remaining: s.quota.Reset(ctx, sess.Identity), Max: s.quota.Max()}
}

// Edit rejects the request when no allowance is left, otherwise reserves one
// unit, performs one remote edit and refunds the unit unless an image came
// back. Concurrent edits of one identity never exceed the daily maximum.
func (s *Studio) Edit(ctx context.Context, sess Session, req Request) (Outcome, error) {
	log := s.logger.With().Str("identity", sess.Identity.Key()).Str("mode", string(req.Mode)).Logger()

	remaining, day, ok := s.quota.Reserve(ctx, sess.Identity)
	if !ok {
		metrics.EditsTotal.WithLabelValues("quota_exhausted").Inc()
		log.Info().Msg("edit rejected, quota exhausted")
		return Outcome{Remaining: 0}, domain.ErrQuotaExhausted
	}

	editReq, err := s.buildRequest(req)
	if err != nil {
		metrics.EditsTotal.WithLabelValues("invalid_input").Inc()
		return Outcome{Remaining: s.quota.Refund(ctx, sess.Identity, day)}, err
	}

	start := time.Now()
	result, err := s.editor.Edit(ctx, editReq)
	if err != nil {
		left := s.quota.Refund(ctx, sess.Identity, day)
		if IsInputError(err) {
			metrics.EditsTotal.WithLabelValues("invalid_input").Inc()
			return Outcome{Remaining: left}, err
		}
		outcome := "unclassified"
		if kind := imagegen.KindOf(err); kind != "" {
			outcome = string(kind)
		}
		metrics.EditsTotal.WithLabelValues(outcome).Inc()
		metrics.EditDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		log.Warn().Err(err).Str("outcome", outcome).Msg("edit failed, quota refunded")
		return Outcome{Remaining: left}, err
	}

	metrics.EditsTotal.WithLabelValues("success").Inc()
	metrics.EditDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	metrics.QuotaConsumedTotal.Inc()
	log.Info().Int("remaining", remaining).Msg("edit completed")
	return Outcome{Result: result, Remaining: remaining}, nil
}

func (s *Studio) buildRequest(req Request) (imagegen.EditRequest, error) {
	mode := imagegen.NormalizeMode(string(req.Mode))
	instruction := strings.TrimSpace(req.Instruction)
	hasReference := strings.TrimSpace(req.ReferenceImage) != ""

	if mode == imagegen.ModeClothes && instruction == "" && req.Clothing != nil {
		built, err := imagegen.ClothingInstruction(req.Clothing.Preset, req.Clothing.Detail, hasReference)
		if err != nil {
			return imagegen.EditRequest{}, err
		}
		instruction = built
	}
	return imagegen.EditRequest{
		Mode:           mode,
		SourceImage:    req.SourceImage,
		ReferenceImage: req.ReferenceImage,
		Instruction:    instruction,
		AspectRatio:    req.AspectRatio,
	}, nil
}

// IsInputError reports whether err is a caller-side validation failure.
func IsInputError(err error) bool {
	for _, target := range []error{
		domain.ErrSourceImageRequired,
		domain.ErrInstructionRequired,
		domain.ErrInvalidImage,
		domain.ErrInvalidAspectRatio,
		domain.ErrUnknownPreset,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
