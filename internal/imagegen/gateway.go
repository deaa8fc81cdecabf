package imagegen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// Gateway turns one EditRequest into exactly one Remote call and classifies
// the outcome.
type Gateway struct {
	remote Remote
	logger zerolog.Logger
}

func NewGateway(remote Remote, logger zerolog.Logger) *Gateway {
	return &Gateway{remote: remote, logger: logger}
}

// Edit validates req, calls the model once and returns the first image it
// produced. Input errors are returned as domain errors before any call; remote
// failures are returned as *EditError.
func (g *Gateway) Edit(ctx context.Context, req EditRequest) (Result, error) {
	remoteReq, err := prepare(req)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	resp, err := g.remote.GenerateContent(ctx, remoteReq)
	if err != nil {
		classified := Classify(err)
		g.logger.Warn().Err(err).Str("kind", string(classified.Kind)).Dur("elapsed", time.Since(start)).Msg("image edit failed")
		return Result{}, classified
	}

	result, err := collect(resp)
	if err != nil {
		g.logger.Info().Str("kind", string(KindOf(err))).Dur("elapsed", time.Since(start)).Msg("image edit returned no image")
		return Result{}, err
	}
	g.logger.Debug().
		Str("mode", string(req.Mode)).
		Str("aspect_ratio", string(remoteReq.AspectRatio)).
		Int("bytes", len(result.Image.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("image edit completed")
	return result, nil
}

func prepare(req EditRequest) (RemoteRequest, error) {
	if strings.TrimSpace(req.SourceImage) == "" {
		return RemoteRequest{}, domain.ErrSourceImageRequired
	}
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		return RemoteRequest{}, domain.ErrInstructionRequired
	}
	ratio, err := ParseAspectRatio(req.AspectRatio)
	if err != nil {
		return RemoteRequest{}, fmt.Errorf("%w: %q", err, req.AspectRatio)
	}

	source, err := ParseImage(req.SourceImage)
	if err != nil {
		return RemoteRequest{}, fmt.Errorf("source image: %w", err)
	}
	var reference *Image
	if strings.TrimSpace(req.ReferenceImage) != "" {
		ref, err := ParseImage(req.ReferenceImage)
		if err != nil {
			return RemoteRequest{}, fmt.Errorf("reference image: %w", err)
		}
		reference = &ref
	}

	return RemoteRequest{
		Segments:    Compose(source, reference, instruction, NormalizeMode(string(req.Mode))),
		AspectRatio: ratio,
	}, nil
}

// collect scans the returned segments in order: the first inline image is the
// result and every text segment is concatenated.
func collect(resp *RemoteResponse) (Result, error) {
	var (
		image *Image
		text  strings.Builder
	)
	if resp != nil {
		for _, seg := range resp.Segments {
			if seg.Image != nil && len(seg.Image.Data) > 0 {
				if image == nil {
					image = seg.Image
				}
				continue
			}
			text.WriteString(seg.Text)
		}
	}

	if image == nil {
		detail := strings.TrimSpace(text.String())
		if detail == "" {
			detail = NoImageDetail
		}
		return Result{}, &EditError{Kind: KindNoImageProduced, Detail: detail}
	}
	return Result{
		ImageURL: pngDataURI(image.Data),
		Text:     text.String(),
		Image:    *image,
	}, nil
}
