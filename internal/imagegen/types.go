package imagegen

import (
	"context"
	"strings"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// AspectRatio is the output shape passed to the remote model.
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectLandscape AspectRatio = "4:3"
	AspectPortrait  AspectRatio = "3:4"
	AspectWide      AspectRatio = "16:9"
	AspectTall      AspectRatio = "9:16"
)

// AspectRatios lists the supported ratios in menu order.
var AspectRatios = []AspectRatio{AspectSquare, AspectLandscape, AspectPortrait, AspectWide, AspectTall}

// ParseAspectRatio validates raw. An empty value selects 1:1.
func ParseAspectRatio(raw string) (AspectRatio, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AspectSquare, nil
	}
	for _, r := range AspectRatios {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", domain.ErrInvalidAspectRatio
}

// Mode selects the task framing added to the instruction.
type Mode string

const (
	ModeGeneral   Mode = "general"
	ModeClothes   Mode = "clothes"
	ModeReference Mode = "reference"
)

// NormalizeMode maps unknown or empty values to ModeGeneral.
func NormalizeMode(raw string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeClothes, ModeReference:
		return m
	default:
		return ModeGeneral
	}
}

// Image is a decoded image with its content type.
type Image struct {
	MIMEType string
	Data     []byte
}

// Segment is one ordered unit of content, either text or an inline image.
type Segment struct {
	Text  string
	Image *Image
}

// EditRequest is one user edit. Images are data URIs or bare base64 payloads.
type EditRequest struct {
	Mode           Mode
	SourceImage    string
	ReferenceImage string
	Instruction    string
	AspectRatio    string
}

// Result is a successful edit.
type Result struct {
	ImageURL string
	Text     string
	Image    Image
}

// RemoteRequest is the single call made to the image model.
type RemoteRequest struct {
	Segments    []Segment
	AspectRatio AspectRatio
}

// RemoteResponse carries the segments returned by the model, in order.
type RemoteResponse struct {
	Segments []Segment
}

// Remote performs one non-streaming generation call.
type Remote interface {
	GenerateContent(ctx context.Context, req RemoteRequest) (*RemoteResponse, error)
}
