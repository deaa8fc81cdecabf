package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/imagegen"
)

const defaultModel = "gemini-2.5-flash-image"

// Options controls how the Gemini client is configured.
type Options struct {
	Keys       domain.CredentialSource
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
	// RequestsPerMinute paces outbound calls from this process. Zero disables
	// pacing.
	RequestsPerMinute int
}

// Client is the imagegen.Remote backed by the Gemini API. The API key is
// resolved on every call so a key replaced through the settings endpoint takes
// effect without a restart.
type Client struct {
	keys       domain.CredentialSource
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
	limiter    *rate.Limiter
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; one with a generous timeout is created.
func NewClient(opts Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, errors.New("genai: credential source is required")
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	c := &Client{
		keys:       opts.Keys,
		baseURL:    strings.TrimSpace(opts.BaseURL),
		model:      model,
		httpClient: client,
		logger:     opts.Logger,
	}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return c, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends the segments as one user turn and returns the parts
// of the first candidate.
func (c *Client) GenerateContent(ctx context.Context, req imagegen.RemoteRequest) (*imagegen.RemoteResponse, error) {
	apiKey, err := c.keys.GeminiAPIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve gemini api key: %w", err)
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, domain.ErrCredentialMissing
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("genai: wait for rate limiter: %w", err)
		}
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai: new client: %w", err)
	}

	parts := make([]*genai.Part, 0, len(req.Segments))
	for _, seg := range req.Segments {
		if seg.Image != nil {
			parts = append(parts, genai.NewPartFromBytes(seg.Image.Data, seg.Image.MIMEType))
			continue
		}
		parts = append(parts, genai.NewPartFromText(seg.Text))
	}

	var genCfg *genai.GenerateContentConfig
	if req.AspectRatio != "" {
		genCfg = &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: string(req.AspectRatio)},
		}
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, genCfg)
	if err != nil {
		return nil, toRemoteError(err)
	}

	out := &imagegen.RemoteResponse{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		c.logger.Debug().Str("model", c.model).Msg("genai: response without candidates")
		return out, nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			out.Segments = append(out.Segments, imagegen.Segment{Image: &imagegen.Image{
				MIMEType: part.InlineData.MIMEType,
				Data:     part.InlineData.Data,
			}})
			continue
		}
		if part.Text != "" {
			out.Segments = append(out.Segments, imagegen.Segment{Text: part.Text})
		}
	}
	c.logger.Debug().
		Str("model", c.model).
		Int("segments", len(out.Segments)).
		Msg("genai: generate content completed")
	return out, nil
}

// toRemoteError keeps the structured code and status of API failures.
func toRemoteError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &imagegen.RemoteError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &imagegen.RemoteError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return err
}

var _ imagegen.Remote = (*Client)(nil)
