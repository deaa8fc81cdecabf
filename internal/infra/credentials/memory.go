package credentials

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// MemoryStore holds a Gemini API key in process memory. It is seeded from
// GEMINI_API_KEY and replaced through the settings endpoint.
type MemoryStore struct {
	mu  sync.RWMutex
	key string
}

func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{key: strings.TrimSpace(initial)}
}

func (m *MemoryStore) GeminiAPIKey(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.key, nil
}

func (m *MemoryStore) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

// Chain returns the first non-empty key from its sources. A failing source is
// skipped when a later one has a key; otherwise its error is returned.
type Chain []domain.CredentialSource

func (c Chain) GeminiAPIKey(ctx context.Context) (string, error) {
	var firstErr error
	for _, src := range c {
		if src == nil {
			continue
		}
		key, err := src.GeminiAPIKey(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if key = strings.TrimSpace(key); key != "" {
			return key, nil
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", domain.ErrCredentialMissing
}

var (
	_ domain.CredentialSource = (*Store)(nil)
	_ domain.CredentialSource = (*MemoryStore)(nil)
	_ domain.CredentialSource = Chain(nil)
	_ Setter                  = (*Store)(nil)
	_ Setter                  = (*MemoryStore)(nil)
)
