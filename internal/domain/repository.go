package domain

import "context"

// QuotaRepository persists one QuotaRecord per identity. Load reports
// found=false when no record exists.
type QuotaRepository interface {
	Load(ctx context.Context, id Identity) (rec QuotaRecord, found bool, err error)
	Save(ctx context.Context, id Identity, rec QuotaRecord) error
}

// CredentialSource resolves the Gemini API key used for a remote call.
type CredentialSource interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}
