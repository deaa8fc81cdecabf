package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrQuotaExhausted      = errors.New("daily quota exhausted")
	ErrSourceImageRequired = errors.New("source image required")
	ErrInstructionRequired = errors.New("instruction required")
	ErrInvalidImage        = errors.New("invalid image payload")
	ErrInvalidAspectRatio  = errors.New("unsupported aspect ratio")
	ErrUnknownPreset       = errors.New("unknown clothing preset")
	ErrCredentialMissing   = errors.New("gemini api key not configured")
)
