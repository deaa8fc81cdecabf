package imagegen

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// Kind classifies a failed edit.
type Kind string

const (
	KindNoImageProduced         Kind = "no_image_produced"
	KindQuotaOrBillingExhausted Kind = "quota_or_billing_exhausted"
	KindAuthenticationInvalid   Kind = "authentication_invalid"
	KindUnclassified            Kind = "unclassified"
)

// NoImageDetail is used when the model returned neither an image nor text.
const NoImageDetail = "no image produced, possibly safety-filtered"

// EditError is a classified failure of the remote edit call.
type EditError struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *EditError) Error() string {
	if e.Detail == "" {
		return "imagegen: " + string(e.Kind)
	}
	return fmt.Sprintf("imagegen: %s: %s", e.Kind, e.Detail)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// RemoteError is the structured error a Remote reports for a failed call.
type RemoteError struct {
	Code    int
	Status  string
	Message string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != "" && e.Code != 0:
		return fmt.Sprintf("remote error %d %s: %s", e.Code, e.Status, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
	default:
		return "remote error: " + e.Message
	}
}

var (
	quotaMarkers = []string{"429", "RESOURCE_EXHAUSTED", "Quota exceeded"}
	authMarkers  = []string{"API key not valid", "entity was not found"}
)

// Classify maps a remote failure onto a Kind. Structured RemoteError fields
// are checked first; the message substrings are a fallback for errors that
// carry no code.
func Classify(err error) *EditError {
	if err == nil {
		return nil
	}
	var edit *EditError
	if errors.As(err, &edit) {
		return edit
	}
	if errors.Is(err, domain.ErrCredentialMissing) {
		return &EditError{Kind: KindAuthenticationInvalid, Detail: err.Error(), Err: err}
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		switch {
		case remote.Code == http.StatusTooManyRequests, remote.Status == "RESOURCE_EXHAUSTED":
			return &EditError{Kind: KindQuotaOrBillingExhausted, Detail: remote.Message, Err: err}
		case remote.Code == http.StatusUnauthorized, remote.Code == http.StatusForbidden, remote.Status == "UNAUTHENTICATED", remote.Status == "PERMISSION_DENIED":
			return &EditError{Kind: KindAuthenticationInvalid, Detail: remote.Message, Err: err}
		}
	}

	msg := err.Error()
	switch {
	case containsAny(msg, quotaMarkers):
		return &EditError{Kind: KindQuotaOrBillingExhausted, Detail: msg, Err: err}
	case containsAny(msg, authMarkers):
		return &EditError{Kind: KindAuthenticationInvalid, Detail: msg, Err: err}
	default:
		return &EditError{Kind: KindUnclassified, Detail: msg, Err: err}
	}
}

// KindOf returns the Kind of err, or "" when err is not an edit failure.
func KindOf(err error) Kind {
	var edit *EditError
	if errors.As(err, &edit) {
		return edit.Kind
	}
	return ""
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
