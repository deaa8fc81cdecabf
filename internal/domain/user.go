package domain

import "strings"

// AnonymousKey namespaces the quota of callers without an identity.
const AnonymousKey = "anonymous"

// Identity is the opaque string that namespaces a quota record, usually an
// email address. The zero value is the anonymous identity.
type Identity string

// NewIdentity normalizes an email-like identifier.
func NewIdentity(raw string) Identity {
	return Identity(strings.ToLower(strings.TrimSpace(raw)))
}

// IsAnonymous reports whether no identity was supplied.
func (i Identity) IsAnonymous() bool {
	return strings.TrimSpace(string(i)) == ""
}

// Key returns the storage key for the identity.
func (i Identity) Key() string {
	if i.IsAnonymous() {
		return AnonymousKey
	}
	return string(i)
}

// UserProfile is the subset of the Google account returned after login.
type UserProfile struct {
	Email   string
	Name    string
	Picture string
	Locale  string
}

// Identity returns the quota identity for the profile.
func (u UserProfile) Identity() Identity {
	return NewIdentity(u.Email)
}
