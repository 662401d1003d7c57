package domain

import (
	"errors"
	"strings"
)

// CredentialKind tags how a long-lived credential is turned into a bearer.
type CredentialKind string

const (
	CredentialNone    CredentialKind = ""
	CredentialRefresh CredentialKind = "refresh" // OAuth refresh token, may rotate on exchange
	CredentialSession CredentialKind = "session" // web session cookie, never rotates
	CredentialBearer  CredentialKind = "bearer"  // static bearer used as-is
)

var ErrUnknownCredentialKind = errors.New("unknown credential kind")

// ParseCredentialKind accepts the canonical names plus the short RT/ST/AT
// aliases admins tend to paste.
func ParseCredentialKind(s string) (CredentialKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CredentialNone, nil
	case "refresh", "rt", "refresh_token":
		return CredentialRefresh, nil
	case "session", "st", "session_token":
		return CredentialSession, nil
	case "bearer", "at", "access_token":
		return CredentialBearer, nil
	default:
		return CredentialNone, ErrUnknownCredentialKind
	}
}

// Credential is the single long-lived credential held for an account.
type Credential struct {
	Kind  CredentialKind
	Value string
}

func (c Credential) IsZero() bool {
	return c.Kind == CredentialNone || c.Value == ""
}
