package domain

import (
	"errors"
	"time"
)

// Realm separates independent session populations.
type Realm string

const (
	RealmAdmin  Realm = "admin"
	RealmAccess Realm = "access"
)

const (
	AdminSessionTTL  = 24 * time.Hour
	AccessSessionTTL = 7 * 24 * time.Hour
)

var ErrUnknownRealm = errors.New("unknown session realm")

// TTL returns the session lifetime for the realm.
func (r Realm) TTL() time.Duration {
	if r == RealmAccess {
		return AccessSessionTTL
	}
	return AdminSessionTTL
}

// CookieName is the cookie carrying sessions of this realm.
func (r Realm) CookieName() string {
	return string(r) + "_session"
}

func (r Realm) Valid() bool {
	return r == RealmAdmin || r == RealmAccess
}

// Session stores only the fingerprint of the bearer token handed out.
type Session struct {
	Realm     Realm
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}
