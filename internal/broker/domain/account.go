package domain

import "time"

// TeamAccount is one external team workspace whose seats are brokered.
type TeamAccount struct {
	ID   int64
	Name string

	Credential Credential

	// Cached short-lived bearer for Credential. Empty until the first exchange.
	BearerToken     string
	BearerExpiresAt *time.Time

	// ExternalAccountID is the workspace id on the remote side. Empty until
	// configured by an admin or auto-detected.
	ExternalAccountID string

	SeatsEntitled  int
	SeatsInUse     int
	PendingInvites int

	Enabled     bool
	ActiveUntil string // as reported by the remote subscription endpoint
	LastSyncAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available is the advisory number of free seats. It may be negative when
// the ledger has overshot.
func (a TeamAccount) Available() int {
	return a.SeatsEntitled - a.SeatsInUse - a.PendingInvites
}

// Selectable reports whether the account may receive invites at all.
func (a TeamAccount) Selectable() bool {
	return a.Enabled && a.ExternalAccountID != ""
}

// BearerFresh reports whether the cached bearer is usable at now with at
// least margin left before it expires.
func (a TeamAccount) BearerFresh(now time.Time, margin time.Duration) bool {
	if a.BearerToken == "" || a.BearerExpiresAt == nil {
		return false
	}
	return a.BearerExpiresAt.After(now.Add(margin))
}

// SeatSync is a snapshot of the remote seat counters for one account.
type SeatSync struct {
	SeatsInUse     int
	SeatsEntitled  int
	PendingInvites int
	ActiveUntil    string
	SyncedAt       time.Time
}
