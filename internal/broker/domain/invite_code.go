package domain

import (
	"strings"
	"time"
)

// InviteCode is a single-use token redeemable for one seat.
//
// A code moves Unused -> Reserved -> Used. While reserved, Used is already
// true and ReservedUntil is set; finalizing clears ReservedUntil, releasing
// reverts the row to unused.
type InviteCode struct {
	ID            int64
	Code          string
	TeamAccountID *int64 // pre-bound account, or the account that took the seat
	Used          bool
	UsedEmail     string
	UsedAt        *time.Time
	ReservedUntil *time.Time
	CreatedAt     time.Time
}

// Reserved reports whether a redemption is in flight for the code.
func (c InviteCode) Reserved() bool {
	return c.Used && c.ReservedUntil != nil
}

// NormalizeCode trims and uppercases user input.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
