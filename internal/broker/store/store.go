package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrStale is returned by conditional writes whose precondition no
	// longer holds.
	ErrStale = errors.New("store: stale write")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx can hand out the same repos bound to the transaction.
type Store interface {
	TeamAccounts() TeamAccounts
	InviteCodes() InviteCodes
	Sessions() Sessions
	Settings() Settings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// fn must only use the Tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type TeamAccounts interface {
	// CreateTeamAccount inserts the account and returns its id.
	CreateTeamAccount(ctx context.Context, a domain.TeamAccount) (int64, error)

	GetTeamAccount(ctx context.Context, id int64) (domain.TeamAccount, error)

	// ListTeamAccounts returns every account ordered by id.
	ListTeamAccounts(ctx context.Context) ([]domain.TeamAccount, error)

	// ListSelectableTeamAccounts returns enabled accounts with an external
	// account id, ordered by id.
	ListSelectableTeamAccounts(ctx context.Context) ([]domain.TeamAccount, error)

	// UpdateTeamAccount overwrites the admin-editable fields (name,
	// credential, external account id, seats entitled, enabled) together with
	// the cached bearer. Callers clear the bearer when the credential changes.
	UpdateTeamAccount(ctx context.Context, a domain.TeamAccount) error

	// StoreExchange persists a fresh bearer and, when rotated is non-empty,
	// replaces the credential. The write only applies while the stored
	// credential still equals previous; otherwise ErrStale.
	StoreExchange(
		ctx context.Context,
		id int64,
		previous string,
		rotated string,
		bearer string,
		expiresAt time.Time,
	) error

	// IncrementPendingInvites adds one pending invite in a single statement.
	IncrementPendingInvites(ctx context.Context, id int64) error

	// ApplySync overwrites the ledger counters from a remote sync.
	ApplySync(ctx context.Context, id int64, sync domain.SeatSync) error

	DeleteTeamAccount(ctx context.Context, id int64) error
}

type InviteCodes interface {
	// CreateInviteCodes inserts codes in order, stopping at the first
	// failure. Run it under WithTx for all-or-none. ErrAlreadyExists on a
	// duplicate code.
	CreateInviteCodes(ctx context.Context, codes []domain.InviteCode) error

	GetInviteCode(ctx context.Context, code string) (domain.InviteCode, error)

	// ListInviteCodes returns codes newest first.
	ListInviteCodes(ctx context.Context) ([]domain.InviteCode, error)

	// ListUnusedInviteCodes returns unused codes oldest first.
	ListUnusedInviteCodes(ctx context.Context) ([]domain.InviteCode, error)

	// ReserveInviteCode flips used 0->1 for the code, recording email, the
	// reservation token, the reservation time and the lease deadline. It
	// reports false when no unused row matched.
	ReserveInviteCode(ctx context.Context, code, email, reservation string, now, leaseUntil time.Time) (bool, error)

	// ExtendReservation moves the lease deadline to leaseUntil while the
	// reservation token still holds the code and its lease has not passed
	// now. It reports false otherwise.
	ExtendReservation(ctx context.Context, code, reservation string, now, leaseUntil time.Time) (bool, error)

	// FinalizeInviteCode binds the account and clears the reservation.
	// ErrStale when the code is no longer held by the reservation token.
	FinalizeInviteCode(ctx context.Context, code, reservation string, accountID int64) error

	// ReleaseInviteCode reverts a reserved code to unused. It reports false
	// when the code is not held by the reservation token.
	ReleaseInviteCode(ctx context.Context, code, reservation string) (bool, error)

	// ReleaseExpiredReservations reverts reservations whose lease ended
	// before now and returns the released codes.
	ReleaseExpiredReservations(ctx context.Context, now time.Time) ([]string, error)

	CountInviteCodesForAccount(ctx context.Context, accountID int64) (int, error)

	DeleteInviteCode(ctx context.Context, id int64) error

	// DeleteUsedInviteCodes removes finalized codes and returns how many.
	DeleteUsedInviteCodes(ctx context.Context) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSession returns a session by realm and token hash regardless of
	// expiry.
	GetSession(ctx context.Context, realm domain.Realm, tokenHash string) (domain.Session, error)

	DeleteSession(ctx context.Context, realm domain.Realm, tokenHash string) error
	DeleteRealmSessions(ctx context.Context, realm domain.Realm) error

	// DeleteExpiredSessions removes sessions with expires_at <= now.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type Settings interface {
	// GetSetting returns ErrNotFound for unknown keys.
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// InsertSettingIfAbsent never overwrites an existing value.
	InsertSettingIfAbsent(ctx context.Context, key, value string) error

	ListSettings(ctx context.Context) (map[string]string, error)
	DeleteSetting(ctx context.Context, key string) error
}
