package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/seatbroker/internal/broker/domain"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: SQLite allows a single writer, and ":memory:" databases
	// are per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) TeamAccounts() store.TeamAccounts { return &teamAccountsRepo{q: s.q} }
func (s *Store) InviteCodes() store.InviteCodes   { return &inviteCodesRepo{q: s.q} }
func (s *Store) Sessions() store.Sessions         { return &sessionsRepo{q: s.q} }
func (s *Store) Settings() store.Settings         { return &settingsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a UNIQUE violation into store.ErrAlreadyExists.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// expectOne maps a zero row count from an :execrows query to ErrNotFound.
func expectOne(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func mapOptionalMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

func mapNullMillis(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromMillis(n.Int64)
	return &t
}

func mapOptionalID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func mapNullID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

func mapTeamAccount(row gen.TeamAccount) domain.TeamAccount {
	return domain.TeamAccount{
		ID:   row.ID,
		Name: row.Name,
		Credential: domain.Credential{
			Kind:  domain.CredentialKind(row.CredentialKind),
			Value: row.Credential,
		},
		BearerToken:       row.BearerToken,
		BearerExpiresAt:   mapNullMillis(row.BearerExpiresAt),
		ExternalAccountID: row.ExternalAccountID,
		SeatsEntitled:     int(row.SeatsEntitled),
		SeatsInUse:        int(row.SeatsInUse),
		PendingInvites:    int(row.PendingInvites),
		Enabled:           row.Enabled,
		ActiveUntil:       row.ActiveUntil,
		LastSyncAt:        mapNullMillis(row.LastSyncAt),
		CreatedAt:         fromMillis(row.CreatedAt),
		UpdatedAt:         fromMillis(row.UpdatedAt),
	}
}

func mapInviteCode(row gen.InviteCode) domain.InviteCode {
	return domain.InviteCode{
		ID:            row.ID,
		Code:          row.Code,
		TeamAccountID: mapNullID(row.TeamAccountID),
		Used:          row.Used,
		UsedEmail:     row.UsedEmail,
		UsedAt:        mapNullMillis(row.UsedAt),
		ReservedUntil: mapNullMillis(row.ReservedUntil),
		CreatedAt:     fromMillis(row.CreatedAt),
	}
}

func mapSession(row gen.Session) domain.Session {
	return domain.Session{
		Realm:     domain.Realm(row.Realm),
		TokenHash: row.TokenHash,
		CreatedAt: fromMillis(row.CreatedAt),
		ExpiresAt: fromMillis(row.ExpiresAt),
	}
}
