package postgres

import (
	"accounts/pkg/domain"
	"accounts/pkg/storage"
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable = "users"
)

// duplicateOr maps unique violations to storage.ErrDuplicate and wraps any
// other error with msg.
func duplicateOr(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", msg, storage.ErrDuplicate)
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// StoreUser inserts user and returns the stored row.
func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var stored PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, duplicateOr(err, "could not store user into pg")
	}

	return stored.ToDomain()
}

// UserByID returns the user with the given ID, or nil when it does not exist.
func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

// UserByEmail returns the user owning the verified email, or nil.
func (p *PgSQL) UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("email").Eq(email.String()))
}

func (p *PgSQL) userWhere(ctx context.Context, where goqu.Expression) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(where).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// SetUserEmail sets the verified email of a user and returns the updated row,
// or nil when the user does not exist.
func (p *PgSQL) SetUserEmail(ctx context.Context, id domain.UserID, email domain.Email) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(goqu.Record{
			"email":      email.String(),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, duplicateOr(err, "could not set user email in pg")
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
