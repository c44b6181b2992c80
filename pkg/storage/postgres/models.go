package postgres

import (
	"accounts/pkg/domain"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PgUser is the row layout of the users table.
type PgUser struct {
	ID       uuid.UUID      `db:"id"       goqu:"skipinsert"`
	Name     sql.NullString `db:"name"`
	Email    sql.NullString `db:"email"`
	Password string         `db:"password"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

// ToDomain rebuilds the user through the value object constructors, so a row
// that no longer satisfies the rules is reported instead of loaded.
func (p *PgUser) ToDomain() (*domain.User, error) {
	name := domain.NullUserName()
	if p.Name.Valid {
		n, err := domain.NewUserName(p.Name.String)
		if err != nil {
			return nil, fmt.Errorf("invalid name of user %s: %w", p.ID, err)
		}
		name = n
	}

	var email *domain.Email
	if p.Email.Valid {
		e, err := domain.NewEmail(p.Email.String)
		if err != nil {
			return nil, fmt.Errorf("invalid email of user %s: %w", p.ID, err)
		}
		email = &e
	}

	password, err := domain.NewArgon2idPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password of user %s: %w", p.ID, err)
	}

	return &domain.User{
		ID:        domain.UserID(p.ID),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}, nil
}

// FromDomain fills p from user.
func (p *PgUser) FromDomain(user domain.User) {
	name, ok := user.Name.Value()
	*p = PgUser{
		ID:        uuid.UUID(user.ID),
		Name:      sql.NullString{String: name, Valid: ok},
		Password:  user.Password.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  user.UpdatedAt,
			Valid: !user.UpdatedAt.IsZero(),
		},
	}
	if user.Email != nil {
		p.Email = sql.NullString{String: user.Email.String(), Valid: true}
	}
}

// PgVerification is the row layout of the email_verifications table.
type PgVerification struct {
	Token     string    `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	Email     string    `db:"email"`
	ExpiresAt time.Time `db:"expires_at"`
	// CreatedAt is taken from the caller's clock; zero falls back to now().
	CreatedAt time.Time `db:"created_at" goqu:"defaultifempty"`
}

// ToDomain rebuilds the verification through the value object constructors.
func (p *PgVerification) ToDomain() (*domain.EmailVerification, error) {
	token, err := domain.NewEmailVerificationToken(p.Token)
	if err != nil {
		return nil, fmt.Errorf("invalid verification token: %w", err)
	}

	email, err := domain.NewUnverifiedEmail(p.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email of verification: %w", err)
	}

	return &domain.EmailVerification{
		Token:     token,
		UserID:    domain.UserID(p.UserID),
		Email:     email,
		ExpiresAt: p.ExpiresAt,
		CreatedAt: p.CreatedAt,
	}, nil
}

// FromDomain fills p from verification.
func (p *PgVerification) FromDomain(verification domain.EmailVerification) {
	*p = PgVerification{
		Token:     verification.Token.String(),
		UserID:    uuid.UUID(verification.UserID),
		Email:     verification.Email.String(),
		ExpiresAt: verification.ExpiresAt,
		CreatedAt: verification.CreatedAt,
	}
}
