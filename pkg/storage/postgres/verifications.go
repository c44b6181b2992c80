package postgres

import (
	"accounts/pkg/domain"
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	verificationsTable = "email_verifications"
)

// StoreVerification inserts a pending email verification.
func (p *PgSQL) StoreVerification(ctx context.Context, verification domain.EmailVerification) error {
	var row PgVerification
	row.FromDomain(verification)

	if _, err := p.Builder.Insert(verificationsTable).
		Rows(row).
		Executor().ExecContext(ctx); err != nil {
		return duplicateOr(err, "could not store verification into pg")
	}

	return nil
}

// VerificationByToken returns the verification identified by token, or nil.
// Expired verifications are returned as well; callers decide with Expired.
func (p *PgSQL) VerificationByToken(ctx context.Context,
	token domain.EmailVerificationToken) (*domain.EmailVerification, error) {
	var row PgVerification
	found, err := p.Builder.From(verificationsTable).
		Where(goqu.I("token").Eq(token.String())).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch verification from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteVerificationsByUser removes every verification of the given user.
func (p *PgSQL) DeleteVerificationsByUser(ctx context.Context, userID domain.UserID) (int64, error) {
	res, err := p.Builder.Delete(verificationsTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete verifications in pg: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not count deleted verifications: %w", err)
	}

	return n, nil
}
