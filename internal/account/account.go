package account

import (
	"accounts/internal/config"
	"accounts/pkg/clock"
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"accounts/pkg/mailer"
	"accounts/pkg/metrics"
	"accounts/pkg/password"
	"accounts/pkg/serrors"
	"accounts/pkg/storage"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrVerificationExpired is returned for a verification token past its expiry.
var ErrVerificationExpired = serrors.NewSubKind(serrors.ErrBadRequest, "VERIFICATION_EXPIRED")

const tracerName = "accounts/internal/account"

// Options configure verification expiry, job retries and password hashing.
type Options struct {
	// VerificationTTL is the lifetime of a verification token in seconds.
	VerificationTTL int
	// MaxAttempts bounds the delivery attempts of a verification email.
	MaxAttempts int
	// Password holds the Argon2id parameters for new hashes.
	Password password.Params
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		VerificationTTL: cfg.Verification.TTLSeconds,
		MaxAttempts:     cfg.Verification.MaxAttempts,
		Password: password.Params{
			Memory:      cfg.Password.Memory,
			Iterations:  cfg.Password.Iterations,
			Parallelism: cfg.Password.Parallelism,
			SaltLength:  cfg.Password.SaltLength,
			KeyLength:   cfg.Password.KeyLength,
		},
	}
}

// Deps are the collaborators of the service.
type Deps struct {
	Storage storage.Storage
	Mailer  mailer.Mailer
	Clock   clock.Clock
	Metrics *metrics.Account
}

type service struct {
	options Options
	deps    Deps
	hasher  *password.Hasher
	tracer  trace.Tracer
}

var _ Service = (*service)(nil)

// New returns the account service.
func New(deps Deps, options Options) Service {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNoopAccount()
	}

	return &service{
		options: options,
		deps:    deps,
		hasher:  password.NewHasher(options.Password),
		tracer:  otel.Tracer(tracerName),
	}
}

func (s *service) start(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "account."+name)
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// invalid records a validation failure and returns it unchanged.
func (s *service) invalid(ctx context.Context, err error) error {
	s.deps.Metrics.ValidationFailed(ctx, err)
	logger.Debug(ctx, "rejected input", logger.ValidationError(err))

	return err
}

// issueVerification stores a fresh verification for email and queues its
// delivery. It must run inside a transaction.
func (s *service) issueVerification(ctx context.Context,
	tx storage.AllStorage,
	userID domain.UserID,
	email domain.UnverifiedEmail) (*domain.EmailVerification, error) {
	token, err := domain.GenerateEmailVerificationToken()
	if err != nil {
		return nil, err
	}

	verification := domain.EmailVerification{
		Token:     token,
		UserID:    userID,
		Email:     email,
		ExpiresAt: s.deps.Clock.Later(s.options.VerificationTTL),
		CreatedAt: s.deps.Clock.Now(),
	}
	if err := tx.StoreVerification(ctx, verification); err != nil {
		return nil, fmt.Errorf("could not store verification: %w", err)
	}

	if _, err := tx.AddJob(ctx, SendVerificationJobArgs{
		Token:       token.String(),
		maxAttempts: s.options.MaxAttempts,
	}, nil); err != nil {
		return nil, fmt.Errorf("could not add job: %w", err)
	}

	return &verification, nil
}

// ensureEmailFree fails with ErrConflict when a user other than owner has
// already verified email.
func (s *service) ensureEmailFree(ctx context.Context, email domain.UnverifiedEmail, owner *domain.UserID) error {
	verified, err := email.Verified()
	if err != nil {
		return err
	}

	existing, err := s.deps.Storage.UserByEmail(ctx, verified)
	if err != nil {
		return fmt.Errorf("could not get user by email: %w", err)
	}
	if existing != nil && (owner == nil || existing.ID != *owner) {
		return serrors.With(serrors.ErrConflict, "email is already in use")
	}

	return nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (_ *domain.User, err error) {
	ctx, span := s.start(ctx, "Register")
	defer func() { end(span, err) }()

	name := domain.NullUserName()
	if req.Name != nil {
		if name, err = domain.NewUserName(*req.Name); err != nil {
			return nil, s.invalid(ctx, err)
		}
	}
	email, err := domain.NewUnverifiedEmail(req.Email)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}
	plain, err := domain.NewPlainPassword(req.Password)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}

	if err := s.ensureEmailFree(ctx, email, nil); err != nil {
		return nil, err
	}

	hash, err := s.hash(ctx, plain)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	if err := s.deps.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		stored, err := tx.StoreUser(ctx, domain.User{Name: name, Password: hash})
		if err != nil {
			return fmt.Errorf("could not store user: %w", err)
		}
		user = stored

		_, err = s.issueVerification(ctx, tx, stored.ID, email)

		return err
	}); err != nil {
		return nil, fmt.Errorf("could not register user: %w", err)
	}

	s.deps.Metrics.Registered(ctx)
	logger.Info(ctx, "user registered", logger.UserID(user.ID), logger.Email(email))

	return user, nil
}

func (s *service) hash(ctx context.Context, plain domain.PlainPassword) (domain.Argon2idPassword, error) {
	defer s.deps.Metrics.HashObserved(ctx, "hash", time.Now())

	encoded, err := s.hasher.Hash(plain.String())
	if err != nil {
		return domain.Argon2idPassword{}, fmt.Errorf("could not hash password: %w", err)
	}

	hash, err := domain.NewArgon2idPassword(encoded)
	if err != nil {
		return domain.Argon2idPassword{}, serrors.Wrap(serrors.ErrInternal, err, "hasher produced an unusable hash")
	}

	return hash, nil
}

func (s *service) VerifyEmail(ctx context.Context, rawToken string) (_ *domain.User, err error) {
	ctx, span := s.start(ctx, "VerifyEmail")
	defer func() { end(span, err) }()

	token, err := domain.NewEmailVerificationToken(rawToken)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}

	var user *domain.User
	if err := s.deps.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		verification, err := tx.VerificationByToken(ctx, token)
		if err != nil {
			return fmt.Errorf("could not get verification: %w", err)
		}
		if verification == nil {
			return serrors.With(serrors.ErrNotFound, "verification not found")
		}
		if verification.Expired(s.deps.Clock) {
			return serrors.With(ErrVerificationExpired, "verification expired at %s",
				verification.ExpiresAt.Format(time.RFC3339))
		}

		email, err := verification.Email.Verified()
		if err != nil {
			return err
		}

		updated, err := tx.SetUserEmail(ctx, verification.UserID, email)
		if errors.Is(err, storage.ErrDuplicate) {
			return serrors.Wrap(serrors.ErrConflict, err, "email is already in use")
		}
		if err != nil {
			return fmt.Errorf("could not set user email: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "user not found")
		}
		user = updated

		if _, err := tx.DeleteVerificationsByUser(ctx, verification.UserID); err != nil {
			return fmt.Errorf("could not delete verifications: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not verify email: %w", err)
	}

	s.deps.Metrics.Verified(ctx)
	logger.Info(ctx, "email verified", logger.UserID(user.ID), logger.Email(user.Email))

	return user, nil
}

var errInvalidCredentials = serrors.With(serrors.ErrUnauthorized, "invalid email or password")

func (s *service) Login(ctx context.Context, rawEmail, rawPassword string) (_ *domain.User, err error) {
	ctx, span := s.start(ctx, "Login")
	defer func() { end(span, err) }()

	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}
	plain, err := domain.NewPlainPassword(rawPassword)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}

	user, err := s.deps.Storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	start := time.Now()
	ok, err := s.hasher.Verify(plain.String(), user.Password.String())
	s.deps.Metrics.HashObserved(ctx, "verify", start)
	if err != nil {
		return nil, fmt.Errorf("could not verify password: %w", err)
	}
	if !ok {
		logger.Info(ctx, "wrong password", logger.UserID(user.ID))

		return nil, errInvalidCredentials
	}

	return user, nil
}

func (s *service) Profile(ctx context.Context, id domain.UserID) (_ *domain.User, err error) {
	ctx, span := s.start(ctx, "Profile")
	defer func() { end(span, err) }()

	user, err := s.deps.Storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	return user, nil
}

func (s *service) RequestEmailChange(ctx context.Context,
	id domain.UserID,
	rawEmail string) (_ *domain.EmailVerification, err error) {
	ctx, span := s.start(ctx, "RequestEmailChange")
	defer func() { end(span, err) }()

	email, err := domain.NewUnverifiedEmail(rawEmail)
	if err != nil {
		return nil, s.invalid(ctx, err)
	}

	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Email != nil && user.Email.IsSameValue(email) {
		return nil, serrors.With(serrors.ErrConflict, "email is unchanged")
	}
	if err := s.ensureEmailFree(ctx, email, &id); err != nil {
		return nil, err
	}

	var verification *domain.EmailVerification
	if err := s.deps.Storage.WithTx(ctx, func(tx storage.AllStorage) error {
		issued, err := s.issueVerification(ctx, tx, id, email)
		verification = issued

		return err
	}); err != nil {
		return nil, fmt.Errorf("could not request email change: %w", err)
	}

	logger.Info(ctx, "email change requested", logger.UserID(id), logger.Email(email))

	return verification, nil
}

func (s *service) SendVerification(ctx context.Context, rawToken string) (err error) {
	ctx, span := s.start(ctx, "SendVerification")
	defer func() { end(span, err) }()

	token, err := domain.NewEmailVerificationToken(rawToken)
	if err != nil {
		return s.invalid(ctx, err)
	}

	verification, err := s.deps.Storage.VerificationByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("could not get verification: %w", err)
	}
	if verification == nil {
		return serrors.With(serrors.ErrNotFound, "verification not found")
	}
	if verification.Expired(s.deps.Clock) {
		logger.Warn(ctx, "skipping expired verification",
			logger.UserID(verification.UserID),
			zap.Time("expires_at", verification.ExpiresAt))

		return nil
	}

	if err := s.deps.Mailer.SendVerification(ctx, verification.Email, verification.Token); err != nil {
		return fmt.Errorf("could not send verification email: %w", err)
	}

	return nil
}
