// Package auth issues and verifies the RS256 session tokens of the API.
package auth

import (
	"accounts/internal/config"
	"accounts/pkg/clock"
	"accounts/pkg/domain"
	"accounts/pkg/serrors"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer signs session tokens.
type Issuer struct {
	key    *rsa.PrivateKey
	issuer string
	ttl    time.Duration
	clock  clock.Clock
}

// NewIssuer parses the PEM encoded private key. A zero ttl falls back to 24h.
func NewIssuer(privateKeyPEM, issuer string, ttl time.Duration, c clock.Clock) (*Issuer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if c == nil {
		c = clock.System{}
	}

	return &Issuer{key: key, issuer: issuer, ttl: ttl, clock: c}, nil
}

// NewIssuerFromConfig builds an Issuer from the JWT config section.
func NewIssuerFromConfig(cfg *config.Config) (*Issuer, error) {
	return NewIssuer(cfg.JWT.PrivateKey, cfg.JWT.Issuer, cfg.JWT.TTL, clock.System{})
}

// Issue returns a token for subject valid for the issuer's ttl, and its expiry.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	return i.IssueFor(subject, i.ttl)
}

// IssueFor returns a token for subject valid for ttl.
func (i *Issuer) IssueFor(subject string, ttl time.Duration) (string, time.Time, error) {
	now := i.clock.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign JWT: %w", err)
	}

	return signed, expiresAt, nil
}

// Verifier validates session tokens.
type Verifier struct {
	key    *rsa.PublicKey
	issuer string
}

// NewVerifier parses the PEM encoded public key. An empty issuer disables the
// iss check.
func NewVerifier(publicKeyPEM, issuer string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &Verifier{key: key, issuer: issuer}, nil
}

// NewVerifierFromConfig builds a Verifier from the JWT config section.
func NewVerifierFromConfig(cfg *config.Config) (*Verifier, error) {
	return NewVerifier(cfg.JWT.PublicKey, cfg.JWT.Issuer)
}

// Verify checks the signature and registered claims of token and returns the
// user it was issued to. Every failure is reported as serrors.ErrUnauthorized.
func (v *Verifier) Verify(token string) (domain.UserID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	}, opts...); err != nil {
		return domain.UserID{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	id, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return domain.UserID{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	return id, nil
}
