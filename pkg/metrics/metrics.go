// Package metrics holds the OpenTelemetry instruments of the account service.
// Instruments are exported through whatever MeterProvider backs the meter; the
// API server installs a Prometheus exporter.
package metrics

import (
	"accounts/pkg/valueobject"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// MeterName is the instrumentation scope of the account instruments.
const MeterName = "accounts"

// Account records account lifecycle events.
type Account struct {
	registrations      metric.Int64Counter
	verifications      metric.Int64Counter
	validationFailures metric.Int64Counter
	hashDuration       metric.Float64Histogram
}

// NewAccount creates the account instruments on meter.
func NewAccount(meter metric.Meter) (*Account, error) {
	registrations, err := meter.Int64Counter("accounts_registrations_total",
		metric.WithDescription("Number of users registered"))
	if err != nil {
		return nil, fmt.Errorf("could not create registrations counter: %w", err)
	}

	verifications, err := meter.Int64Counter("accounts_email_verifications_total",
		metric.WithDescription("Number of email addresses verified"))
	if err != nil {
		return nil, fmt.Errorf("could not create verifications counter: %w", err)
	}

	validationFailures, err := meter.Int64Counter("accounts_validation_failures_total",
		metric.WithDescription("Number of rejected value object inputs by family and kind"))
	if err != nil {
		return nil, fmt.Errorf("could not create validation failures counter: %w", err)
	}

	hashDuration, err := meter.Float64Histogram("accounts_password_hash_duration_seconds",
		metric.WithDescription("Time spent hashing or verifying passwords"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create hash duration histogram: %w", err)
	}

	return &Account{
		registrations:      registrations,
		verifications:      verifications,
		validationFailures: validationFailures,
		hashDuration:       hashDuration,
	}, nil
}

// NewNoopAccount returns instruments that record nothing.
func NewNoopAccount() *Account {
	a, err := NewAccount(noop.NewMeterProvider().Meter(MeterName))
	if err != nil {
		panic(fmt.Sprintf("noop meter rejected an instrument: %v", err))
	}

	return a
}

// Registered counts a new user.
func (a *Account) Registered(ctx context.Context) {
	a.registrations.Add(ctx, 1)
}

// Verified counts a completed email verification.
func (a *Account) Verified(ctx context.Context) {
	a.verifications.Add(ctx, 1)
}

// ValidationFailed counts err when it is a value object failure. Other errors
// are ignored.
func (a *Account) ValidationFailed(ctx context.Context, err error) {
	var voErr *valueobject.Error
	if !errors.As(err, &voErr) {
		return
	}

	a.validationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("family", voErr.Family.Code()),
		attribute.String("kind", voErr.Kind().Error()),
	))
}

// HashObserved records how long a hashing operation named op took since start.
func (a *Account) HashObserved(ctx context.Context, op string, start time.Time) {
	a.hashDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("op", op)))
}
