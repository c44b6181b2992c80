// Package httpmail provides a mailer.Mailer that delivers messages through the
// JSON API of a transactional email provider.
package httpmail

import (
	"accounts/pkg/domain"
	"accounts/pkg/mailer"
	"accounts/pkg/serrors"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/jx"
)

// Options configure a Client.
type Options struct {
	// Endpoint receives a POST with the JSON message.
	Endpoint string
	// APIKey is sent in the Api-Key header.
	APIKey string
	// From is the sender address.
	From domain.EmailAddress
	// VerifyURL is prefixed to the token to form the verification link.
	VerifyURL string
}

// Client posts messages to the provider. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	options    Options
}

var _ mailer.Mailer = (*Client)(nil)

// New constructs a Client that sends through httpClient.
func New(httpClient *http.Client, options Options) *Client {
	return &Client{
		httpClient: httpClient,
		options:    options,
	}
}

// ParseRateLimit extracts the provider's rate-limit headers. ok is false when
// the response carries none.
func ParseRateLimit(h http.Header) (mailer.RateLimitStatus, bool, error) {
	resetStr := h.Get("X-Rate-Limit-Reset")
	if resetStr == "" {
		return mailer.RateLimitStatus{}, false, nil
	}

	resetAt, err := time.Parse(time.RFC3339Nano, resetStr)
	if err != nil {
		return mailer.RateLimitStatus{}, false, fmt.Errorf("could not parse reset at: %w", err)
	}

	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)

		return n
	}

	return mailer.RateLimitStatus{
		Limit:     atoi(h.Get("X-Rate-Limit-Limit")),
		Remaining: atoi(h.Get("X-Rate-Limit-Remaining")),
		ResetAt:   resetAt,
	}, true, nil
}

func (c *Client) verificationBody(to domain.UnverifiedEmail, token domain.EmailVerificationToken) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("from")
	e.Str(c.options.From.String())
	e.FieldStart("to")
	e.Str(to.String())
	e.FieldStart("subject")
	e.Str(mailer.VerificationSubject)
	e.FieldStart("text")
	e.Str(mailer.VerificationText(c.options.VerifyURL, token))
	e.ObjEnd()

	return e.Bytes()
}

// SendVerification posts the verification message. A 429 response is
// reported as *mailer.RateLimitError and other 4xx responses as
// serrors.ErrBadRequest, since resending the same message cannot succeed.
func (c *Client) SendVerification(ctx context.Context,
	to domain.UnverifiedEmail,
	token domain.EmailVerificationToken) error {
	req, err := http.NewRequestWithContext(ctx,
		http.MethodPost,
		c.options.Endpoint,
		bytes.NewReader(c.verificationBody(to, token)))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.options.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}
	detail := strings.TrimSpace(string(b))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		rl, ok, err := ParseRateLimit(resp.Header)
		if err != nil {
			return fmt.Errorf("could not parse rate limit: %w", err)
		}
		if !ok {
			rl.ResetAt = time.Now().Add(time.Minute)
		}

		return &mailer.RateLimitError{Status: rl, Detail: detail}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return serrors.With(serrors.ErrBadRequest, "message rejected with status %d: %s", resp.StatusCode, detail)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("send failed with status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
