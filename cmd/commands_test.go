package main

import (
	"accounts/internal/config"
	"accounts/pkg/domain"
	"accounts/pkg/mailer"
	"accounts/pkg/mailer/httpmail"
	"accounts/pkg/mailer/sesmail"
	"accounts/pkg/valueobject"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, validateCommand(), "--type", "user_name", "--value", "Alice")
	require.NoError(t, err)
	require.Equal(t, "valid user_name\nlength: 5\n", out)

	out, err = run(t, validateCommand(), "--type", "plain_password", "--value", "short")
	require.ErrorIs(t, err, valueobject.ErrTooShort)
	require.Contains(t, out, "family: INVALID_PASSWORD\nkind: TOO_SHORT\n")
	require.NotContains(t, out, "message: short")

	_, err = run(t, validateCommand(), "--type", "nope", "--value", "x")
	require.ErrorContains(t, err, "unknown value object type")
}

func TestHashPasswordCommand(t *testing.T) {
	var cfg config.Config
	cfg.Password.Memory = 1024
	cfg.Password.Iterations = 1
	cfg.Password.Parallelism = 1
	cfg.Password.SaltLength = 16
	cfg.Password.KeyLength = 32

	out, err := run(t, hashPasswordCommand(&cfg), "correct horse battery staple")
	require.NoError(t, err)

	_, err = domain.NewArgon2idPassword(strings.TrimSpace(out))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "$argon2id$v=19$m=1024,t=1,p=1$"))

	_, err = run(t, hashPasswordCommand(&cfg), "short")
	require.ErrorIs(t, err, domain.ErrInvalidPlainPassword)
}

func TestNewMailer(t *testing.T) {
	var cfg config.Config
	cfg.Mailer.Driver = config.MailerLog
	cfg.Verification.VerifyURL = "https://accounts.local/verify?token="

	m, err := newMailer(context.Background(), &cfg)
	require.NoError(t, err)
	require.Equal(t, mailer.Log{VerifyURL: cfg.Verification.VerifyURL}, m)

	cfg.Mailer.Driver = config.MailerHTTP
	cfg.Mailer.Endpoint = "https://mail.local/v1/send"
	cfg.Mailer.From = "no-reply@accounts.local"
	m, err = newMailer(context.Background(), &cfg)
	require.NoError(t, err)
	require.IsType(t, &httpmail.Client{}, m)

	cfg.Mailer.Driver = config.MailerSES
	cfg.Mailer.Region = "eu-west-1"
	cfg.Mailer.AccessKey = "AKIDEXAMPLE"
	cfg.Mailer.SecretKey = "secret"
	m, err = newMailer(context.Background(), &cfg)
	require.NoError(t, err)
	require.IsType(t, &sesmail.Client{}, m)

	cfg.Mailer.From = "Accounts <no-reply@accounts.local>"
	_, err = newMailer(context.Background(), &cfg)
	require.ErrorIs(t, err, domain.ErrInvalidEmailAddress)
}
