package sesmail_test

import (
	"accounts/pkg/domain"
	"accounts/pkg/mailer"
	"accounts/pkg/mailer/sesmail"
	"accounts/pkg/serrors"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeAPI) SendEmail(_ context.Context,
	params *sesv2.SendEmailInput,
	_ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}

	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func newClient(t *testing.T, api sesmail.API) *sesmail.Client {
	t.Helper()

	from, err := domain.NewEmailAddress("no-reply@example.com")
	require.NoError(t, err)

	return sesmail.New(api, sesmail.Options{From: from, VerifyURL: "https://example.com/verify?token="})
}

func message(t *testing.T) (domain.UnverifiedEmail, domain.EmailVerificationToken) {
	t.Helper()

	to, err := domain.NewUnverifiedEmail("alice@example.com")
	require.NoError(t, err)
	token, err := domain.NewEmailVerificationToken("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	return to, token
}

func TestSendVerification(t *testing.T) {
	api := &fakeAPI{}
	to, token := message(t)

	require.NoError(t, newClient(t, api).SendVerification(context.Background(), to, token))

	require.Equal(t, "no-reply@example.com", aws.ToString(api.input.FromEmailAddress))
	require.Equal(t, []string{"alice@example.com"}, api.input.Destination.ToAddresses)
	require.Equal(t, mailer.VerificationSubject, aws.ToString(api.input.Content.Simple.Subject.Data))
	require.Contains(t, aws.ToString(api.input.Content.Simple.Body.Text.Data),
		"https://example.com/verify?token=0123456789abcdef0123456789abcdef")
	require.Nil(t, api.input.Content.Simple.Body.Html)
}

func TestSendVerification_Errors(t *testing.T) {
	to, token := message(t)

	t.Run("throttled", func(t *testing.T) {
		api := &fakeAPI{err: &types.TooManyRequestsException{Message: aws.String("slow down")}}

		err := newClient(t, api).SendVerification(context.Background(), to, token)

		var rlErr *mailer.RateLimitError
		require.ErrorAs(t, err, &rlErr)
		require.ErrorIs(t, err, serrors.ErrRateLimited)
		require.InDelta(t, sesmail.ThrottleBackoff.Seconds(), rlErr.RetryIn(time.Now()).Seconds(), 5)
	})

	t.Run("quota exceeded", func(t *testing.T) {
		api := &fakeAPI{err: &types.LimitExceededException{Message: aws.String("quota")}}

		err := newClient(t, api).SendVerification(context.Background(), to, token)
		require.ErrorIs(t, err, serrors.ErrRateLimited)
	})

	t.Run("rejected", func(t *testing.T) {
		api := &fakeAPI{err: &types.MessageRejected{Message: aws.String("address blacklisted")}}

		err := newClient(t, api).SendVerification(context.Background(), to, token)
		require.ErrorIs(t, err, serrors.ErrBadRequest)
		require.NotErrorIs(t, err, serrors.ErrRateLimited)
	})

	t.Run("transient", func(t *testing.T) {
		api := &fakeAPI{err: errors.New("connection reset")}

		err := newClient(t, api).SendVerification(context.Background(), to, token)
		require.Error(t, err)
		require.NotErrorIs(t, err, serrors.ErrBadRequest)
		require.NotErrorIs(t, err, serrors.ErrRateLimited)
	})
}
