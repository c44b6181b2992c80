// Package sesmail provides a mailer.Mailer backed by Amazon SES.
package sesmail

import (
	"accounts/pkg/domain"
	"accounts/pkg/logger"
	"accounts/pkg/mailer"
	"accounts/pkg/serrors"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// DefaultRegion is used when Options.Region is empty.
const DefaultRegion = "us-east-1"

// ThrottleBackoff is how long a throttled message waits before the next attempt.
const ThrottleBackoff = time.Minute

// API is the subset of the SES v2 client used by Client.
type API interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Options configure a Client.
type Options struct {
	Region    string
	AccessKey string
	SecretKey string
	// From is the sender address. It must be verified in SES.
	From domain.EmailAddress
	// VerifyURL is prefixed to the token to form the verification link.
	VerifyURL string
}

// Client sends messages through SES. It is safe for concurrent use.
type Client struct {
	api     API
	options Options
	now     func() time.Time
}

var _ mailer.Mailer = (*Client)(nil)

// New constructs a Client on top of api.
func New(api API, options Options) *Client {
	return &Client{api: api, options: options, now: time.Now}
}

// NewFromConfig loads the AWS configuration and constructs a Client. Static
// credentials are used when both keys are set; otherwise the default
// credential chain applies.
func NewFromConfig(ctx context.Context, options Options) (*Client, error) {
	if options.Region == "" {
		options.Region = DefaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(options.Region)}
	if options.AccessKey != "" && options.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}

	return New(sesv2.NewFromConfig(cfg), options), nil
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

// SendVerification sends the verification message. Throttling is reported as
// *mailer.RateLimitError. Rejections that a retry cannot fix are reported as
// serrors.ErrBadRequest.
func (c *Client) SendVerification(ctx context.Context,
	to domain.UnverifiedEmail,
	token domain.EmailVerificationToken) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.options.From.String()),
		Destination:      &types.Destination{ToAddresses: []string{to.String()}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: content(mailer.VerificationSubject),
				Body: &types.Body{
					Text: content(mailer.VerificationText(c.options.VerifyURL, token)),
				},
			},
		},
		EmailTags: []types.MessageTag{
			{Name: aws.String("kind"), Value: aws.String("email_verification")},
		},
	}

	out, err := c.api.SendEmail(ctx, input)
	if err != nil {
		return c.mapError(err)
	}

	logger.Debug(ctx, "verification email sent",
		logger.Email(to),
		zap.String("message_id", aws.ToString(out.MessageId)))

	return nil
}

func (c *Client) mapError(err error) error {
	var (
		tooMany  *types.TooManyRequestsException
		exceeded *types.LimitExceededException
		rejected *types.MessageRejected
		badReq   *types.BadRequestException
		fromDom  *types.MailFromDomainNotVerifiedException
		notFound *types.NotFoundException
	)

	switch {
	case errors.As(err, &tooMany), errors.As(err, &exceeded):
		return &mailer.RateLimitError{
			Status: mailer.RateLimitStatus{ResetAt: c.now().Add(ThrottleBackoff)},
			Detail: err.Error(),
		}
	case errors.As(err, &rejected), errors.As(err, &badReq), errors.As(err, &fromDom), errors.As(err, &notFound):
		return serrors.Wrap(serrors.ErrBadRequest, err, "message rejected by SES")
	}

	return fmt.Errorf("could not send email: %w", err)
}
