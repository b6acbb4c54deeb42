package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/user/devlearn-go/config"
)

const resetEmailBody = `<html>
  <h1>Reset password link</h1>
  <p>Please use the following link to reset your password</p>
</html>`

// SESSender sends email through AWS SES.
type SESSender struct {
	client *sesv2.Client
	from   string
}

// NewSESSender builds an SES-backed sender. Static credentials from the
// configuration are used when present, otherwise the default AWS credential
// chain (IAM role, env vars, shared config) applies.
func NewSESSender(ctx context.Context, cfg *config.MailConfig) (*SESSender, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESSender{
		client: sesv2.NewFromConfig(awsCfg),
		from:   cfg.FromAddress,
	}, nil
}

// SendPasswordReset sends the password-reset email. Only the trigger is
// implemented; the reset flow itself is completed elsewhere.
func (s *SESSender) SendPasswordReset(ctx context.Context, to string) error {
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		ReplyToAddresses: []string{s.from},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String("Password reset link"),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(resetEmailBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
