package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/erazemk/sickfits/internal/config"
)

type sendEmailAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client sendEmailAPI
	from   string
}

// New returns an SES mailer, or a LogMailer when no sender is configured.
func New(ctx context.Context, cfg config.Mail) (Mailer, error) {
	if cfg.FromEmail == "" {
		slog.Info("email disabled: SES_FROM_EMAIL not configured")
		return LogMailer{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	slog.Info("email enabled", "from", cfg.FromEmail, "region", cfg.Region)
	return newSESMailer(sesv2.NewFromConfig(awsCfg), cfg.FromName, cfg.FromEmail), nil
}

func newSESMailer(client sendEmailAPI, fromName, fromEmail string) *SESMailer {
	from := fromEmail
	if fromName != "" {
		from = fmt.Sprintf("%s <%s>", fromName, fromEmail)
	}
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	out, err := m.client.SendEmail(ctx, in)
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", msg.To, err)
	}

	slog.Info("email sent", "to", msg.To, "subject", msg.Subject, "message_id", aws.ToString(out.MessageId))
	return nil
}
