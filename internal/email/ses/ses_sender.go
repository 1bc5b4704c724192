package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"latrack/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendRegistrationDecision(ctx context.Context, toEmail, communeName string, approved bool, reason string) error {
	subject := fmt.Sprintf("Registration decision for %s", communeName)
	var textBody string
	if approved {
		textBody = fmt.Sprintf(
			"The registration of %s for the current assessment period has been approved.\n\nContinue your self-assessment at %s.",
			communeName, s.frontendURL)
	} else {
		textBody = fmt.Sprintf(
			"The registration of %s for the current assessment period has been rejected.\n\nReason: %s\n\nYou may revise and resubmit at %s.",
			communeName, reason, s.frontendURL)
	}
	return s.send(ctx, toEmail, subject, textBody)
}

func (s *sesSender) SendFinalDecision(ctx context.Context, toEmail, communeName string, achieved bool, reason string) error {
	subject := fmt.Sprintf("Assessment decision for %s", communeName)
	var textBody string
	if achieved {
		textBody = fmt.Sprintf(
			"%s has been recognized as meeting the legal access standard.\n\nThe announcement decision is available at %s.",
			communeName, s.frontendURL)
	} else {
		textBody = fmt.Sprintf(
			"The assessment of %s was not approved.\n\nReason: %s\n\nDetails are available at %s.",
			communeName, reason, s.frontendURL)
	}
	return s.send(ctx, toEmail, subject, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
