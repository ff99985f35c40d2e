// Package awsnotify adapts SNS and SES to the service.NotificationChannel
// capability: SNS carries the broadcast topic, SES the direct email channel.
package awsnotify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/platform/logger"
	"github.com/micropay/micropay-api/internal/service"
)

// pendingConfirmationArn is the placeholder SNS returns in place of a real
// subscription ARN until the recipient confirms the subscription email.
const pendingConfirmationArn = "PendingConfirmation"

// TopicClient is the subset of the SNS API the channel uses.
// *sns.Client satisfies it.
type TopicClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, params *sns.ListSubscriptionsByTopicInput, optFns ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error)
}

// MailClient is the subset of the SES API the channel uses.
// *sesv2.Client satisfies it.
type MailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Channel implements service.NotificationChannel over an SNS topic and an
// SES sender identity.
type Channel struct {
	topic       TopicClient
	mail        MailClient
	topicARN    string
	senderEmail string
	logger      *slog.Logger
}

// NewChannel creates the SNS/SES-backed notification channel.
// If logger is nil, a default logger will be used.
func NewChannel(topic TopicClient, mail MailClient, cfg config.AWSConfig, logger *slog.Logger) *Channel {
	if topic == nil {
		panic("topic client cannot be nil")
	}
	if mail == nil {
		panic("mail client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Channel{
		topic:       topic,
		mail:        mail,
		topicARN:    cfg.TopicARN,
		senderEmail: cfg.SenderEmail,
		logger:      logger.With(slog.String("component", "notification_channel")),
	}
}

// Ensure Channel implements service.NotificationChannel interface
var _ service.NotificationChannel = (*Channel)(nil)

// Subscribe implements service.NotificationChannel.Subscribe
// The subscription stays pending until the recipient confirms by email.
func (c *Channel) Subscribe(ctx context.Context, email string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	out, err := c.topic.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn:              aws.String(c.topicARN),
		Protocol:              aws.String("email"),
		Endpoint:              aws.String(email),
		ReturnSubscriptionArn: true,
	})
	if err != nil {
		log.Warn("topic subscribe failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("subscribing to topic: %w", err)
	}

	arn := aws.ToString(out.SubscriptionArn)
	log.Info("subscription requested",
		slog.String("subscription_arn", arn))
	return arn, nil
}

// CheckSubscription implements service.NotificationChannel.CheckSubscription
// It pages through the topic's subscriptions looking for the email endpoint.
func (c *Channel) CheckSubscription(ctx context.Context, email string) (service.SubscriptionStatus, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var nextToken *string
	for {
		out, err := c.topic.ListSubscriptionsByTopic(ctx, &sns.ListSubscriptionsByTopicInput{
			TopicArn:  aws.String(c.topicARN),
			NextToken: nextToken,
		})
		if err != nil {
			log.Warn("listing topic subscriptions failed",
				slog.String("error", err.Error()))
			return service.SubscriptionError, fmt.Errorf("listing subscriptions: %w", err)
		}

		for _, sub := range out.Subscriptions {
			if aws.ToString(sub.Endpoint) != email {
				continue
			}
			if aws.ToString(sub.SubscriptionArn) == pendingConfirmationArn {
				return service.SubscriptionPending, nil
			}
			return service.SubscriptionConfirmed, nil
		}

		nextToken = out.NextToken
		if nextToken == nil {
			return service.SubscriptionNotSubscribed, nil
		}
	}
}

// Publish implements service.NotificationChannel.Publish
func (c *Channel) Publish(ctx context.Context, subject string, payload []byte) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	out, err := c.topic.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(string(payload)),
	})
	if err != nil {
		log.Warn("topic publish failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("publishing to topic: %w", err)
	}

	messageID := aws.ToString(out.MessageId)
	log.Info("published to topic",
		slog.String("message_id", messageID))
	return messageID, nil
}

// SendDirect implements service.NotificationChannel.SendDirect
// The body is sent as both the plain-text and HTML parts.
func (c *Channel) SendDirect(ctx context.Context, email, subject, body string) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	out, err := c.mail.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(c.senderEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{email},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(body)},
					Html: &sestypes.Content{Data: aws.String("<p>" + body + "</p>")},
				},
			},
		},
	})
	if err != nil {
		log.Warn("direct send failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("sending email: %w", err)
	}

	messageID := aws.ToString(out.MessageId)
	log.Info("direct email sent",
		slog.String("message_id", messageID))
	return messageID, nil
}
