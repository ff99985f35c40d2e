package awsnotify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/micropay/micropay-api/internal/config"
	"github.com/micropay/micropay-api/internal/platform/awsnotify"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTopicClient struct {
	mock.Mock
}

func (m *mockTopicClient) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func (m *mockTopicClient) Subscribe(ctx context.Context, in *sns.SubscribeInput, _ ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.SubscribeOutput)
	return out, args.Error(1)
}

func (m *mockTopicClient) ListSubscriptionsByTopic(ctx context.Context, in *sns.ListSubscriptionsByTopicInput, _ ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.ListSubscriptionsByTopicOutput)
	return out, args.Error(1)
}

type mockMailClient struct {
	mock.Mock
}

func (m *mockMailClient) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sesv2.SendEmailOutput)
	return out, args.Error(1)
}

func channelConfig() config.AWSConfig {
	return config.AWSConfig{
		Region:      "us-east-1",
		TopicARN:    "arn:aws:sns:us-east-1:000000000000:notifications",
		SenderEmail: "no-reply@example.com",
	}
}

func TestChannel_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("returns channel message ID", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("Publish", ctx, mock.MatchedBy(func(in *sns.PublishInput) bool {
			return aws.ToString(in.TopicArn) == channelConfig().TopicARN &&
				aws.ToString(in.Subject) == "MicroPay" &&
				aws.ToString(in.Message) == `{"event":"user_registered"}`
		})).Return(&sns.PublishOutput{MessageId: aws.String("sns-1")}, nil)

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		id, err := ch.Publish(ctx, "MicroPay", []byte(`{"event":"user_registered"}`))
		require.NoError(t, err)
		assert.Equal(t, "sns-1", id)
		topic.AssertExpectations(t)
	})

	t.Run("propagates publish failure", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("Publish", ctx, mock.Anything).Return(nil, errors.New("throttled"))

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		_, err := ch.Publish(ctx, "MicroPay", []byte("{}"))
		assert.Error(t, err)
	})
}

func TestChannel_Subscribe(t *testing.T) {
	ctx := context.Background()

	topic := new(mockTopicClient)
	topic.On("Subscribe", ctx, mock.MatchedBy(func(in *sns.SubscribeInput) bool {
		return aws.ToString(in.Protocol) == "email" &&
			aws.ToString(in.Endpoint) == "user@example.com" &&
			in.ReturnSubscriptionArn
	})).Return(&sns.SubscribeOutput{SubscriptionArn: aws.String("arn:sub:1")}, nil)

	ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
	arn, err := ch.Subscribe(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "arn:sub:1", arn)
}

func TestChannel_CheckSubscription(t *testing.T) {
	ctx := context.Background()

	sub := func(endpoint, arn string) snstypes.Subscription {
		return snstypes.Subscription{
			Endpoint:        aws.String(endpoint),
			SubscriptionArn: aws.String(arn),
		}
	}

	t.Run("confirmed subscription", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("ListSubscriptionsByTopic", ctx, mock.Anything).
			Return(&sns.ListSubscriptionsByTopicOutput{
				Subscriptions: []snstypes.Subscription{
					sub("other@example.com", "PendingConfirmation"),
					sub("user@example.com", "arn:sub:1"),
				},
			}, nil)

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		status, err := ch.CheckSubscription(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, service.SubscriptionConfirmed, status)
	})

	t.Run("pending subscription", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("ListSubscriptionsByTopic", ctx, mock.Anything).
			Return(&sns.ListSubscriptionsByTopicOutput{
				Subscriptions: []snstypes.Subscription{
					sub("user@example.com", "PendingConfirmation"),
				},
			}, nil)

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		status, err := ch.CheckSubscription(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, service.SubscriptionPending, status)
	})

	t.Run("follows pagination to a later page", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("ListSubscriptionsByTopic", ctx, mock.MatchedBy(func(in *sns.ListSubscriptionsByTopicInput) bool {
			return in.NextToken == nil
		})).Return(&sns.ListSubscriptionsByTopicOutput{
			Subscriptions: []snstypes.Subscription{sub("other@example.com", "arn:sub:9")},
			NextToken:     aws.String("page-2"),
		}, nil).Once()
		topic.On("ListSubscriptionsByTopic", ctx, mock.MatchedBy(func(in *sns.ListSubscriptionsByTopicInput) bool {
			return aws.ToString(in.NextToken) == "page-2"
		})).Return(&sns.ListSubscriptionsByTopicOutput{
			Subscriptions: []snstypes.Subscription{sub("user@example.com", "arn:sub:1")},
		}, nil).Once()

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		status, err := ch.CheckSubscription(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, service.SubscriptionConfirmed, status)
		topic.AssertExpectations(t)
	})

	t.Run("absent endpoint is not subscribed", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("ListSubscriptionsByTopic", ctx, mock.Anything).
			Return(&sns.ListSubscriptionsByTopicOutput{}, nil)

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		status, err := ch.CheckSubscription(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, service.SubscriptionNotSubscribed, status)
	})

	t.Run("list failure reports error status", func(t *testing.T) {
		topic := new(mockTopicClient)
		topic.On("ListSubscriptionsByTopic", ctx, mock.Anything).
			Return(nil, errors.New("access denied"))

		ch := awsnotify.NewChannel(topic, new(mockMailClient), channelConfig(), nil)
		status, err := ch.CheckSubscription(ctx, "user@example.com")
		assert.Error(t, err)
		assert.Equal(t, service.SubscriptionError, status)
	})
}

func TestChannel_SendDirect(t *testing.T) {
	ctx := context.Background()

	mail := new(mockMailClient)
	mail.On("SendEmail", ctx, mock.MatchedBy(func(in *sesv2.SendEmailInput) bool {
		return aws.ToString(in.FromEmailAddress) == "no-reply@example.com" &&
			len(in.Destination.ToAddresses) == 1 &&
			in.Destination.ToAddresses[0] == "user@example.com" &&
			aws.ToString(in.Content.Simple.Subject.Data) == "Welcome" &&
			aws.ToString(in.Content.Simple.Body.Text.Data) == "Hello"
	})).Return(&sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}, nil)

	ch := awsnotify.NewChannel(new(mockTopicClient), mail, channelConfig(), nil)
	id, err := ch.SendDirect(ctx, "user@example.com", "Welcome", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "ses-1", id)
	mail.AssertExpectations(t)
}
