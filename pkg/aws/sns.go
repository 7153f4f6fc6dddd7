package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSPublisher publishes raw messages to a topic.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn, eventType string, message []byte) error
}

// SNSPublishAPI is the SNS call SNSClient needs.
type SNSPublishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SNSClient struct {
	client SNSPublishAPI
}

func NewSNSClient(cfg sdkaws.Config, s Settings) *SNSClient {
	return NewSNSClientWithAPI(sns.NewFromConfig(cfg, func(o *sns.Options) {
		if ep := s.BaseEndpoint(); ep != nil {
			o.BaseEndpoint = ep
		}
	}))
}

func NewSNSClientWithAPI(api SNSPublishAPI) *SNSClient {
	return &SNSClient{client: api}
}

// Publish sends message to topicArn with an event_type message attribute so
// subscribers can filter.
func (s *SNSClient) Publish(ctx context.Context, topicArn, eventType string, message []byte) error {
	if topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(topicArn),
		Message:  sdkaws.String(string(message)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", topicArn, err)
	}
	return nil
}
