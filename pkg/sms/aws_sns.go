package sms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type AWSSNSProvider struct {
	client   *sns.Client
	region   string
	senderID string
}

func NewAWSSNSProvider(ctx context.Context, region, senderID string) (*AWSSNSProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSNSProvider{
		client:   sns.NewFromConfig(cfg),
		region:   region,
		senderID: senderID,
	}, nil
}

func (a *AWSSNSProvider) Name() string {
	return "sns"
}

func (a *AWSSNSProvider) SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error) {
	attributes := map[string]snsTypes.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String(a.getSMSType(request.Type)),
		},
	}
	if a.senderID != "" {
		attributes["AWS.SNS.SMS.SenderID"] = snsTypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(a.senderID),
		}
	}

	resp, err := a.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(request.To),
		Message:           aws.String(request.Message),
		MessageAttributes: attributes,
	})
	if err != nil {
		return &SMSResponse{
			Status: "failed",
			Error:  err.Error(),
		}, fmt.Errorf("sns publish to %s: %w", request.To, err)
	}

	return &SMSResponse{
		MessageID: aws.ToString(resp.MessageId),
		Status:    "sent",
	}, nil
}

func (a *AWSSNSProvider) getSMSType(messageType string) string {
	if messageType == "promotional" {
		return "Promotional"
	}
	return "Transactional"
}
