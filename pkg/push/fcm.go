package push

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMProvider struct {
	client *messaging.Client
}

func NewFCMProvider(ctx context.Context, credentialsFile string) (*FCMProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMProvider{
		client: client,
	}, nil
}

func (f *FCMProvider) Name() string {
	return "fcm"
}

func (f *FCMProvider) SendNotification(ctx context.Context, request *NotificationRequest) (*NotificationResponse, error) {
	response, err := f.client.Send(ctx, buildMessage(request))
	if err != nil {
		return &NotificationResponse{
			Success: false,
			Error:   err.Error(),
		}, fmt.Errorf("fcm send: %w", err)
	}

	return &NotificationResponse{
		MessageID: response,
		Success:   true,
	}, nil
}

func buildMessage(request *NotificationRequest) *messaging.Message {
	message := &messaging.Message{
		Data: request.Data,
	}

	if request.Token != "" {
		message.Token = request.Token
	} else {
		message.Topic = request.Topic
	}

	if request.Title != "" || request.Body != "" {
		message.Notification = &messaging.Notification{
			Title: request.Title,
			Body:  request.Body,
		}
	}

	if request.Priority != "" {
		message.Android = &messaging.AndroidConfig{Priority: request.Priority}
	}

	return message
}
