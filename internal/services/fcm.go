package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"dumptrac/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Notifier is told about every new report.
type Notifier interface {
	NotifyBinFull(ctx context.Context, bin models.Bin, report models.Report) error
}

// FCMService publishes report notifications to a Firebase Cloud Messaging topic
type FCMService struct {
	client *messaging.Client
	topic  string
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(ctx context.Context, credentialsFile, topic string) (*FCMService, error) {
	return newFCMService(ctx, topic, option.WithCredentialsFile(credentialsFile))
}

// NewFCMServiceFromBase64 creates a new FCM service instance from base64-encoded credentials.
// Hosted platforms that cannot mount files pass the service account this way.
func NewFCMServiceFromBase64(ctx context.Context, credentialsBase64, topic string) (*FCMService, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}
	return newFCMService(ctx, topic, option.WithCredentialsJSON(credentialsJSON))
}

func newFCMService(ctx context.Context, topic string, opt option.ClientOption) (*FCMService, error) {
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client, topic: topic}, nil
}

// NotifyBinFull sends a "bin full" push to every device subscribed to the topic
func (s *FCMService) NotifyBinFull(ctx context.Context, bin models.Bin, report models.Report) error {
	message := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: "Bin reported full",
			Body:  fmt.Sprintf("%s needs clearing.", bin.Location),
		},
		Data: map[string]string{
			"type":      "bin_full",
			"report_id": strconv.FormatInt(report.ID, 10),
			"bin_id":    strconv.FormatInt(bin.ID, 10),
			"status":    report.Status,
			"latitude":  bin.Latitude.String(),
			"longitude": bin.Longitude.String(),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("error sending FCM message: %w", err)
	}
	return nil
}
