package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/push"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/sms"
)

// NotificationService tells crews about new dispatches. Delivery is
// best-effort: failures are logged and never surface to the caller.
type NotificationService interface {
	NotifyTripStarted(ctx context.Context, trip *models.Trip)
}

type notificationService struct {
	ambulanceRepo interfaces.AmbulanceRepository
	smsProvider   sms.SMSProvider
	pushProvider  push.PushProvider
	logger        *logger.Logger
}

// NewNotificationService accepts nil providers; the matching channel is skipped.
func NewNotificationService(
	ambulanceRepo interfaces.AmbulanceRepository,
	smsProvider sms.SMSProvider,
	pushProvider push.PushProvider,
	log *logger.Logger,
) NotificationService {
	return &notificationService{
		ambulanceRepo: ambulanceRepo,
		smsProvider:   smsProvider,
		pushProvider:  pushProvider,
		logger:        log,
	}
}

func (s *notificationService) NotifyTripStarted(ctx context.Context, trip *models.Trip) {
	log := s.logger.WithTripID(trip.TripID).WithAmbulanceID(trip.AmbulanceID)
	body := tripStartedMessage(trip)

	if s.smsProvider != nil {
		if err := s.sendSMS(ctx, trip, body); err != nil {
			log.WithError(err).Warn("dispatch sms not sent")
		}
	}

	if s.pushProvider != nil {
		if err := s.sendPush(ctx, trip, body); err != nil {
			log.WithError(err).Warn("dispatch push not sent")
		}
	}
}

func (s *notificationService) sendSMS(ctx context.Context, trip *models.Trip, body string) error {
	ambulance, err := s.ambulanceRepo.GetByID(ctx, trip.AmbulanceID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("ambulance %s is not registered", trip.AmbulanceID)
		}
		return err
	}

	resp, err := s.smsProvider.SendSMS(ctx, &sms.SMSRequest{
		To:      ambulance.ContactNumber,
		Message: body,
		Type:    "transactional",
	})
	if err != nil {
		return fmt.Errorf("%s: %w", s.smsProvider.Name(), err)
	}
	if resp.Error != "" {
		return fmt.Errorf("%s: %s", s.smsProvider.Name(), resp.Error)
	}
	return nil
}

func (s *notificationService) sendPush(ctx context.Context, trip *models.Trip, body string) error {
	resp, err := s.pushProvider.SendNotification(ctx, &push.NotificationRequest{
		Topic: utils.AmbulanceTopicPrefix + trip.AmbulanceID,
		Title: "New dispatch",
		Body:  body,
		Data: map[string]string{
			"tripId":      trip.TripID,
			"ambulanceId": trip.AmbulanceID,
			"status":      string(trip.Status),
			"destLat":     trip.DestLat,
			"destLng":     trip.DestLng,
		},
		Priority: "high",
	})
	if err != nil {
		return fmt.Errorf("%s: %w", s.pushProvider.Name(), err)
	}
	if !resp.Success {
		return fmt.Errorf("%s: %s", s.pushProvider.Name(), resp.Error)
	}
	return nil
}

func tripStartedMessage(trip *models.Trip) string {
	return fmt.Sprintf("Trip %s started for %s. Destination: %s,%s", trip.TripID, trip.AmbulanceID, trip.DestLat, trip.DestLng)
}
