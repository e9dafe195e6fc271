package services

import (
	"context"
	"errors"
	"math"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/realtime"
)

type LocationService interface {
	UpdateLocation(ctx context.Context, req *validators.LocationUpdateRequest) (*models.LocationAck, error)
	GetLiveStatus(ctx context.Context, ambulanceID string) (*models.LiveStatus, error)
}

type locationService struct {
	relay  realtime.Relay
	logger *logger.Logger
}

func NewLocationService(relay realtime.Relay, log *logger.Logger) LocationService {
	return &locationService{
		relay:  relay,
		logger: log,
	}
}

// UpdateLocation acknowledges a sample and publishes it to the relay. Relay
// failures are reported through Relayed, never as an error.
func (s *locationService) UpdateLocation(ctx context.Context, req *validators.LocationUpdateRequest) (*models.LocationAck, error) {
	if appErr := validators.ValidateLocationUpdate(req); appErr != nil {
		return nil, appErr
	}

	sample := models.LocationSample{
		AmbulanceID: req.AmbulanceID,
		Location:    *req.Location,
		Speed:       valueOrZero(req.Speed),
		Heading:     valueOrZero(req.Heading),
		Timestamp:   utils.NowMillis(),
	}

	relayed := false
	if s.relay != nil {
		if err := s.relay.Publish(ctx, realtime.AmbulancePath(sample.AmbulanceID), sample); err != nil {
			s.logger.WithAmbulanceID(sample.AmbulanceID).WithError(err).Warn("failed to relay location sample")
		} else {
			relayed = true
		}
	}

	s.logger.LogLocationSample(sample.AmbulanceID, sample.Location.Lat, sample.Location.Lng, sample.Speed, sample.Heading, relayed)

	return &models.LocationAck{
		Success: true,
		Data:    sample,
		Message: utils.MsgLocationUpdated,
		Relayed: relayed,
	}, nil
}

// GetLiveStatus combines the latest sample with the relayed trip snapshot.
// Distance is the first leg of the primary route; ETA uses the sample speed
// and falls back to the leg duration when the ambulance is stationary.
func (s *locationService) GetLiveStatus(ctx context.Context, ambulanceID string) (*models.LiveStatus, error) {
	if appErr := validators.ValidateAmbulanceID(ambulanceID); appErr != nil {
		return nil, appErr
	}
	if s.relay == nil {
		return nil, models.NewNotFoundError(models.CodeLiveSampleNotFound, "No live location for this ambulance")
	}

	var sample models.LocationSample
	if err := s.relay.Get(ctx, realtime.AmbulancePath(ambulanceID), &sample); err != nil {
		if errors.Is(err, realtime.ErrNotFound) {
			return nil, models.NewNotFoundError(models.CodeLiveSampleNotFound, "No live location for this ambulance")
		}
		s.logger.WithAmbulanceID(ambulanceID).WithError(err).Error("failed to read live sample")
		return nil, models.NewInternalError(err)
	}

	status := &models.LiveStatus{
		AmbulanceID: ambulanceID,
		Sample:      &sample,
	}

	var snapshot models.TripSnapshot
	if err := s.relay.Get(ctx, realtime.TripPath(ambulanceID), &snapshot); err != nil {
		if !errors.Is(err, realtime.ErrNotFound) {
			s.logger.WithAmbulanceID(ambulanceID).WithError(err).Warn("failed to read trip snapshot")
		}
		return status, nil
	}
	status.Trip = &snapshot

	if snapshot.PrimaryRoute == nil || len(snapshot.PrimaryRoute.Legs) == 0 {
		return status, nil
	}

	leg := snapshot.PrimaryRoute.Legs[0]
	distanceKm := utils.MetersToKM(leg.Distance.Value)
	eta, ok := utils.EstimateETAMinutes(distanceKm, sample.Speed)
	if !ok {
		eta = float64(leg.Duration.Value) / 60
	}
	eta = math.Round(eta)
	distanceKm = utils.RoundTo(distanceKm, 1)

	status.DistanceKm = &distanceKm
	status.EtaMin = &eta
	status.DistanceText = leg.Distance.Text

	return status, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
