package services

import (
	"context"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

type AnalyticsService interface {
	GetTripAnalytics(ctx context.Context, filter models.TripAnalyticsFilter) (*models.TripAnalytics, error)
}

type analyticsService struct {
	tripRepo interfaces.TripRepository
	logger   *logger.Logger
}

func NewAnalyticsService(tripRepo interfaces.TripRepository, log *logger.Logger) AnalyticsService {
	return &analyticsService{
		tripRepo: tripRepo,
		logger:   log,
	}
}

// GetTripAnalytics recomputes every metric from the filtered trip set on each call.
func (s *analyticsService) GetTripAnalytics(ctx context.Context, filter models.TripAnalyticsFilter) (*models.TripAnalytics, error) {
	trips, err := s.tripRepo.List(ctx, models.TripFilter{
		AmbulanceID: filter.AmbulanceID,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to load trips for analytics")
		return nil, models.NewInternalError(err)
	}

	return computeTripAnalytics(trips), nil
}

func computeTripAnalytics(trips []*models.Trip) *models.TripAnalytics {
	result := &models.TripAnalytics{
		TotalTrips:       len(trips),
		TripsByAmbulance: make(map[string]int),
	}

	var (
		totalDistance float64
		speedSum      float64
		speedSamples  int
	)

	for _, trip := range trips {
		switch trip.Status {
		case models.TripStatusCompleted:
			result.CompletedTrips++
		case models.TripStatusInProgress:
			result.InProgressTrips++
		case models.TripStatusCancelled:
			result.CancelledTrips++
		}

		if distance, ok := parseOptional(trip.PrimaryDistanceKm); ok {
			totalDistance += distance
		}

		if speed, ok := parseOptional(trip.AverageSpeed); ok {
			speedSum += speed
			speedSamples++
		}

		if trip.AmbulanceID != "" {
			result.TripsByAmbulance[trip.AmbulanceID]++
		}
	}

	result.TotalDistanceKm = utils.RoundTo(totalDistance, 2)
	if result.TotalTrips > 0 {
		result.AverageDistanceKm = utils.RoundTo(totalDistance/float64(result.TotalTrips), 2)
	}
	if speedSamples > 0 {
		result.AverageTripSpeed = utils.RoundTo(speedSum/float64(speedSamples), 2)
	}

	result.TripsByStatus = map[string]int{
		string(models.TripStatusCompleted):  result.CompletedTrips,
		string(models.TripStatusInProgress): result.InProgressTrips,
		string(models.TripStatusCancelled):  result.CancelledTrips,
	}

	return result
}

func parseOptional(value *string) (float64, bool) {
	if value == nil {
		return 0, false
	}
	return models.ParseNumeric(*value)
}
