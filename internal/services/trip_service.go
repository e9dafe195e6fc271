package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

// sideEffectTimeout bounds each notification or archive attempt.
const sideEffectTimeout = 10 * time.Second

type TripService interface {
	StartTrip(ctx context.Context, req *validators.TripCreateRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListTrips(ctx context.Context, query TripQuery, params utils.PaginationParams) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, tripID string, req *validators.TripUpdateRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID string) (*models.Trip, error)
	// Wait blocks until queued notifications and archive uploads finish.
	Wait()
}

// TripQuery holds the conjunctive list filters. Dates compare against
// startTime as strings.
type TripQuery struct {
	AmbulanceID string
	Status      string
	StartDate   string
	EndDate     string
}

type tripService struct {
	tripRepo      interfaces.TripRepository
	notifications NotificationService
	archive       ArchiveService
	logger        *logger.Logger
	now           func() time.Time
	background    sync.WaitGroup
}

// NewTripService accepts nil notification and archive services.
func NewTripService(
	tripRepo interfaces.TripRepository,
	notifications NotificationService,
	archive ArchiveService,
	log *logger.Logger,
) TripService {
	return &tripService{
		tripRepo:      tripRepo,
		notifications: notifications,
		archive:       archive,
		logger:        log,
		now:           time.Now,
	}
}

func (s *tripService) StartTrip(ctx context.Context, req *validators.TripCreateRequest) (*models.Trip, error) {
	if appErr := validators.ValidateTripCreate(req); appErr != nil {
		return nil, appErr
	}

	now := s.now()
	nowISO := utils.FormatTimeISO(now)

	tripID := req.RequestedTripID()
	if tripID == "" {
		tripID = utils.GenerateTripID(now)
	}

	status := models.TripStatus(req.Status)
	if status == "" {
		status = models.TripStatusInProgress
	}

	trip := &models.Trip{
		TripID:             tripID,
		AmbulanceID:        req.AmbulanceID,
		DriverName:         req.DriverName,
		VehicleNumber:      req.VehicleNumber,
		StartLat:           string(req.StartLat),
		StartLng:           string(req.StartLng),
		DestLat:            string(req.DestLat),
		DestLng:            string(req.DestLng),
		PrimaryDistanceKm:  req.PrimaryDistanceKm.Ptr(),
		ShortcutDistanceKm: req.ShortcutDistanceKm.Ptr(),
		EtaMin:             req.EtaMin.Ptr(),
		AverageSpeed:       req.AverageSpeed.Ptr(),
		PrimaryRoute:       req.PrimaryRoute.Ptr(),
		ShortcutRoute:      req.ShortcutRoute.Ptr(),
		StartTime:          nowISO,
		Status:             status,
		CreatedAt:          nowISO,
		UpdatedAt:          nowISO,
	}

	if req.EndTime != "" {
		endTime, err := utils.NormalizeTimeISO(req.EndTime)
		if err != nil {
			return nil, models.NewValidationError(models.CodeInvalidEndTime, "endTime must be an ISO-8601 timestamp")
		}
		trip.EndTime = &endTime
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, models.NewDuplicateError(models.CodeDuplicateTripID, "A trip with this ID already exists")
		}
		s.logger.WithTripID(trip.TripID).WithError(err).Error("failed to create trip")
		return nil, models.NewInternalError(err)
	}

	s.logger.LogTripEvent(trip.TripID, trip.AmbulanceID, "started", map[string]interface{}{"status": trip.Status})

	if s.notifications != nil {
		started := *trip
		s.runDetached(ctx, func(ctx context.Context) {
			s.notifications.NotifyTripStarted(ctx, &started)
		})
	}

	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	if appErr := validators.ValidateTripID(tripID); appErr != nil {
		return nil, appErr
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, s.translate(err)
	}
	return trip, nil
}

func (s *tripService) ListTrips(ctx context.Context, query TripQuery, params utils.PaginationParams) ([]*models.Trip, error) {
	if appErr := validators.ValidateTripStatusFilter(query.Status); appErr != nil {
		return nil, appErr
	}

	trips, err := s.tripRepo.List(ctx, models.TripFilter{
		AmbulanceID: query.AmbulanceID,
		Status:      models.TripStatus(query.Status),
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to list trips")
		return nil, models.NewInternalError(err)
	}

	return trips, nil
}

// UpdateTrip applies the supplied fields in one store call. Setting status to
// completed without an endTime closes the trip at the current time unless it
// already has an end time.
func (s *tripService) UpdateTrip(ctx context.Context, tripID string, req *validators.TripUpdateRequest) (*models.Trip, error) {
	if appErr := validators.ValidateTripID(tripID); appErr != nil {
		return nil, appErr
	}
	if appErr := validators.ValidateTripUpdate(req); appErr != nil {
		return nil, appErr
	}

	nowISO := utils.FormatTimeISO(s.now())
	update := &models.TripUpdate{
		AmbulanceID:        req.AmbulanceID,
		DriverName:         req.DriverName,
		VehicleNumber:      req.VehicleNumber,
		StartLat:           req.StartLat.Ptr(),
		StartLng:           req.StartLng.Ptr(),
		DestLat:            req.DestLat.Ptr(),
		DestLng:            req.DestLng.Ptr(),
		PrimaryDistanceKm:  req.PrimaryDistanceKm.Ptr(),
		ShortcutDistanceKm: req.ShortcutDistanceKm.Ptr(),
		EtaMin:             req.EtaMin.Ptr(),
		AverageSpeed:       req.AverageSpeed.Ptr(),
		PrimaryRoute:       req.PrimaryRoute.Ptr(),
		ShortcutRoute:      req.ShortcutRoute.Ptr(),
		UpdatedAt:          nowISO,
		AutoEndTime:        nowISO,
	}

	var err error
	if update.StartTime, err = normalizeOptionalTime(req.StartTime); err != nil {
		return nil, models.NewValidationError(models.CodeInvalidStartTime, "startTime must be an ISO-8601 timestamp")
	}
	if update.EndTime, err = normalizeOptionalTime(req.EndTime); err != nil {
		return nil, models.NewValidationError(models.CodeInvalidEndTime, "endTime must be an ISO-8601 timestamp")
	}
	if req.Status != nil {
		status := models.TripStatus(*req.Status)
		update.Status = &status
	}

	trip, err := s.tripRepo.Update(ctx, tripID, update)
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.LogTripEvent(trip.TripID, trip.AmbulanceID, "updated", map[string]interface{}{"status": trip.Status})

	if trip.Status == models.TripStatusCompleted && s.archive != nil {
		completed := *trip
		s.runDetached(ctx, func(ctx context.Context) {
			if _, err := s.archive.ArchiveTrip(ctx, &completed); err != nil {
				s.logger.WithTripID(completed.TripID).WithError(err).Warn("failed to archive completed trip")
			}
		})
	}

	return trip, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	if appErr := validators.ValidateTripID(tripID); appErr != nil {
		return nil, appErr
	}

	trip, err := s.tripRepo.Delete(ctx, tripID)
	if err != nil {
		return nil, s.translate(err)
	}

	s.logger.LogTripEvent(trip.TripID, trip.AmbulanceID, "deleted", nil)
	return trip, nil
}

func (s *tripService) Wait() {
	s.background.Wait()
}

// runDetached runs fn in the background on a copy of ctx that outlives the
// request, bounded by sideEffectTimeout.
func (s *tripService) runDetached(ctx context.Context, fn func(ctx context.Context)) {
	detached := context.WithoutCancel(ctx)
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		sideCtx, cancel := context.WithTimeout(detached, sideEffectTimeout)
		defer cancel()
		fn(sideCtx)
	}()
}

func (s *tripService) translate(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFoundError(models.CodeTripNotFound, "Trip not found")
	}
	s.logger.WithError(err).Error("trip store failure")
	return models.NewInternalError(err)
}

func normalizeOptionalTime(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	normalized, err := utils.NormalizeTimeISO(*value)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}
