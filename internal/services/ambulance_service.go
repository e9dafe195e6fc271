package services

import (
	"context"
	"errors"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
)

type AmbulanceService interface {
	CreateAmbulance(ctx context.Context, req *validators.AmbulanceCreateRequest) (*models.Ambulance, error)
	GetAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error)
	ListAmbulances(ctx context.Context, status string, params utils.PaginationParams) ([]*models.Ambulance, error)
	UpdateAmbulance(ctx context.Context, ambulanceID string, req *validators.AmbulanceUpdateRequest) (*models.Ambulance, error)
	DeleteAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error)
}

type ambulanceService struct {
	ambulanceRepo interfaces.AmbulanceRepository
	cache         CacheService
	logger        *logger.Logger
}

func NewAmbulanceService(ambulanceRepo interfaces.AmbulanceRepository, cache CacheService, log *logger.Logger) AmbulanceService {
	return &ambulanceService{
		ambulanceRepo: ambulanceRepo,
		cache:         cache,
		logger:        log,
	}
}

func (s *ambulanceService) CreateAmbulance(ctx context.Context, req *validators.AmbulanceCreateRequest) (*models.Ambulance, error) {
	if appErr := validators.ValidateAmbulanceCreate(req); appErr != nil {
		return nil, appErr
	}

	status := models.AmbulanceStatus(req.Status)
	if status == "" {
		status = models.AmbulanceStatusIdle
	}

	now := utils.NowISO()
	ambulance := &models.Ambulance{
		AmbulanceID:   req.AmbulanceID,
		DriverName:    req.DriverName,
		VehicleNumber: req.VehicleNumber,
		ContactNumber: req.ContactNumber,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.ambulanceRepo.Create(ctx, ambulance); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, models.NewDuplicateError(models.CodeDuplicateAmbulanceID, "An ambulance with this ID already exists")
		}
		s.logger.WithAmbulanceID(ambulance.AmbulanceID).WithError(err).Error("failed to create ambulance")
		return nil, models.NewInternalError(err)
	}

	s.logger.LogAmbulanceEvent(ambulance.AmbulanceID, "created", map[string]interface{}{"status": ambulance.Status})
	return ambulance, nil
}

// GetAmbulance reads through the cache. Cache failures fall back to the store.
func (s *ambulanceService) GetAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	if appErr := validators.ValidateAmbulanceID(ambulanceID); appErr != nil {
		return nil, appErr
	}

	cached, err := s.cache.GetCachedAmbulance(ctx, ambulanceID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithAmbulanceID(ambulanceID).WithError(err).Warn("ambulance cache read failed")
	}

	ambulance, err := s.ambulanceRepo.GetByID(ctx, ambulanceID)
	if err != nil {
		return nil, s.translate(err)
	}

	if _, disabled := s.cache.(noopCacheService); !disabled {
		s.cacheAmbulance(ctx, ambulance)
	}

	return ambulance, nil
}

// cacheAmbulance writes the entry, then reads the row again and drops the
// entry if an Update or Delete landed in between.
func (s *ambulanceService) cacheAmbulance(ctx context.Context, ambulance *models.Ambulance) {
	log := s.logger.WithAmbulanceID(ambulance.AmbulanceID)
	if err := s.cache.CacheAmbulance(ctx, ambulance); err != nil {
		log.WithError(err).Warn("failed to cache ambulance")
		return
	}

	current, err := s.ambulanceRepo.GetByID(ctx, ambulance.AmbulanceID)
	if err == nil && *current == *ambulance {
		return
	}
	log.Debug("ambulance changed while caching, dropping entry")
	s.invalidate(ctx, ambulance.AmbulanceID)
}

func (s *ambulanceService) ListAmbulances(ctx context.Context, status string, params utils.PaginationParams) ([]*models.Ambulance, error) {
	if appErr := validators.ValidateAmbulanceStatusFilter(status); appErr != nil {
		return nil, appErr
	}

	ambulances, err := s.ambulanceRepo.List(ctx, models.AmbulanceFilter{
		Status: models.AmbulanceStatus(status),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to list ambulances")
		return nil, models.NewInternalError(err)
	}

	return ambulances, nil
}

func (s *ambulanceService) UpdateAmbulance(ctx context.Context, ambulanceID string, req *validators.AmbulanceUpdateRequest) (*models.Ambulance, error) {
	if appErr := validators.ValidateAmbulanceID(ambulanceID); appErr != nil {
		return nil, appErr
	}
	if appErr := validators.ValidateAmbulanceUpdate(req); appErr != nil {
		return nil, appErr
	}

	update := &models.AmbulanceUpdate{
		DriverName:    req.DriverName,
		VehicleNumber: req.VehicleNumber,
		ContactNumber: req.ContactNumber,
		UpdatedAt:     utils.NowISO(),
	}
	if req.Status != nil {
		status := models.AmbulanceStatus(*req.Status)
		update.Status = &status
	}

	ambulance, err := s.ambulanceRepo.Update(ctx, ambulanceID, update)
	if err != nil {
		return nil, s.translate(err)
	}

	s.invalidate(ctx, ambulanceID)
	s.logger.LogAmbulanceEvent(ambulanceID, "updated", map[string]interface{}{"status": ambulance.Status})
	return ambulance, nil
}

func (s *ambulanceService) DeleteAmbulance(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	if appErr := validators.ValidateAmbulanceID(ambulanceID); appErr != nil {
		return nil, appErr
	}

	ambulance, err := s.ambulanceRepo.Delete(ctx, ambulanceID)
	if err != nil {
		return nil, s.translate(err)
	}

	s.invalidate(ctx, ambulanceID)
	s.logger.LogAmbulanceEvent(ambulanceID, "deleted", nil)
	return ambulance, nil
}

func (s *ambulanceService) invalidate(ctx context.Context, ambulanceID string) {
	if err := s.cache.InvalidateAmbulance(ctx, ambulanceID); err != nil {
		s.logger.WithAmbulanceID(ambulanceID).WithError(err).Warn("failed to invalidate cached ambulance")
	}
}

func (s *ambulanceService) translate(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.NewNotFoundError(models.CodeAmbulanceNotFound, "Ambulance not found")
	}
	s.logger.WithError(err).Error("ambulance store failure")
	return models.NewInternalError(err)
}
