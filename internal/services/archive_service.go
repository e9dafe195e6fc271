package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/storage"
)

type ArchiveService interface {
	ArchiveTrip(ctx context.Context, trip *models.Trip) (*storage.UploadResponse, error)
}

type archiveService struct {
	storage storage.StorageProvider
	logger  *logger.Logger
}

func NewArchiveService(storageProvider storage.StorageProvider, log *logger.Logger) ArchiveService {
	return &archiveService{
		storage: storageProvider,
		logger:  log,
	}
}

// ArchiveTrip writes the trip as JSON to trips/<ambulanceId>/<tripId>.json,
// replacing any earlier archive of the same trip.
func (s *archiveService) ArchiveTrip(ctx context.Context, trip *models.Trip) (*storage.UploadResponse, error) {
	payload, err := json.MarshalIndent(trip, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip archive: %w", err)
	}

	resp, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         TripArchiveKey(trip),
		Reader:      bytes.NewReader(payload),
		ContentType: utils.ContentTypeJSON,
		Size:        int64(len(payload)),
		Metadata: map[string]string{
			"trip-id":      trip.TripID,
			"ambulance-id": trip.AmbulanceID,
			"status":       string(trip.Status),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.storage.Name(), err)
	}

	s.logger.LogTripEvent(trip.TripID, trip.AmbulanceID, "archived", map[string]interface{}{"location": resp.Location})
	return resp, nil
}

func TripArchiveKey(trip *models.Trip) string {
	return fmt.Sprintf("%s%s/%s.json", utils.TripArchivePrefix, trip.AmbulanceID, trip.TripID)
}
