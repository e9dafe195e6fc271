package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/repositories/interfaces"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type tripRepository struct {
	collection *mongo.Collection
}

func NewTripRepository(db *mongo.Database) interfaces.TripRepository {
	return &tripRepository{
		collection: db.Collection(database.TripCollection),
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	_, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": tripID}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) List(ctx context.Context, filter models.TripFilter) ([]*models.Trip, error) {
	query := bson.M{}
	if filter.AmbulanceID != "" {
		query["ambulance_id"] = filter.AmbulanceID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	startTime := bson.M{}
	if filter.StartDate != "" {
		startTime["$gte"] = filter.StartDate
	}
	if filter.EndDate != "" {
		startTime["$lte"] = filter.EndDate
	}
	if len(startTime) > 0 {
		query["start_time"] = startTime
	}

	cursor, err := r.collection.Find(ctx, query, findOptions(filter.Limit, filter.Offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cursor.Close(ctx)

	trips := make([]*models.Trip, 0)
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}

	return trips, nil
}

// Update runs as a single pipeline update so the auto-close rule can read the
// stored end_time. Supplied values are wrapped in $literal so strings starting
// with "$" are not read as field paths.
func (r *tripRepository) Update(ctx context.Context, tripID string, update *models.TripUpdate) (*models.Trip, error) {
	set := bson.M{"updated_at": literal(update.UpdatedAt)}
	setIf := func(field string, value *string) {
		if value != nil {
			set[field] = literal(*value)
		}
	}

	setIf("ambulance_id", update.AmbulanceID)
	setIf("driver_name", update.DriverName)
	setIf("vehicle_number", update.VehicleNumber)
	setIf("start_lat", update.StartLat)
	setIf("start_lng", update.StartLng)
	setIf("dest_lat", update.DestLat)
	setIf("dest_lng", update.DestLng)
	setIf("primary_distance_km", update.PrimaryDistanceKm)
	setIf("shortcut_distance_km", update.ShortcutDistanceKm)
	setIf("eta_min", update.EtaMin)
	setIf("average_speed", update.AverageSpeed)
	setIf("primary_route", update.PrimaryRoute)
	setIf("shortcut_route", update.ShortcutRoute)
	setIf("start_time", update.StartTime)
	setIf("end_time", update.EndTime)
	if update.Status != nil {
		set["status"] = literal(string(*update.Status))
	}
	if update.ClosesTrip() {
		set["end_time"] = bson.M{"$ifNull": bson.A{"$end_time", literal(update.AutoEndTime)}}
	}

	pipeline := mongo.Pipeline{{{Key: "$set", Value: set}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var trip models.Trip
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": tripID}, pipeline, opts).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return &trip, nil
}

func (r *tripRepository) Delete(ctx context.Context, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": tripID}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete trip: %w", err)
	}
	return &trip, nil
}

func literal(value interface{}) bson.M {
	return bson.M{"$literal": value}
}
