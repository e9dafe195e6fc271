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

type ambulanceRepository struct {
	collection *mongo.Collection
}

func NewAmbulanceRepository(db *mongo.Database) interfaces.AmbulanceRepository {
	return &ambulanceRepository{
		collection: db.Collection(database.AmbulanceCollection),
	}
}

func (r *ambulanceRepository) Create(ctx context.Context, ambulance *models.Ambulance) error {
	_, err := r.collection.InsertOne(ctx, ambulance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("failed to create ambulance: %w", err)
	}
	return nil
}

func (r *ambulanceRepository) GetByID(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	var ambulance models.Ambulance
	err := r.collection.FindOne(ctx, bson.M{"_id": ambulanceID}).Decode(&ambulance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ambulance: %w", err)
	}
	return &ambulance, nil
}

func (r *ambulanceRepository) List(ctx context.Context, filter models.AmbulanceFilter) ([]*models.Ambulance, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := findOptions(filter.Limit, filter.Offset)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ambulances: %w", err)
	}
	defer cursor.Close(ctx)

	ambulances := make([]*models.Ambulance, 0)
	if err := cursor.All(ctx, &ambulances); err != nil {
		return nil, fmt.Errorf("failed to decode ambulances: %w", err)
	}

	return ambulances, nil
}

func (r *ambulanceRepository) Update(ctx context.Context, ambulanceID string, update *models.AmbulanceUpdate) (*models.Ambulance, error) {
	set := bson.M{"updated_at": update.UpdatedAt}
	if update.DriverName != nil {
		set["driver_name"] = *update.DriverName
	}
	if update.VehicleNumber != nil {
		set["vehicle_number"] = *update.VehicleNumber
	}
	if update.ContactNumber != nil {
		set["contact_number"] = *update.ContactNumber
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ambulance models.Ambulance
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": ambulanceID}, bson.M{"$set": set}, opts).Decode(&ambulance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update ambulance: %w", err)
	}

	return &ambulance, nil
}

func (r *ambulanceRepository) Delete(ctx context.Context, ambulanceID string) (*models.Ambulance, error) {
	var ambulance models.Ambulance
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": ambulanceID}).Decode(&ambulance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete ambulance: %w", err)
	}
	return &ambulance, nil
}

// findOptions sorts by creation time then id. A non-positive limit means no limit.
func findOptions(limit, offset int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
		if offset > 0 {
			opts.SetSkip(int64(offset))
		}
	}
	return opts
}
