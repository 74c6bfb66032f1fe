package facilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfacademy/database"
	"turfacademy/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoFacilityRepo struct {
	coll *mongo.Collection
}

func NewMongoFacilityRepo() FacilityRepository {
	return &mongoFacilityRepo{coll: database.DB().Collection("facilities")}
}

func (r *mongoFacilityRepo) Create(ctx context.Context, facility *models.Facility) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	facility.CreatedAt = now
	facility.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, facility); err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *mongoFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var facility models.Facility
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&facility); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to fetch facility %s: %w", id, err)
	}
	return &facility, nil
}

func (r *mongoFacilityRepo) List(ctx context.Context, filter Filter) ([]models.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.SportID != "" {
		// sportIds is an array; equality matches any element.
		query["sportIds"] = filter.SportID
	}
	if filter.ActiveOnly {
		query["status"] = models.FacilityActive
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer cursor.Close(ctx)

	facilities := []models.Facility{}
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return facilities, nil
}

func (r *mongoFacilityRepo) UpdateStatus(ctx context.Context, id string, status models.FacilityStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update facility status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

func (r *mongoFacilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Public listing filters by sport and status.
		{
			Keys:    bson.D{{Key: "sportIds", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("sport_status_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create facility indexes: %w", err)
	}
	return nil
}
