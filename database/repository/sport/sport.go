package sportRepo

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

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	Create(ctx context.Context, sport *models.Sport) error
	GetByID(ctx context.Context, id string) (*models.Sport, error)
	List(ctx context.Context) ([]models.Sport, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSportRepo struct {
	coll *mongo.Collection
}

func NewMongoSportRepo() SportRepository {
	return &mongoSportRepo{coll: database.DB().Collection("sports")}
}

func (r *mongoSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sport.CreatedAt.IsZero() {
		sport.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, sport); err != nil {
		return fmt.Errorf("failed to create sport: %w", err)
	}
	return nil
}

func (r *mongoSportRepo) GetByID(ctx context.Context, id string) (*models.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sport models.Sport
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sport); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to fetch sport %s: %w", id, err)
	}
	return &sport, nil
}

func (r *mongoSportRepo) List(ctx context.Context) ([]models.Sport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer cursor.Close(ctx)

	sports := []models.Sport{}
	if err := cursor.All(ctx, &sports); err != nil {
		return nil, fmt.Errorf("failed to decode sports: %w", err)
	}
	return sports, nil
}

func (r *mongoSportRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_name")},
	})
	if err != nil {
		return fmt.Errorf("failed to create sport indexes: %w", err)
	}
	return nil
}
