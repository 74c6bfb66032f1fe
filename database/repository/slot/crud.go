// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfacademy/database"
	"turfacademy/models"
)

type mongoSlotRepo struct {
	coll            *mongo.Collection
	reservationColl *mongo.Collection
}

func NewMongoSlotRepo() SlotRepository {
	db := database.DB()
	return &mongoSlotRepo{
		coll:            db.Collection("facility_days"),
		reservationColl: db.Collection("reservations"),
	}
}

func (r *mongoSlotRepo) GetDay(ctx context.Context, facilityID, date string) (*models.FacilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.FacilityDay
	err := r.coll.FindOne(ctx, bson.M{"facilityId": facilityID, "date": date}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to fetch slots for %s on %s: %w", facilityID, date, err)
	}
	return &day, nil
}

func (r *mongoSlotRepo) EnsureDay(ctx context.Context, facility models.Facility, date string) (*models.FacilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"facilityId": facility.ID, "date": date}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"facilityId": facility.ID,
			"date":       date,
			"slots":      models.GenerateSlots(facility),
			"version":    0,
			"createdAt":  now,
			"updatedAt":  now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var day models.FacilityDay
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&day)
	if err != nil {
		// Two concurrent upserts: the loser hits the unique index and reads the winner's document.
		if mongo.IsDuplicateKeyError(err) {
			return r.GetDay(ctx, facility.ID, date)
		}
		return nil, fmt.Errorf("failed to materialize slots for %s on %s: %w", facility.ID, date, err)
	}
	return &day, nil
}
