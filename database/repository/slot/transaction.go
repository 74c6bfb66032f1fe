package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"turfacademy/models"
)

var errSlotsTaken = errors.New("requested slots are not all available")

// ReserveSlots runs the conditional write inside a transaction: the day
// document only matches when every requested slot is still available.
func (r *mongoSlotRepo) ReserveSlots(ctx context.Context, reservation *models.Reservation) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.UpdateOne(sc,
			reserveFilter(reservation),
			bson.M{
				"$set": bson.M{
					"slots.$[s].status":        models.SlotBooked,
					"slots.$[s].reservationId": reservation.ID,
					"updatedAt":                time.Now(),
				},
				"$inc": bson.M{"version": 1},
			},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{bson.M{"s.time": bson.M{"$in": reservation.SlotTimes}}},
			}),
		)
		if err != nil {
			return fmt.Errorf("mark slots booked failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return errSlotsTaken
		}

		if _, err := r.reservationColl.InsertOne(sc, reservation); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	// WithTransaction retries the body on TransientTransactionError and the
	// commit on UnknownTransactionCommitResult until ctx expires.
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, txnFn(sc)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errSlotsTaken):
		return r.unavailable(ctx, reservation)
	case isTransientTxnError(err):
		return fmt.Errorf("%w: %v", ErrWriteConflict, err)
	}
	return fmt.Errorf("reservation transaction failed: %w", err)
}

func reserveFilter(reservation *models.Reservation) bson.M {
	all := make(bson.A, 0, len(reservation.SlotTimes))
	for _, t := range reservation.SlotTimes {
		all = append(all, bson.M{"$elemMatch": bson.M{"time": t, "status": models.SlotAvailable}})
	}
	return bson.M{
		"facilityId": reservation.FacilityID,
		"date":       reservation.Date,
		"slots":      bson.M{"$all": all},
	}
}

func (r *mongoSlotRepo) unavailable(ctx context.Context, reservation *models.Reservation) error {
	day, err := r.GetDay(ctx, reservation.FacilityID, reservation.Date)
	if err != nil {
		if errors.Is(err, ErrDayNotFound) {
			return &UnavailableError{Times: reservation.SlotTimes}
		}
		return err
	}
	return conflictFromDay(day, reservation.SlotTimes)
}

// conflictFromDay names the requested times the day no longer offers. When
// every one is still free the write only lost a race and ErrWriteConflict is
// returned instead.
func conflictFromDay(day *models.FacilityDay, times []string) error {
	taken := day.Unavailable(times)
	if len(taken) == 0 {
		return ErrWriteConflict
	}
	return &UnavailableError{Times: taken}
}

func isTransientTxnError(err error) bool {
	var se mongo.ServerError
	return errors.As(err, &se) && se.HasErrorLabel("TransientTransactionError")
}
