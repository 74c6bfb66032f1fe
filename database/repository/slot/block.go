package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"turfacademy/models"
)

// SetBlocked blocks an available slot or releases a blocked one. Booked slots
// are never touched.
func (r *mongoSlotRepo) SetBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	from, to := models.SlotAvailable, models.SlotBlocked
	if !blocked {
		from, to = models.SlotBlocked, models.SlotAvailable
		reason = ""
	}

	filter := bson.M{
		"facilityId": facilityID,
		"date":       date,
		"slots": bson.M{
			"$elemMatch": bson.M{"time": slotTime, "status": from},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"slots.$.status":      to,
			"slots.$.blockReason": reason,
			"updatedAt":           time.Now(),
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update blocked flag for slot: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	day, err := r.GetDay(ctx, facilityID, date)
	if err != nil {
		return err
	}
	slot, ok := day.Slot(slotTime)
	switch {
	case !ok:
		return ErrSlotNotFound
	case slot.Status == models.SlotBooked:
		return ErrSlotBooked
	default:
		// Already in the requested state.
		return nil
	}
}
