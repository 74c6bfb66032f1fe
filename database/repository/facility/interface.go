package facilityRepo

import (
	"context"
	"errors"

	"turfacademy/models"
)

var ErrFacilityNotFound = errors.New("facility not found")

// Filter narrows List. Zero values match everything.
type Filter struct {
	SportID    string
	ActiveOnly bool
}

type FacilityRepository interface {
	Create(ctx context.Context, facility *models.Facility) error
	GetByID(ctx context.Context, id string) (*models.Facility, error)
	List(ctx context.Context, filter Filter) ([]models.Facility, error)
	UpdateStatus(ctx context.Context, id string, status models.FacilityStatus) error
	EnsureIndexes(ctx context.Context) error
}
