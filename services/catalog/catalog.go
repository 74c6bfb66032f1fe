package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	facilityRepo "turfacademy/database/repository/facility"
	sportRepo "turfacademy/database/repository/sport"
	"turfacademy/models"
	"turfacademy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSportNotFound    = errors.New("sport not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrInvalidHours     = errors.New("facility must close after it opens")
)

// CatalogService serves the sports and facilities reference data.
type CatalogService interface {
	ListSports(ctx context.Context) ([]models.Sport, error)
	// ListFacilities returns the active facilities offered for a sport.
	ListFacilities(ctx context.Context, sportID string) ([]models.Facility, error)
	GetFacility(ctx context.Context, id string) (*models.Facility, error)

	// Admin
	CreateSport(ctx context.Context, sport models.Sport) (*models.Sport, error)
	CreateFacility(ctx context.Context, facility models.Facility) (*models.Facility, error)
	ListAllFacilities(ctx context.Context) ([]models.Facility, error)
	SetFacilityStatus(ctx context.Context, id string, status models.FacilityStatus) error
}

// DefaultCatalogService is the Mongo backed implementation.
type DefaultCatalogService struct {
	Sports     sportRepo.SportRepository
	Facilities facilityRepo.FacilityRepository
	Logger     *zap.Logger
}

func NewCatalogService(sports sportRepo.SportRepository, facilities facilityRepo.FacilityRepository, logger *zap.Logger) *DefaultCatalogService {
	return &DefaultCatalogService{
		Sports:     sports,
		Facilities: facilities,
		Logger:     logger.With(zap.String("service", "catalog")),
	}
}

func (s *DefaultCatalogService) ListSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.Sports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

func (s *DefaultCatalogService) ListFacilities(ctx context.Context, sportID string) ([]models.Facility, error) {
	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return nil, &utils.ValidationError{Fields: map[string]string{"sport": "sport is required"}}
	}
	if _, err := s.Sports.GetByID(ctx, sportID); err != nil {
		if errors.Is(err, sportRepo.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to load sport: %w", err)
	}

	facilities, err := s.Facilities.List(ctx, facilityRepo.Filter{SportID: sportID, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return facilities, nil
}

func (s *DefaultCatalogService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	f, err := s.Facilities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	return f, nil
}

func (s *DefaultCatalogService) CreateSport(ctx context.Context, sport models.Sport) (*models.Sport, error) {
	sport.Name = strings.TrimSpace(sport.Name)
	if err := utils.Validate(sport); err != nil {
		return nil, err
	}
	if sport.ID == "" {
		sport.ID = slug(sport.Name)
	}
	sport.CreatedAt = time.Now()

	if err := s.Sports.Create(ctx, &sport); err != nil {
		return nil, fmt.Errorf("failed to create sport: %w", err)
	}
	s.Logger.Info("Sport created", zap.String("sportID", sport.ID))
	return &sport, nil
}

func (s *DefaultCatalogService) CreateFacility(ctx context.Context, facility models.Facility) (*models.Facility, error) {
	facility.Name = strings.TrimSpace(facility.Name)
	facility.ApplyDefaults()
	if err := utils.Validate(facility); err != nil {
		return nil, err
	}
	if facility.CloseHour <= facility.OpenHour {
		return nil, ErrInvalidHours
	}
	for _, id := range facility.SportIDs {
		if _, err := s.Sports.GetByID(ctx, id); err != nil {
			if errors.Is(err, sportRepo.ErrSportNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrSportNotFound, id)
			}
			return nil, fmt.Errorf("failed to load sport: %w", err)
		}
	}

	now := time.Now()
	facility.ID = uuid.New().String()
	facility.CreatedAt = now
	facility.UpdatedAt = now
	if err := s.Facilities.Create(ctx, &facility); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	s.Logger.Info("Facility created", zap.String("facilityID", facility.ID), zap.Strings("sports", facility.SportIDs))
	return &facility, nil
}

func (s *DefaultCatalogService) ListAllFacilities(ctx context.Context) ([]models.Facility, error) {
	facilities, err := s.Facilities.List(ctx, facilityRepo.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	return facilities, nil
}

func (s *DefaultCatalogService) SetFacilityStatus(ctx context.Context, id string, status models.FacilityStatus) error {
	if status != models.FacilityActive && status != models.FacilityInactive {
		return &utils.ValidationError{Fields: map[string]string{"status": "status must be one of [active inactive]"}}
	}
	if err := s.Facilities.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return ErrFacilityNotFound
		}
		return fmt.Errorf("failed to update facility status: %w", err)
	}
	s.Logger.Info("Facility status updated", zap.String("facilityID", id), zap.String("status", string(status)))
	return nil
}

// slug turns "Table Tennis" into "table-tennis".
func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
