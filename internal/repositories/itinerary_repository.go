package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tripgems/internal/models/db_models"
)

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error)
	GetByIDWithStops(ctx context.Context, id string) (*db_models.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	if db == nil {
		return noopItineraryRepository{}
	}
	return &itineraryRepository{db: db}
}

// Create stores the itinerary and its stops together.
func (r *itineraryRepository) Create(ctx context.Context, itinerary *db_models.Itinerary) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(itinerary).Error; err != nil {
		return uuid.Nil, err
	}
	return itinerary.ID, nil
}

// GetByIDWithStops returns nil, nil when no itinerary matches.
func (r *itineraryRepository) GetByIDWithStops(ctx context.Context, id string) (*db_models.Itinerary, error) {
	var it db_models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&it, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

type noopItineraryRepository struct{}

// Create stores nothing and returns uuid.Nil, so callers hand out no id
// that could never be loaded back.
func (noopItineraryRepository) Create(context.Context, *db_models.Itinerary) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (noopItineraryRepository) GetByIDWithStops(context.Context, string) (*db_models.Itinerary, error) {
	return nil, nil
}
