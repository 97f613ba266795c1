package repositories

import (
	"context"

	"gorm.io/gorm"
	"tripgems/internal/models/db_models"
)

type PlaceRepository interface {
	// ReplaceCityPlaces swaps the stored rows of one city and kind in a
	// single transaction.
	ReplaceCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind, rows []db_models.PlaceRow) error
	ListCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	if db == nil {
		return noopPlaceRepository{}
	}
	return &placeRepository{db: db}
}

func (r *placeRepository) ReplaceCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind, rows []db_models.PlaceRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("city = ? AND kind = ?", city, kind).
			Delete(&db_models.PlaceRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].City = city
			rows[i].Kind = kind
		}
		return tx.CreateInBatches(&rows, 200).Error
	})
}

// placeOrder mirrors the order each kind is computed in.
var placeOrder = map[db_models.PlaceKind]string{
	db_models.PlaceKindScored: "overall_score DESC, polarity DESC",
	db_models.PlaceKindGem:    "polarity DESC, num_reviews ASC",
	db_models.PlaceKindTrap:   "num_reviews DESC, polarity DESC",
}

func (r *placeRepository) ListCityPlaces(ctx context.Context, city string, kind db_models.PlaceKind) ([]db_models.PlaceRow, error) {
	order, ok := placeOrder[kind]
	if !ok {
		order = "id"
	}

	var rows []db_models.PlaceRow
	err := r.db.WithContext(ctx).
		Where("city = ? AND kind = ?", city, kind).
		Order(order).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type noopPlaceRepository struct{}

func (noopPlaceRepository) ReplaceCityPlaces(context.Context, string, db_models.PlaceKind, []db_models.PlaceRow) error {
	return nil
}

func (noopPlaceRepository) ListCityPlaces(context.Context, string, db_models.PlaceKind) ([]db_models.PlaceRow, error) {
	return []db_models.PlaceRow{}, nil
}
