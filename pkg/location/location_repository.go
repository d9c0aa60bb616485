package location

import (
	"Recipe-Marketplace/entities"
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	LocationRepository interface {
		UpsertLocation(ctx context.Context, location *entities.UserLocation) error
		GetLocationByUser(ctx context.Context, userID string) (*entities.UserLocation, error)
		GetAllLocations(ctx context.Context) ([]*entities.UserLocation, error)
		UpdateAddress(ctx context.Context, userID string, address string) error
	}

	locationRepository struct {
		db *gorm.DB
	}
)

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// UpsertLocation keeps one row per user, keyed by user_id.
func (r *locationRepository) UpsertLocation(ctx context.Context, location *entities.UserLocation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_name", "latitude", "longitude", "address", "updated_at"}),
		}).
		Create(location).Error
}

func (r *locationRepository) GetLocationByUser(ctx context.Context, userID string) (*entities.UserLocation, error) {
	var location entities.UserLocation
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) GetAllLocations(ctx context.Context) ([]*entities.UserLocation, error) {
	var locations []*entities.UserLocation
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) UpdateAddress(ctx context.Context, userID string, address string) error {
	return r.db.WithContext(ctx).
		Model(&entities.UserLocation{}).
		Where("user_id = ?", userID).
		Update("address", address).Error
}
