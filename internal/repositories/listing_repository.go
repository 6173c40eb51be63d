package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rutaviva/internal/models/db_models"
)

type ListingFilter struct {
	Route    string
	Category string
	Query    string
}

type ListingRepository interface {
	Create(ctx context.Context, listing *db_models.Listing) (uuid.UUID, error)
	Update(ctx context.Context, listing *db_models.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.Listing, error)
	List(ctx context.Context, filter ListingFilter, page, pageSize int) ([]db_models.Listing, error)
	ListByRoute(ctx context.Context, route string) ([]db_models.Listing, error)
	ListAll(ctx context.Context) ([]db_models.Listing, error)
	DistinctRoutes(ctx context.Context) ([]string, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *db_models.Listing) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return uuid.Nil, err
	}
	return listing.ID, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *db_models.Listing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(listing)
		if result.Error != nil {
			return fmt.Errorf("failed to update listing: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.Listing{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Read helpers return default value + nil error when no rows are found.

func (r *listingRepository) GetByID(ctx context.Context, id string) (*db_models.Listing, error) {
	var listing db_models.Listing
	err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter ListingFilter, page, pageSize int) ([]db_models.Listing, error) {
	var listings []db_models.Listing
	offset := (page - 1) * pageSize

	q := r.db.WithContext(ctx).Model(&db_models.Listing{})
	if filter.Route != "" {
		q = q.Where("LOWER(route) = LOWER(?)", filter.Route)
	}
	if filter.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", filter.Category)
	}
	if filter.Query != "" {
		needle := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(short_desc) LIKE ?", needle, needle)
	}

	if err := q.Offset(offset).Limit(pageSize).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListByRoute(ctx context.Context, route string) ([]db_models.Listing, error) {
	var listings []db_models.Listing
	err := r.db.WithContext(ctx).
		Where("LOWER(route) = LOWER(?)", route).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListAll(ctx context.Context) ([]db_models.Listing, error) {
	var listings []db_models.Listing
	if err := r.db.WithContext(ctx).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) DistinctRoutes(ctx context.Context) ([]string, error) {
	var routes []string
	err := r.db.WithContext(ctx).
		Model(&db_models.Listing{}).
		Distinct("route").
		Where("route <> ''").
		Order("route").
		Pluck("route", &routes).Error
	if err != nil {
		return nil, err
	}
	return routes, nil
}
