package repository

import (
	"context"
	"errors"
	"fmt"

	"visitmelaka/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	// Upsert creates or updates the rating for (UserID, PlaceID) and reports
	// whether a new row was created.
	Upsert(ctx context.Context, rating *models.Rating) (created bool, err error)
	GetByUserAndPlace(ctx context.Context, userID, placeID int64) (*models.Rating, error)
	Statistics(ctx context.Context) ([]models.PlaceRatingStats, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert runs the check-then-act inside a transaction so two concurrent
// submissions for the same pair cannot interleave; the composite unique
// index on (user_id, place_id) backstops it. An update keeps the original
// rating_id and created_at, only stars/comment/updated_at change.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Rating
		err := tx.Where("user_id = ? AND place_id = ?", rating.UserID, rating.PlaceID).
			First(&existing).Error
		if err == nil {
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"stars":   rating.Stars,
				"comment": rating.Comment,
			}).Error; err != nil {
				return fmt.Errorf("update rating: %w", err)
			}
			rating.RatingID = existing.RatingID
			rating.CreatedAt = existing.CreatedAt
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = true
		if err := tx.Create(rating).Error; err != nil {
			return fmt.Errorf("create rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *ratingRepository) GetByUserAndPlace(ctx context.Context, userID, placeID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Statistics reports per-place review totals and extremes. Unrated places
// appear with zeros - the LEFT JOIN keeps them, COALESCE fills the gaps.
func (r *ratingRepository) Statistics(ctx context.Context) ([]models.PlaceRatingStats, error) {
	var stats []models.PlaceRatingStats
	err := r.db.WithContext(ctx).Raw(`
SELECT p.place_id, p.name,
       COUNT(r.rating_id) AS total_reviews,
       COALESCE(AVG(r.stars), 0) AS average_rating,
       COALESCE(MIN(r.stars), 0) AS lowest_rating,
       COALESCE(MAX(r.stars), 0) AS highest_rating
FROM places p
LEFT JOIN ratings r ON p.place_id = r.place_id
GROUP BY p.place_id
ORDER BY average_rating DESC`).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("rating statistics: %w", err)
	}
	return stats, nil
}
