package repository

import (
	"context"
	"fmt"

	"visitmelaka/internal/http-api/models"

	"gorm.io/gorm"
)

// Rating aggregates are computed at query time with correlated subqueries,
// the same shape the original API used. avg_rating coalesces to 0 for
// unrated places.
const placeWithStatsSelect = `
SELECT p.*,
       COALESCE((SELECT AVG(r.stars) FROM ratings r WHERE r.place_id = p.place_id), 0) AS avg_rating,
       (SELECT COUNT(*) FROM ratings r WHERE r.place_id = p.place_id) AS review_count
FROM places p`

type PlaceRepository interface {
	ListWithStats(ctx context.Context, limit, offset int) ([]models.PlaceWithStats, error)
	GetByID(ctx context.Context, id int64) (*models.Place, error)
	GetWithStats(ctx context.Context, id int64) (*models.PlaceWithStats, error)
	ReviewsForPlace(ctx context.Context, id int64) ([]models.Review, error)
	TopRated(ctx context.Context, limit int) ([]models.TopRatedPlace, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyPlace, error)
	ReviewedPlaces(ctx context.Context, userID int64) ([]models.ReviewedPlace, error)
	Create(ctx context.Context, p *models.Place) error
	Update(ctx context.Context, id int64, p *models.Place) error
	Delete(ctx context.Context, id int64) error
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// ListWithStats returns places with their aggregates. limit <= 0 returns
// every row, which preserves the original return-all behavior.
func (r *placeRepository) ListWithStats(ctx context.Context, limit, offset int) ([]models.PlaceWithStats, error) {
	var list []models.PlaceWithStats
	query := placeWithStatsSelect + " ORDER BY p.place_id"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&list).Error; err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return list, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id int64) (*models.Place, error) {
	var p models.Place
	if err := r.db.WithContext(ctx).First(&p, "place_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *placeRepository) GetWithStats(ctx context.Context, id int64) (*models.PlaceWithStats, error) {
	var row models.PlaceWithStats
	res := r.db.WithContext(ctx).Raw(placeWithStatsSelect+" WHERE p.place_id = ?", id).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("get place: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *placeRepository) ReviewsForPlace(ctx context.Context, id int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Raw(`
SELECT r.rating_id, r.user_id, r.place_id, r.stars, r.comment, r.created_at, r.updated_at, u.username
FROM ratings r
JOIN users u ON r.user_id = u.user_id
WHERE r.place_id = ?
ORDER BY r.created_at DESC`, id).Scan(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("place reviews: %w", err)
	}
	return reviews, nil
}

// TopRated excludes unrated places entirely (HAVING, not zero-ranking) and
// breaks average ties by review count.
func (r *placeRepository) TopRated(ctx context.Context, limit int) ([]models.TopRatedPlace, error) {
	var list []models.TopRatedPlace
	err := r.db.WithContext(ctx).Raw(`
SELECT p.place_id, p.name, p.description, p.image_url, p.category, p.latitude, p.longitude,
       AVG(r.stars) AS average_rating,
       COUNT(r.rating_id) AS review_count
FROM places p
LEFT JOIN ratings r ON p.place_id = r.place_id
GROUP BY p.place_id
HAVING COUNT(r.rating_id) > 0
ORDER BY average_rating DESC, review_count DESC
LIMIT ?`, limit).Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("top rated places: %w", err)
	}
	return list, nil
}

// Nearby computes the haversine distance in SQL. The acos argument is
// clamped to [-1, 1]: floating error on identical coordinates can push it
// out of range, which Postgres rejects instead of returning NULL.
func (r *placeRepository) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyPlace, error) {
	var list []models.NearbyPlace
	err := r.db.WithContext(ctx).Raw(`
SELECT * FROM (
    SELECT p.*,
           (6371 * acos(least(1.0, greatest(-1.0,
               cos(radians(?)) * cos(radians(p.latitude)) * cos(radians(p.longitude) - radians(?))
               + sin(radians(?)) * sin(radians(p.latitude))
           )))) AS distance
    FROM places p
) AS with_distance
WHERE distance < ?
ORDER BY distance`, lat, lng, lat, radiusKm).Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("nearby places: %w", err)
	}
	return list, nil
}

func (r *placeRepository) ReviewedPlaces(ctx context.Context, userID int64) ([]models.ReviewedPlace, error) {
	var list []models.ReviewedPlace
	err := r.db.WithContext(ctx).Raw(`
SELECT p.place_id, p.name, p.description, p.image_url, p.category, p.latitude, p.longitude,
       ur.stars AS user_rating, ur.comment AS user_comment
FROM places p
JOIN ratings ur ON p.place_id = ur.place_id AND ur.user_id = ?
ORDER BY ur.created_at DESC`, userID).Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("reviewed places: %w", err)
	}
	return list, nil
}

func (r *placeRepository) Create(ctx context.Context, p *models.Place) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create place: %w", err)
	}
	// GORM populates p.PlaceID and p.CreatedAt
	return nil
}

// Update overwrites every mutable field unconditionally; there are no
// partial-patch semantics. Select forces zero values through.
func (r *placeRepository) Update(ctx context.Context, id int64, p *models.Place) error {
	res := r.db.WithContext(ctx).Model(&models.Place{}).
		Where("place_id = ?", id).
		Select("name", "description", "image_url", "category", "latitude", "longitude").
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"image_url":   p.ImageURL,
			"category":    p.Category,
			"latitude":    p.Latitude,
			"longitude":   p.Longitude,
		})
	if res.Error != nil {
		return fmt.Errorf("update place: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the ratings and then the place inside one transaction.
// The ratings table holds a foreign key to places, so the order matters,
// and the transaction closes the partial-failure window between the two
// statements.
func (r *placeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return fmt.Errorf("delete place ratings: %w", err)
		}
		res := tx.Where("place_id = ?", id).Delete(&models.Place{})
		if res.Error != nil {
			return fmt.Errorf("delete place: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
