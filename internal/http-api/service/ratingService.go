package service

import (
	"context"
	"errors"

	"visitmelaka/internal/http-api/models"
	"visitmelaka/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrInvalidStars = errors.New("stars must be between 1 and 5")

type RatingService interface {
	// Submit creates or updates the caller's rating for a place and reports
	// whether a new rating row was created.
	Submit(ctx context.Context, userID, placeID int64, stars int, comment string) (*models.Rating, bool, error)
	Statistics(ctx context.Context) ([]models.PlaceRatingStats, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	placeRepo  repository.PlaceRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, placeRepo repository.PlaceRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		placeRepo:  placeRepo,
	}
}

// Submit enforces the one-rating-per-user-per-place invariant: an existing
// rating for the pair is overwritten in place, never duplicated.
func (s *ratingService) Submit(ctx context.Context, userID, placeID int64, stars int, comment string) (*models.Rating, bool, error) {
	if stars < 1 || stars > 5 {
		return nil, false, ErrInvalidStars
	}

	if _, err := s.placeRepo.GetByID(ctx, placeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrPlaceNotFound
		}
		return nil, false, err
	}

	rating := &models.Rating{
		UserID:  userID,
		PlaceID: placeID,
		Stars:   stars,
		Comment: comment,
	}
	created, err := s.ratingRepo.Upsert(ctx, rating)
	if err != nil {
		return nil, false, err
	}
	return rating, created, nil
}

func (s *ratingService) Statistics(ctx context.Context) ([]models.PlaceRatingStats, error) {
	return s.ratingRepo.Statistics(ctx)
}
