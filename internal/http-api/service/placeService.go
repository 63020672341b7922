package service

import (
	"context"
	"errors"
	"strings"

	"visitmelaka/internal/http-api/models"
	"visitmelaka/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrNameRequired  = errors.New("name is required")
)

// topRatedLimit matches the original endpoint, which always returned at
// most ten places.
const topRatedLimit = 10

type PlaceService interface {
	List(ctx context.Context, limit, offset int) ([]models.PlaceWithStats, error)
	GetDetail(ctx context.Context, id int64) (*models.PlaceDetail, error)
	ReviewsForPlace(ctx context.Context, id int64) ([]models.Review, error)
	TopRated(ctx context.Context) ([]models.TopRatedPlace, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyPlace, error)
	ReviewedPlaces(ctx context.Context, userID int64) ([]models.ReviewedPlace, error)
	Create(ctx context.Context, p *models.Place) error
	Update(ctx context.Context, id int64, p *models.Place) error
	Delete(ctx context.Context, id int64) error
}

type placeService struct {
	repo repository.PlaceRepository
}

func NewPlaceService(repo repository.PlaceRepository) PlaceService {
	return &placeService{repo: repo}
}

func (s *placeService) List(ctx context.Context, limit, offset int) ([]models.PlaceWithStats, error) {
	return s.repo.ListWithStats(ctx, limit, offset)
}

// GetDetail returns the place with aggregates plus its newest-first reviews.
func (s *placeService) GetDetail(ctx context.Context, id int64) (*models.PlaceDetail, error) {
	place, err := s.repo.GetWithStats(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	reviews, err := s.repo.ReviewsForPlace(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.PlaceDetail{
		PlaceWithStats: *place,
		Reviews:        reviews,
	}, nil
}

func (s *placeService) ReviewsForPlace(ctx context.Context, id int64) ([]models.Review, error) {
	return s.repo.ReviewsForPlace(ctx, id)
}

func (s *placeService) TopRated(ctx context.Context) ([]models.TopRatedPlace, error) {
	return s.repo.TopRated(ctx, topRatedLimit)
}

func (s *placeService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.NearbyPlace, error) {
	return s.repo.Nearby(ctx, lat, lng, radiusKm)
}

func (s *placeService) ReviewedPlaces(ctx context.Context, userID int64) ([]models.ReviewedPlace, error) {
	return s.repo.ReviewedPlaces(ctx, userID)
}

func (s *placeService) Create(ctx context.Context, p *models.Place) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	// coordinates of 0 are valid; presence is enforced at the DTO layer
	return s.repo.Create(ctx, p)
}

func (s *placeService) Update(ctx context.Context, id int64, p *models.Place) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if err := s.repo.Update(ctx, id, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	return nil
}

func (s *placeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		return err
	}
	return nil
}
