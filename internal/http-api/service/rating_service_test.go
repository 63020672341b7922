package service

import (
	"context"
	"testing"

	"visitmelaka/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) (bool, error) {
	args := m.Called(ctx, rating)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) GetByUserAndPlace(ctx context.Context, userID, placeID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) Statistics(ctx context.Context) ([]models.PlaceRatingStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlaceRatingStats), args.Error(1)
}

func TestRatingService_Submit_StarsOutOfRange(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	placeRepo := new(MockPlaceRepository)
	svc := NewRatingService(ratingRepo, placeRepo)

	for _, stars := range []int{0, -1, 6} {
		_, _, err := svc.Submit(context.Background(), 1, 1, stars, "")
		assert.ErrorIs(t, err, ErrInvalidStars, "stars=%d", stars)
	}

	placeRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatingService_Submit_PlaceNotFound(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	placeRepo := new(MockPlaceRepository)
	svc := NewRatingService(ratingRepo, placeRepo)

	placeRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, _, err := svc.Submit(context.Background(), 1, 99, 4, "nice")

	assert.ErrorIs(t, err, ErrPlaceNotFound)
	ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRatingService_Submit_CreatesNewRating(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	placeRepo := new(MockPlaceRepository)
	svc := NewRatingService(ratingRepo, placeRepo)

	placeRepo.On("GetByID", mock.Anything, int64(3)).Return(&models.Place{PlaceID: 3, Name: "Jonker Walk"}, nil).Once()
	ratingRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.Rating) bool {
		return r.UserID == 7 && r.PlaceID == 3 && r.Stars == 5 && r.Comment == "worth the trip"
	})).Return(true, nil).Once()

	rating, created, err := svc.Submit(context.Background(), 7, 3, 5, "worth the trip")

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), rating.UserID)
	ratingRepo.AssertExpectations(t)
	placeRepo.AssertExpectations(t)
}

func TestRatingService_Submit_UpdatesExistingRating(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	placeRepo := new(MockPlaceRepository)
	svc := NewRatingService(ratingRepo, placeRepo)

	placeRepo.On("GetByID", mock.Anything, int64(3)).Return(&models.Place{PlaceID: 3}, nil).Once()
	ratingRepo.On("Upsert", mock.Anything, mock.Anything).Return(false, nil).Once()

	_, created, err := svc.Submit(context.Background(), 7, 3, 2, "changed my mind")

	assert.NoError(t, err)
	assert.False(t, created)
	ratingRepo.AssertExpectations(t)
}

func TestRatingService_Statistics(t *testing.T) {
	ratingRepo := new(MockRatingRepository)
	placeRepo := new(MockPlaceRepository)
	svc := NewRatingService(ratingRepo, placeRepo)

	stats := []models.PlaceRatingStats{
		{PlaceID: 1, Name: "A Famosa", TotalReviews: 4, AverageRating: 4.25, LowestRating: 3, HighestRating: 5},
		{PlaceID: 2, Name: "St Paul's Hill", TotalReviews: 0, AverageRating: 0},
	}
	ratingRepo.On("Statistics", mock.Anything).Return(stats, nil).Once()

	got, err := svc.Statistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, stats, got)
}
