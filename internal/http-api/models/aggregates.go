package models

import "time"

// Query-time projections. None of these map to a table; they are scan targets
// for the aggregate queries in the place and rating repositories.

// PlaceWithStats is a place row enriched with its rating aggregates.
type PlaceWithStats struct {
	Place       `gorm:"embedded"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// Review is a rating row joined with its author's username.
type Review struct {
	RatingID  int64     `json:"rating_id"`
	UserID    int64     `json:"user_id"`
	PlaceID   int64     `json:"place_id"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
}

// PlaceDetail is the single-place payload: place, aggregates and its full
// newest-first review list.
type PlaceDetail struct {
	PlaceWithStats
	Reviews []Review `json:"reviews"`
}

// TopRatedPlace mirrors the top-rated listing of the original API, which
// never includes unrated places.
type TopRatedPlace struct {
	PlaceID       int64   `json:"place_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ImageURL      string  `gorm:"column:image_url" json:"image_url"`
	Category      string  `json:"category"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// NearbyPlace is a place with its great-circle distance from the query point.
type NearbyPlace struct {
	Place    `gorm:"embedded"`
	Distance float64 `json:"distance"`
}

// PlaceRatingStats is one row of the per-place statistics report.
type PlaceRatingStats struct {
	PlaceID       int64   `json:"place_id"`
	Name          string  `json:"name"`
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	LowestRating  int     `json:"lowest_rating"`
	HighestRating int     `json:"highest_rating"`
}

// ReviewedPlace is a place the given user has rated, carrying that user's
// stars and comment.
type ReviewedPlace struct {
	PlaceID     int64   `json:"place_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `gorm:"column:image_url" json:"image_url"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	UserRating  int     `json:"user_rating"`
	UserComment string  `json:"user_comment"`
}
