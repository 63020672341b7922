package models

import "time"

// Rating is one user's review of one place. The composite unique index keeps
// the one-rating-per-user-per-place invariant even under racing submissions.
type Rating struct {
	RatingID  int64     `gorm:"column:rating_id;primaryKey;autoIncrement" json:"rating_id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_ratings_user_place" json:"user_id"`
	PlaceID   int64     `gorm:"not null;uniqueIndex:idx_ratings_user_place;index" json:"place_id"`
	Stars     int       `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User  User  `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Place Place `gorm:"foreignKey:PlaceID;references:PlaceID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}
