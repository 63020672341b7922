package models

import "time"

type Place struct {
	PlaceID     int64     `gorm:"column:place_id;primaryKey;autoIncrement" json:"place_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;size:255" json:"image_url"`
	Category    string    `gorm:"size:50" json:"category"`
	Latitude    float64   `gorm:"not null" json:"latitude"`
	Longitude   float64   `gorm:"not null" json:"longitude"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Place) TableName() string {
	return "places"
}
