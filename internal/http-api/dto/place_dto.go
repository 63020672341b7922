package dto

// PlaceRequest is the payload for creating or updating a place. Latitude and
// longitude are pointers so that a value of 0 counts as present - binding
// only rejects fields that are absent from the JSON body.
type PlaceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
}

// NearbyRequest is the payload for the nearby search. Same pointer trick:
// a query point on the equator or the prime meridian is valid.
type NearbyRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Radius    *float64 `json:"radius" binding:"required"`
}
