package dto

// SubmitRatingRequest creates or updates the caller's rating for a place.
// The rating author is the authenticated user from the access token, never a
// client-claimed ID.
type SubmitRatingRequest struct {
	PlaceID int64  `json:"place_id" binding:"required"`
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
