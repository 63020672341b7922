package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"visitmelaka/internal/http-api/dto"
	"visitmelaka/internal/http-api/middleware"
	"visitmelaka/internal/http-api/models"
	"visitmelaka/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	svc service.PlaceService
}

func NewPlaceHandler(svc service.PlaceService) *PlaceHandler {
	return &PlaceHandler{svc: svc}
}

// RegisterRoutes wires the place endpoints. Reads are public; create,
// update and delete require an authenticated admin.
func (h *PlaceHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:place_id", h.Get)
	rg.GET("/:place_id/ratings", h.Ratings)
	rg.GET("/top-rated/list", h.TopRated)
	rg.POST("/nearby", h.Nearby)

	rg.POST("", authMW, middleware.RequireAdmin(), h.Create)
	rg.PUT("/:place_id", authMW, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:place_id", authMW, middleware.RequireAdmin(), h.Delete)
}

// List returns every place with its rating aggregates.
// GET /api/places?limit=&offset=
func (h *PlaceHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Pagination is opt-in; without a limit the full set comes back, which
	// keeps existing clients working.
	limit := 0
	offset := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	places, err := h.svc.List(ctx, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": places})
}

// Get returns one place with aggregates and its full review list.
// GET /api/places/:place_id
func (h *PlaceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("place_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid place ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.svc.GetDetail(ctx, id)
	if err != nil {
		if err == service.ErrPlaceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Ratings returns the ordered review list for one place.
// GET /api/places/:place_id/ratings
func (h *PlaceHandler) Ratings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("place_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid place ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.svc.ReviewsForPlace(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": reviews})
}

// TopRated returns up to ten places ordered by average rating; unrated
// places never appear.
// GET /api/places/top-rated/list
func (h *PlaceHandler) TopRated(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	places, err := h.svc.TopRated(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"top_rated_places": places})
}

// Nearby returns places within the requested radius, closest first.
// POST /api/places/nearby
func (h *PlaceHandler) Nearby(c *gin.Context) {
	var req dto.NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing coordinates or radius"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	places, err := h.svc.Nearby(ctx, *req.Latitude, *req.Longitude, *req.Radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nearby_places": places})
}

// Create adds a new place.
// POST /api/places
func (h *PlaceHandler) Create(c *gin.Context) {
	var req dto.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	place := models.Place{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	}

	if err := h.svc.Create(ctx, &place); err != nil {
		if err == service.ErrNameRequired {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"place_id": place.PlaceID,
		"message":  "Place added successfully",
	})
}

// Update overwrites all mutable fields of a place.
// PUT /api/places/:place_id
func (h *PlaceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("place_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid place ID"})
		return
	}

	var req dto.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	place := models.Place{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
	}

	if err := h.svc.Update(ctx, id, &place); err != nil {
		switch err {
		case service.ErrPlaceNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Place not found"})
		case service.ErrNameRequired:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Place updated successfully"})
}

// Delete removes a place and all of its ratings.
// DELETE /api/places/:place_id
func (h *PlaceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("place_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid place ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		if err == service.ErrPlaceNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Place deleted successfully"})
}

// ReviewedPlaces lists the places a user has rated, newest rating first.
// GET /api/users/:user_id/reviewed-places
func (h *PlaceHandler) ReviewedPlaces(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	places, err := h.svc.ReviewedPlaces(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewed_places": places})
}
