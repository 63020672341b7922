package handler

import (
	"context"
	"net/http"
	"time"

	"visitmelaka/internal/http-api/dto"
	"visitmelaka/internal/http-api/middleware"
	"visitmelaka/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes wires the rating endpoints. Submitting needs a logged-in
// user; the statistics report is public.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("", authMW, h.Submit)
	rg.GET("/statistics", h.Statistics)
}

// Submit creates the caller's rating for a place, or updates it in place if
// one already exists. 201 means created, 200 means updated.
// POST /api/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, created, err := h.ratingService.Submit(ctx, userID, req.PlaceID, req.Stars, req.Comment)
	if err != nil {
		switch err {
		case service.ErrInvalidStars:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Stars must be between 1 and 5"})
		case service.ErrPlaceNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Place not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		}
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Rating added successfully"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rating updated successfully"})
}

// Statistics reports per-place review totals and extremes.
// GET /api/ratings/statistics
func (h *RatingHandler) Statistics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.ratingService.Statistics(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating_statistics": stats})
}
