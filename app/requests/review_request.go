package requests

import "github.com/KhoaTranFitus/backend-food-app/app/models"

// CreateReviewRequest body của POST /api/food/reviews.
type CreateReviewRequest struct {
	TargetID models.FlexID `json:"target_id" binding:"required"`
	Rating   int           `json:"rating" binding:"required"`
	Comment  string        `json:"comment"`
	Type     string        `json:"type"` // mặc định "restaurant"
}
