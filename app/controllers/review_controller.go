package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/middlewares"
	"github.com/KhoaTranFitus/backend-food-app/app/requests"
	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
)

// ReviewController tạo và liệt kê review
type ReviewController struct {
	reviews *services.ReviewService
	logger  *zap.Logger
}

// NewReviewController tạo mới ReviewController
func NewReviewController(reviews *services.ReviewService, logger *zap.Logger) *ReviewController {
	return &ReviewController{reviews: reviews, logger: logger}
}

// Create POST /api/food/reviews (yêu cầu đăng nhập)
func (rc *ReviewController) Create(c *gin.Context) {
	var req requests.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	userID := c.GetString(middlewares.ContextUserID)
	username := c.GetString(middlewares.ContextUserName)

	review, err := rc.reviews.Create(c.Request.Context(), userID, username, req.TargetID.String(), req.Rating, req.Comment)
	switch err {
	case nil:
	case services.ErrInvalidRating:
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_RATING",
			Message: err.Error(),
		})
		return
	case services.ErrRestaurantNotFound:
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: err.Error(),
		})
		return
	default:
		rc.logger.Error("Lỗi tạo review", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "REVIEW_ERROR",
			Message: "Lỗi lưu review",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// List GET /api/food/reviews/:id — id là restaurant id.
func (rc *ReviewController) List(c *gin.Context) {
	id := c.Param("id")

	reviews, err := rc.reviews.ListByRestaurant(c.Request.Context(), id)
	if err != nil {
		rc.logger.Error("Lỗi đọc reviews", zap.String("restaurant_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "REVIEW_ERROR",
			Message: "Lỗi đọc reviews",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"total":   len(reviews),
		"reviews": reviews,
	})
}
