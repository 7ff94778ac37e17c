package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/requests"
	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/internal/search"
)

// MapController lọc quán cho màn bản đồ (không có query text).
type MapController struct {
	engine *search.Engine
	logger *zap.Logger
}

// NewMapController tạo mới MapController
func NewMapController(engine *search.Engine, logger *zap.Logger) *MapController {
	return &MapController{engine: engine, logger: logger}
}

// Filter POST /api/map/filter
func (mc *MapController) Filter(c *gin.Context) {
	var req requests.MapFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	results := mc.engine.Search(req.ToEngine())

	c.JSON(http.StatusOK, responses.NewMapFilterResponse(results, responses.FiltersApplied{
		Categories: req.Categories,
		MaxPrice:   req.MaxPrice,
		MinRating:  req.MinRating,
		Tags:       req.Tags,
		RadiusKm:   req.Radius,
		Limit:      req.Limit,
	}))
}
