package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/requests"
	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/metrics"
	"github.com/KhoaTranFitus/backend-food-app/internal/search"
)

// FoodController controller cho search, danh sách quán, chi tiết và menu
type FoodController struct {
	engine    *search.Engine
	store     *catalog.Store
	cache     services.ISearchCache
	reviews   *services.ReviewService
	dataPaths DataPaths
	logger    *zap.Logger
}

// DataPaths đường dẫn file dữ liệu, dùng khi reload catalog.
type DataPaths struct {
	Restaurants string
	Menus       string
}

// NewFoodController tạo mới FoodController. reviews có thể nil khi
// chạy không có Mongo, lúc đó detail dùng rating tĩnh.
func NewFoodController(engine *search.Engine, store *catalog.Store, cache services.ISearchCache, reviews *services.ReviewService, dataPaths DataPaths, logger *zap.Logger) *FoodController {
	return &FoodController{
		engine:    engine,
		store:     store,
		cache:     cache,
		reviews:   reviews,
		dataPaths: dataPaths,
		logger:    logger,
	}
}

// Search POST /api/food/search
func (fc *FoodController) Search(c *gin.Context) {
	var req requests.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	key := services.CacheKey(req)
	if cached, found, err := fc.cache.Get(c.Request.Context(), key); err == nil && found {
		c.JSON(http.StatusOK, cached)
		return
	}

	results := fc.engine.Search(req.ToEngine())
	metrics.SearchResultsCount.Observe(float64(len(results)))

	resp := responses.NewSearchResponse(results)
	if err := fc.cache.Set(c.Request.Context(), key, resp); err != nil {
		fc.logger.Warn("Lỗi lưu search cache", zap.Error(err))
	}
	c.JSON(http.StatusOK, resp)
}

// Restaurants GET /api/food/restaurants — bản GET của search cho
// client đơn giản, filter qua query params.
func (fc *FoodController) Restaurants(c *gin.Context) {
	var req requests.SearchRequest
	req.Query = c.Query("query")
	req.Province = c.Query("province")
	if v, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		req.Lat = &v
	}
	if v, err := strconv.ParseFloat(c.Query("lon"), 64); err == nil {
		req.Lon = &v
	}
	if v, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil {
		req.Radius = &v
	}
	if v, err := strconv.ParseFloat(c.Query("min_rating"), 64); err == nil {
		req.MinRating = &v
	}
	if v, err := strconv.Atoi(c.Query("category")); err == nil {
		req.Categories = []int{v}
	}

	results := fc.engine.Search(req.ToEngine())
	metrics.SearchResultsCount.Observe(float64(len(results)))
	c.JSON(http.StatusOK, responses.NewSearchResponse(results))
}

// Detail GET /api/food/detail/:id — chi tiết quán kèm menu.
// Rating lấy từ review store nếu quán đã có review.
func (fc *FoodController) Detail(c *gin.Context) {
	id := c.Param("id")
	snap := fc.store.Current()

	r, ok := snap.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Không tìm thấy quán: " + id,
		})
		return
	}

	var liveRating *float64
	if fc.reviews != nil {
		rating, err := fc.reviews.LiveRating(c.Request.Context(), id)
		if err != nil {
			fc.logger.Warn("Lỗi đọc live rating", zap.String("restaurant_id", id), zap.Error(err))
		} else {
			liveRating = rating
		}
	}

	c.JSON(http.StatusOK, responses.NewRestaurantDetail(r, snap.Menu(id), liveRating))
}

// MenuByRestaurant GET /api/food/foods/restaurant/:id
func (fc *FoodController) MenuByRestaurant(c *gin.Context) {
	id := c.Param("id")
	snap := fc.store.Current()

	if _, ok := snap.ByID(id); !ok {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Không tìm thấy quán: " + id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"restaurant_id": id,
		"menu":          snap.Menu(id),
	})
}

// Reload POST /api/food/reload — nạp lại dữ liệu từ file và swap
// snapshot, rồi invalidate search cache.
func (fc *FoodController) Reload(c *gin.Context) {
	snap, err := catalog.Load(fc.dataPaths.Restaurants, fc.dataPaths.Menus, fc.logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "RELOAD_ERROR",
			Message: "Lỗi nạp lại dữ liệu: " + err.Error(),
		})
		return
	}

	fc.store.Swap(snap)
	if err := fc.cache.Invalidate(c.Request.Context()); err != nil {
		fc.logger.Warn("Lỗi invalidate search cache sau reload", zap.Error(err))
	}

	fc.logger.Info("Đã reload catalog", zap.Int("restaurants", snap.Len()))
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"restaurants": snap.Len(),
	})
}
