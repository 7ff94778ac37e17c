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

// UserController đăng ký, đăng nhập và favorites
type UserController struct {
	auth      *services.AuthService
	favorites *services.FavoriteService
	logger    *zap.Logger
}

// NewUserController tạo mới UserController
func NewUserController(auth *services.AuthService, favorites *services.FavoriteService, logger *zap.Logger) *UserController {
	return &UserController{auth: auth, favorites: favorites, logger: logger}
}

// Register POST /api/user/register
func (uc *UserController) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	user, err := uc.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err == services.ErrEmailTaken {
		c.JSON(http.StatusConflict, responses.ErrorResponse{
			Error:   "EMAIL_TAKEN",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		uc.logger.Error("Lỗi đăng ký", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "REGISTER_ERROR",
			Message: "Lỗi đăng ký tài khoản",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// Login POST /api/user/login
func (uc *UserController) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	token, user, err := uc.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err == services.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, responses.ErrorResponse{
			Error:   "INVALID_CREDENTIALS",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		uc.logger.Error("Lỗi đăng nhập", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "LOGIN_ERROR",
			Message: "Lỗi đăng nhập",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// Logout POST /api/user/logout — thu hồi token hiện tại.
func (uc *UserController) Logout(c *gin.Context) {
	claims := c.MustGet(middlewares.ContextClaims).(*services.TokenClaims)
	if err := uc.auth.Logout(c.Request.Context(), claims); err != nil {
		uc.logger.Error("Lỗi thu hồi token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "LOGOUT_ERROR",
			Message: "Lỗi đăng xuất",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Profile GET /api/user/profile
func (uc *UserController) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":    c.GetString(middlewares.ContextUserID),
		"name":  c.GetString(middlewares.ContextUserName),
		"email": c.GetString(middlewares.ContextEmail),
	})
}

// FavoriteToggle POST /api/user/favorite/add — thêm nếu chưa có, bỏ
// nếu đã có.
func (uc *UserController) FavoriteToggle(c *gin.Context) {
	var req requests.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	userID := c.GetString(middlewares.ContextUserID)
	action, favorites, err := uc.favorites.Toggle(c.Request.Context(), userID, req.RestaurantID.String())
	if err == services.ErrRestaurantNotFound {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		uc.logger.Error("Lỗi toggle favorite", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "FAVORITE_ERROR",
			Message: "Lỗi cập nhật danh sách yêu thích",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"action":    action,
		"favorites": favorites,
	})
}

// FavoritesList GET /api/user/favorites
func (uc *UserController) FavoritesList(c *gin.Context) {
	userID := c.GetString(middlewares.ContextUserID)
	restaurants, err := uc.favorites.List(c.Request.Context(), userID)
	if err != nil {
		uc.logger.Error("Lỗi đọc favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "FAVORITE_ERROR",
			Message: "Lỗi đọc danh sách yêu thích",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     len(restaurants),
		"favorites": restaurants,
	})
}
