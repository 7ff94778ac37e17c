package requests

import "github.com/KhoaTranFitus/backend-food-app/app/models"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FavoriteRequest toggle một quán trong danh sách yêu thích.
// RestaurantID nhận cả số lẫn chuỗi như dữ liệu gốc.
type FavoriteRequest struct {
	RestaurantID models.FlexID `json:"restaurant_id" binding:"required"`
}
