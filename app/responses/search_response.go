package responses

import (
	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/search"
)

// CategoryInfo metadata hiển thị theo category: loại món và màu pin
// trên bản đồ.
type CategoryInfo struct {
	DishType string `json:"dishType"`
	PinColor string `json:"pinColor"`
}

// categoryMap giữ đúng mapping frontend đang dùng.
var categoryMap = map[int]CategoryInfo{
	1: {DishType: "dry", PinColor: "red"},
	2: {DishType: "soup", PinColor: "blue"},
	3: {DishType: "vegetarian", PinColor: "green"},
	4: {DishType: "salty", PinColor: "orange"},
	5: {DishType: "seafood", PinColor: "purple"},
}

// CategoryInfoFor tra metadata hiển thị; category thiếu hoặc lạ rơi về
// dry/red.
func CategoryInfoFor(categoryID *int) CategoryInfo {
	if categoryID != nil {
		if info, ok := categoryMap[*categoryID]; ok {
			return info
		}
	}
	return categoryMap[1]
}

// Position tọa độ trên wire.
type Position struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Place một quán ở dạng frontend expect.
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Position     Position `json:"position"`
	DishType     string   `json:"dishType"`
	PinColor     string   `json:"pinColor"`
	Rating       float64  `json:"rating"`
	PriceRange   string   `json:"price_range,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	OpenHours    string   `json:"open_hours,omitempty"`
	MainImageURL string   `json:"main_image_url,omitempty"`
	Tags         []string `json:"tags"`
	Score        float64  `json:"score"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
	// Distance giữ cho frontend cũ, luôn bằng DistanceKm.
	Distance *float64 `json:"distance,omitempty"`
}

// NewPlace format một kết quả của engine sang wire shape.
func NewPlace(sr search.ScoredRestaurant) Place {
	info := CategoryInfoFor(sr.CategoryID)
	p := Place{
		ID:           sr.ID.String(),
		Name:         sr.Name,
		Address:      sr.Address,
		Position:     Position{Lat: sr.Lat, Lon: sr.Lon},
		DishType:     info.DishType,
		PinColor:     info.PinColor,
		Rating:       sr.RatingOrZero(),
		PriceRange:   sr.PriceRange,
		PhoneNumber:  sr.PhoneNumber,
		OpenHours:    sr.OpenHours,
		MainImageURL: sr.MainImageURL,
		Tags:         sr.Tags,
		Score:        sr.Score,
		DistanceKm:   sr.DistanceKm,
		Distance:     sr.DistanceKm,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// SearchResponse body trả về của search và map filter.
type SearchResponse struct {
	Success bool    `json:"success"`
	Total   int     `json:"total"`
	Places  []Place `json:"places"`
}

// NewSearchResponse format cả danh sách kết quả.
func NewSearchResponse(results []search.ScoredRestaurant) *SearchResponse {
	places := make([]Place, 0, len(results))
	for _, sr := range results {
		places = append(places, NewPlace(sr))
	}
	return &SearchResponse{Success: true, Total: len(places), Places: places}
}

// RestaurantDetail chi tiết quán + menu; Rating là rating "sống" từ
// review store nếu có, không thì rating tĩnh trong catalog.
type RestaurantDetail struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Position     Position          `json:"position"`
	DishType     string            `json:"dishType"`
	PinColor     string            `json:"pinColor"`
	Rating       float64           `json:"rating"`
	PriceRange   string            `json:"price_range,omitempty"`
	PhoneNumber  string            `json:"phone_number,omitempty"`
	OpenHours    string            `json:"open_hours,omitempty"`
	MainImageURL string            `json:"main_image_url,omitempty"`
	Description  string            `json:"description,omitempty"`
	Tags         []string          `json:"tags"`
	Menu         []models.MenuItem `json:"menu"`
}

// NewRestaurantDetail build detail; liveRating nil = dùng rating catalog.
func NewRestaurantDetail(r *models.Restaurant, menu []models.MenuItem, liveRating *float64) *RestaurantDetail {
	info := CategoryInfoFor(r.CategoryID)
	rating := r.RatingOrZero()
	if liveRating != nil {
		rating = *liveRating
	}
	d := &RestaurantDetail{
		ID:           r.ID.String(),
		Name:         r.Name,
		Address:      r.Address,
		Position:     Position{Lat: r.Lat, Lon: r.Lon},
		DishType:     info.DishType,
		PinColor:     info.PinColor,
		Rating:       rating,
		PriceRange:   r.PriceRange,
		PhoneNumber:  r.PhoneNumber,
		OpenHours:    r.OpenHours,
		MainImageURL: r.MainImageURL,
		Description:  r.Description,
		Tags:         r.Tags,
		Menu:         menu,
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Menu == nil {
		d.Menu = []models.MenuItem{}
	}
	return d
}
