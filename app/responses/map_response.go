package responses

import "github.com/KhoaTranFitus/backend-food-app/internal/search"

// FiltersApplied echo lại bộ lọc client gửi lên, để debug phía frontend.
type FiltersApplied struct {
	Categories []int    `json:"categories,omitempty"`
	MaxPrice   *float64 `json:"max_price,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	RadiusKm   *float64 `json:"radius_km,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
}

// MapFilterResponse kết quả lọc cho màn bản đồ.
type MapFilterResponse struct {
	Success        bool           `json:"success"`
	Total          int            `json:"total"`
	Places         []Place        `json:"places"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

// NewMapFilterResponse cắt theo limit (nếu có) rồi format.
func NewMapFilterResponse(results []search.ScoredRestaurant, filters FiltersApplied) *MapFilterResponse {
	if filters.Limit != nil && *filters.Limit >= 0 && *filters.Limit < len(results) {
		results = results[:*filters.Limit]
	}
	base := NewSearchResponse(results)
	return &MapFilterResponse{
		Success:        true,
		Total:          base.Total,
		Places:         base.Places,
		FiltersApplied: filters,
	}
}
