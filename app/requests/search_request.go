package requests

import "github.com/KhoaTranFitus/backend-food-app/internal/search"

// SearchRequest body của POST /api/food/search.
// Field con trỏ phân biệt "không gửi" với "gửi giá trị 0".
type SearchRequest struct {
	Query      string   `json:"query"`
	Province   string   `json:"province"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Radius     *float64 `json:"radius"`
	Categories []int    `json:"categories"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	MinRating  *float64 `json:"min_rating"`
	MaxRating  *float64 `json:"max_rating"`
	Tags       []string `json:"tags"`
}

// ToEngine map request wire sang request của engine.
func (r SearchRequest) ToEngine() search.Request {
	return search.Request{
		Query:      r.Query,
		Province:   r.Province,
		Lat:        r.Lat,
		Lon:        r.Lon,
		Radius:     r.Radius,
		Categories: r.Categories,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		MinRating:  r.MinRating,
		MaxRating:  r.MaxRating,
		Tags:       r.Tags,
	}
}

// MapFilterRequest body của POST /api/map/filter: như search nhưng
// không có query/province và thêm limit.
type MapFilterRequest struct {
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Radius     *float64 `json:"radius"`
	Categories []int    `json:"categories"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	MinRating  *float64 `json:"min_rating"`
	MaxRating  *float64 `json:"max_rating"`
	Tags       []string `json:"tags"`
	Limit      *int     `json:"limit"`
}

func (r MapFilterRequest) ToEngine() search.Request {
	return search.Request{
		Lat:        r.Lat,
		Lon:        r.Lon,
		Radius:     r.Radius,
		Categories: r.Categories,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		MinRating:  r.MinRating,
		MaxRating:  r.MaxRating,
		Tags:       r.Tags,
	}
}
