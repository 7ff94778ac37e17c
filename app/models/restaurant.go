package models

import "encoding/json"

// FlexID id trong dữ liệu nguồn có thể là số hoặc chuỗi; luôn lưu và
// so sánh dưới dạng chuỗi.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// Restaurant một quán ăn trong catalog (data/restaurants.json).
// Các field optional là con trỏ: nil nghĩa là dữ liệu nguồn không có,
// và từng field có policy default-hoặc-bỏ-filter riêng trong engine.
type Restaurant struct {
	ID           FlexID   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Tags         []string `json:"tags"`
	CategoryID   *int     `json:"category_id,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	PriceRange   string   `json:"price_range,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	OpenHours    string   `json:"open_hours,omitempty"`
	MainImageURL string   `json:"main_image_url,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// RatingOrZero rating cho mục đích TÍNH ĐIỂM: thiếu rating = 0.
// (Cho mục đích FILTER thì thiếu rating nghĩa là "không áp filter",
// xem engine.)
func (r *Restaurant) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// MenuItem một món trong menu, thuộc về đúng một quán
// (data/menus.json, key theo restaurant id).
type MenuItem struct {
	DishName    string          `json:"dish_name"`
	DishTags    []string        `json:"dish_tags,omitempty"`
	Price       json.RawMessage `json:"price,omitempty"`       // passthrough, ranking không dùng
	Description string          `json:"description,omitempty"` // passthrough
}
