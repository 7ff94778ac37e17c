package models

import "time"

// Review đánh giá của một user cho một quán (collection "reviews").
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username" json:"username"`
	TargetID  string    `bson:"target_id" json:"target_id"`
	Type      string    `bson:"type" json:"type"` // hiện chỉ có "restaurant"
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RestaurantRating điểm trung bình theo quán, cập nhật mỗi lần có
// review mới (collection "restaurant_ratings"). Rating này ghi đè
// rating tĩnh trong catalog ở API detail.
type RestaurantRating struct {
	RestaurantID string    `bson:"_id" json:"restaurant_id"`
	Rating       float64   `bson:"rating" json:"rating"`
	ReviewCount  int       `bson:"review_count" json:"review_count"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
