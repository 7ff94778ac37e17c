package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User tài khoản người dùng, lưu trong collection "users".
// Favorites nhúng thẳng vào document dưới dạng danh sách restaurant id.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, không bao giờ trả ra ngoài
	Favorites []string           `bson:"favorites" json:"favorites"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
