package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
)

// FavoriteService danh sách quán yêu thích, nhúng trong user document.
type FavoriteService struct {
	users  *mongo.Collection
	store  *catalog.Store
	logger *zap.Logger
}

// NewFavoriteService tạo mới FavoriteService
func NewFavoriteService(db *mongo.Database, store *catalog.Store, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{
		users:  db.Collection("users"),
		store:  store,
		logger: logger,
	}
}

// Toggle thêm quán nếu chưa có, bỏ nếu đã có. Trả về action
// ("added"/"removed") và danh sách mới.
func (fs *FavoriteService) Toggle(ctx context.Context, userID, restaurantID string) (string, []string, error) {
	if _, ok := fs.store.Current().ByID(restaurantID); !ok {
		return "", nil, ErrRestaurantNotFound
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", nil, fmt.Errorf("user id không hợp lệ: %w", err)
	}

	var user models.User
	if err := fs.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return "", nil, fmt.Errorf("tìm user: %w", err)
	}

	action := "added"
	favorites := make([]string, 0, len(user.Favorites)+1)
	for _, id := range user.Favorites {
		if id == restaurantID {
			action = "removed"
			continue
		}
		favorites = append(favorites, id)
	}
	if action == "added" {
		favorites = append(favorites, restaurantID)
	}

	if _, err := fs.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"favorites": favorites}}); err != nil {
		return "", nil, fmt.Errorf("cập nhật favorites: %w", err)
	}
	return action, favorites, nil
}

// List resolve favorites của user qua catalog; id không còn trong
// catalog thì bỏ qua chứ không lỗi.
func (fs *FavoriteService) List(ctx context.Context, userID string) ([]models.Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("user id không hợp lệ: %w", err)
	}

	var user models.User
	if err := fs.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, fmt.Errorf("tìm user: %w", err)
	}

	snap := fs.store.Current()
	restaurants := make([]models.Restaurant, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if r, ok := snap.ByID(id); ok {
			restaurants = append(restaurants, *r)
		} else {
			fs.logger.Debug("Favorite không còn trong catalog, bỏ qua", zap.String("restaurant_id", id))
		}
	}
	return restaurants, nil
}
