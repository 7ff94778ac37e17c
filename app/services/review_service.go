package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
)

var (
	// ErrInvalidRating rating ngoài khoảng 1..5
	ErrInvalidRating = errors.New("rating phải từ 1 đến 5")
	// ErrRestaurantNotFound quán không có trong catalog
	ErrRestaurantNotFound = errors.New("không tìm thấy quán")
)

// ReviewService review + rating aggregate.
// Reviews lưu ở Mongo; mỗi lần thêm review thì recompute trung bình
// và upsert vào "restaurant_ratings" để đọc nhanh.
type ReviewService struct {
	reviews *mongo.Collection
	ratings *mongo.Collection
	store   *catalog.Store
	logger  *zap.Logger
}

// NewReviewService tạo mới ReviewService
func NewReviewService(db *mongo.Database, store *catalog.Store, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews: db.Collection("reviews"),
		ratings: db.Collection("restaurant_ratings"),
		store:   store,
		logger:  logger,
	}
}

// Create thêm review cho một quán và cập nhật rating aggregate.
func (rs *ReviewService) Create(ctx context.Context, userID, username, restaurantID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, ok := rs.store.Current().ByID(restaurantID); !ok {
		return nil, ErrRestaurantNotFound
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		TargetID:  restaurantID,
		Type:      "restaurant",
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if _, err := rs.reviews.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("lưu review: %w", err)
	}

	if err := rs.recomputeRating(ctx, restaurantID); err != nil {
		// review đã lưu, aggregate sai thì lần review sau tự sửa
		rs.logger.Warn("Lỗi cập nhật rating aggregate", zap.String("restaurant_id", restaurantID), zap.Error(err))
	}
	return review, nil
}

// ListByRestaurant trả reviews mới nhất trước.
func (rs *ReviewService) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := rs.reviews.Find(ctx, bson.M{"target_id": restaurantID, "type": "restaurant"}, opts)
	if err != nil {
		return nil, fmt.Errorf("đọc reviews: %w", err)
	}
	defer cur.Close(ctx)

	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// LiveRating rating trung bình từ review store. (nil, nil) khi quán
// chưa có review nào.
func (rs *ReviewService) LiveRating(ctx context.Context, restaurantID string) (*float64, error) {
	var agg models.RestaurantRating
	err := rs.ratings.FindOne(ctx, bson.M{"_id": restaurantID}).Decode(&agg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("đọc rating aggregate: %w", err)
	}
	return &agg.Rating, nil
}

func (rs *ReviewService) recomputeRating(ctx context.Context, restaurantID string) error {
	cur, err := rs.reviews.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"target_id": restaurantID, "type": "restaurant"}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"rating": bson.M{"$avg": "$rating"},
			"count":  bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var result struct {
		Rating float64 `bson:"rating"`
		Count  int     `bson:"count"`
	}
	if !cur.Next(ctx) {
		return cur.Err()
	}
	if err := cur.Decode(&result); err != nil {
		return err
	}

	_, err = rs.ratings.UpdateOne(ctx,
		bson.M{"_id": restaurantID},
		bson.M{"$set": bson.M{
			"rating":       result.Rating,
			"review_count": result.Count,
			"updated_at":   time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
