package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
)

var (
	// ErrEmailTaken email đã đăng ký
	ErrEmailTaken = errors.New("email đã được sử dụng")
	// ErrInvalidCredentials sai email hoặc password
	ErrInvalidCredentials = errors.New("email hoặc mật khẩu không đúng")
	// ErrTokenRevoked token đã logout
	ErrTokenRevoked = errors.New("token đã bị thu hồi")
)

// TokenClaims payload của access token.
type TokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService đăng ký / đăng nhập / thu hồi token.
// Revocation list nằm trong Redis, key theo jti với TTL bằng thời gian
// còn lại của token.
type AuthService struct {
	users     *mongo.Collection
	rdb       *redis.Client
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService tạo mới AuthService
func NewAuthService(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	var users *mongo.Collection
	if db != nil {
		users = db.Collection("users")
	}
	return &AuthService{
		users:     users,
		rdb:       rdb,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register tạo user mới, password lưu bằng bcrypt.
func (as *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	count, err := as.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("kiểm tra email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Favorites: []string{},
		CreatedAt: time.Now(),
	}
	if _, err := as.users.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("tạo user: %w", err)
	}

	as.logger.Info("Đăng ký user mới", zap.String("email", email))
	return user, nil
}

// Login kiểm tra credentials và phát access token.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := as.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("tìm user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.IssueToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// IssueToken ký JWT HS256 cho user.
func (as *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("ký token: %w", err)
	}
	return signed, nil
}

// ValidateToken parse + verify chữ ký và hạn, rồi kiểm tra revocation.
func (as *AuthService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("thuật toán ký không hợp lệ: %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	revoked, err := as.isRevoked(ctx, claims.ID)
	if err != nil {
		// Redis lỗi thì vẫn chấp nhận token còn chữ ký hợp lệ
		as.logger.Warn("Lỗi kiểm tra revocation, bỏ qua", zap.Error(err))
	} else if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Logout đưa jti vào revocation list đến khi token tự hết hạn.
func (as *AuthService) Logout(ctx context.Context, claims *TokenClaims) error {
	if as.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return as.rdb.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
}

func (as *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	if as.rdb == nil {
		return false, nil
	}
	_, err := as.rdb.Get(ctx, revokedKey(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func revokedKey(jti string) string { return "revoked:" + jti }
