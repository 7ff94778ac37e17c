package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config cấu hình toàn service, nạp từ config/app.yaml + biến môi
// trường (env ghi đè file, vd. MONGO_URL, CHAT_API_KEY).
type Config struct {
	App struct {
		Port string
		Env  string
	}
	Data struct {
		Restaurants string // đường dẫn restaurants.json
		Menus       string // đường dẫn menus.json
		Keywords    string // file YAML mở rộng bảng keyword, rỗng = chỉ dùng mặc định
	}
	Mongo struct {
		URL      string
		Database string
	}
	Redis struct {
		URL string
	}
	Cache struct {
		L1Size int
		TTL    time.Duration
	}
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
	Chat struct {
		APIKey      string
		BaseURL     string
		Model       string
		MaxTokens   int
		Temperature float64
		History     int // số lượt thoại giữ lại mỗi conversation
	}
}

// Load đọc cấu hình theo kiểu viper: file yaml, default cho mọi key,
// AutomaticEnv với "." -> "_".
func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("data.restaurants", "data/restaurants.json")
	viper.SetDefault("data.menus", "data/menus.json")
	viper.SetDefault("data.keywords", "")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "food_app")
	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("cache.l1_size", 1024)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_ttl", "72h")
	viper.SetDefault("chat.api_key", "")
	viper.SetDefault("chat.base_url", "")
	viper.SetDefault("chat.model", "gpt-4o-mini")
	viper.SetDefault("chat.max_tokens", 500)
	viper.SetDefault("chat.temperature", 0.7)
	viper.SetDefault("chat.history", 20)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// không có file cũng chạy được bằng default + env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("đọc file cấu hình: %w", err)
		}
	}

	var c Config
	c.App.Port = viper.GetString("app.port")
	c.App.Env = viper.GetString("app.env")
	c.Data.Restaurants = viper.GetString("data.restaurants")
	c.Data.Menus = viper.GetString("data.menus")
	c.Data.Keywords = viper.GetString("data.keywords")
	c.Mongo.URL = viper.GetString("mongo.url")
	c.Mongo.Database = viper.GetString("mongo.database")
	c.Redis.URL = viper.GetString("redis.url")
	c.Cache.L1Size = viper.GetInt("cache.l1_size")
	c.Cache.TTL = viper.GetDuration("cache.ttl")
	c.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	c.Auth.TokenTTL = viper.GetDuration("auth.token_ttl")
	c.Chat.APIKey = viper.GetString("chat.api_key")
	c.Chat.BaseURL = viper.GetString("chat.base_url")
	c.Chat.Model = viper.GetString("chat.model")
	c.Chat.MaxTokens = viper.GetInt("chat.max_tokens")
	c.Chat.Temperature = viper.GetFloat64("chat.temperature")
	c.Chat.History = viper.GetInt("chat.history")

	if c.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("thiếu auth.jwt_secret (env AUTH_JWT_SECRET)")
	}
	return &c, nil
}
