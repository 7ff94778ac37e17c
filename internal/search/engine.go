package search

import (
	"errors"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/geo"
	"github.com/KhoaTranFitus/backend-food-app/internal/keywords"
	"github.com/KhoaTranFitus/backend-food-app/internal/normalizer"
)

// Bán kính mặc định (km). Chỉ mode "quanh đây" (không query, không
// province, không filter, chỉ có tọa độ) mới dùng bán kính hẹp.
const (
	nearbyRadiusKm  = 2.0
	defaultRadiusKm = 5.0
)

// Điểm cho từng tín hiệu match khi có query; một quán có thể ăn điểm
// nhiều tín hiệu cùng lúc.
const (
	pointsCategory = 15.0
	pointsName     = 10.0
	pointsTag      = 8.0
	pointsDish     = 5.0
)

// Điểm base khi không có query.
const (
	baseProvinceOnly = 1.0
	baseNearby       = 10.0
)

// proximityMax bonus khoảng cách tối đa, giảm tuyến tính về 0 tại biên
// bán kính.
const proximityMax = 10.0

// Request một lượt tìm kiếm. Field con trỏ = filter không được gửi.
// Categories/Tags nil hay rỗng đều nghĩa là không áp filter đó.
type Request struct {
	Query      string
	Province   string
	Lat        *float64
	Lon        *float64
	Radius     *float64 // km, ghi đè mọi default nếu > 0
	Categories []int
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	MaxRating  *float64
	Tags       []string
}

// ScoredRestaurant bản ghi quán kèm điểm; DistanceKm chỉ có khi request
// gửi tọa độ và quán có tọa độ.
type ScoredRestaurant struct {
	models.Restaurant
	Score      float64
	DistanceKm *float64
}

// Engine search engine trung tâm: thuần đọc trên một snapshot bất
// biến, không giữ trạng thái giữa các lần gọi nên gọi song song thoải
// mái.
type Engine struct {
	store  *catalog.Store
	tables *keywords.Tables
	logger *zap.Logger
}

// NewEngine tạo engine. Catalog chưa nạp là lỗi cấu hình — đây là chỗ
// DUY NHẤT engine được phép fail; mọi vấn đề dữ liệu per-quán về sau
// đều được nuốt tại chỗ.
func NewEngine(store *catalog.Store, tables *keywords.Tables, logger *zap.Logger) (*Engine, error) {
	if store == nil || store.Current() == nil {
		return nil, errors.New("catalog chưa được nạp")
	}
	if tables == nil {
		tables = keywords.Default()
	}
	return &Engine{store: store, tables: tables, logger: logger}, nil
}

// Search pipeline cố định: normalize + dịch địa danh -> chọn bán kính
// -> filter cứng -> chấm điểm match -> cộng điểm phụ -> sort.
func (e *Engine) Search(req Request) []ScoredRestaurant {
	snap := e.store.Current()

	query := e.translated(req.Query)
	province := e.translated(req.Province)

	hasFilters := len(req.Categories) > 0 || req.MinPrice != nil || req.MaxPrice != nil ||
		req.MinRating != nil || req.MaxRating != nil || len(req.Tags) > 0
	hasCoords := req.Lat != nil && req.Lon != nil

	// "Quanh đây" thuần túy: chỉ có tọa độ -> ý định "gần tôi", bán
	// kính hẹp. Mọi mode khác dùng bán kính rộng, trừ khi caller gửi
	// radius tường minh.
	radius := defaultRadiusKm
	if query == "" && province == "" && !hasFilters && hasCoords {
		radius = nearbyRadiusKm
	}
	if req.Radius != nil && *req.Radius > 0 {
		radius = *req.Radius
	}

	wantTags := make([]string, 0, len(req.Tags))
	for _, tag := range req.Tags {
		if t := normalizer.Fold(tag); t != "" {
			wantTags = append(wantTags, t)
		}
	}

	results := make([]ScoredRestaurant, 0, 16)

	for i := range snap.Restaurants {
		r := &snap.Restaurants[i]

		// Filter khoảng cách: chỉ khi có tọa độ NGƯỜI DÙNG; quán
		// không có tọa độ thì đi tiếp, không bị loại.
		var dist *float64
		if hasCoords {
			dist = geo.DistanceKm(req.Lat, req.Lon, r.Lat, r.Lon)
			if dist != nil && *dist > radius {
				continue
			}
		}

		// Filter category: quán thiếu category_id coi là "chưa rõ",
		// cho qua.
		if len(req.Categories) > 0 && r.CategoryID != nil && !containsInt(req.Categories, *r.CategoryID) {
			continue
		}

		// Filter giá: loại khi khoảng giá của quán không giao với
		// [min_price, max_price].
		if req.MinPrice != nil || req.MaxPrice != nil {
			low, high := ParsePriceRange(r.PriceRange)
			if req.MinPrice != nil && high < *req.MinPrice {
				continue
			}
			if req.MaxPrice != nil && low > *req.MaxPrice {
				continue
			}
		}

		// Filter rating: quán chưa có rating cho qua (giống policy
		// category "chưa rõ"), rating chỉ default 0 khi tính điểm.
		if r.Rating != nil {
			if req.MinRating != nil && *r.Rating < *req.MinRating {
				continue
			}
			if req.MaxRating != nil && *r.Rating > *req.MaxRating {
				continue
			}
		}

		if len(wantTags) > 0 && !anyTagEqual(r.Tags, wantTags) {
			continue
		}

		if province != "" && !matchesProvince(r, province) {
			continue
		}

		// Điểm match / điểm base
		var score float64
		switch {
		case query != "":
			score = e.matchScore(snap, r, query)
			if score == 0 {
				// không dính query ở bất kỳ tín hiệu nào -> loại hẳn
				continue
			}
		case province != "":
			score = baseProvinceOnly
		case !hasFilters:
			score = baseNearby
		}

		// Điểm phụ: rating và độ gần
		score += r.RatingOrZero() * 2
		if dist != nil {
			if bonus := proximityMax * (1 - *dist/radius); bonus > 0 {
				score += bonus
			}
		}

		sr := ScoredRestaurant{Restaurant: *r, Score: round2(score)}
		if dist != nil {
			d := round2(*dist)
			sr.DistanceKm = &d
		}
		results = append(results, sr)
	}

	// Điểm giảm dần; hòa điểm thì gần hơn đứng trước; còn hòa nữa giữ
	// nguyên thứ tự catalog (sort ổn định).
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].DistanceKm != nil && results[j].DistanceKm != nil {
			return *results[i].DistanceKm < *results[j].DistanceKm
		}
		return false
	})

	if e.logger != nil {
		e.logger.Debug("Search xong",
			zap.String("query", query),
			zap.String("province", province),
			zap.Float64("radius_km", radius),
			zap.Int("results", len(results)))
	}
	return results
}

// translated normalize rồi thử dịch địa danh; nếu bảng tra đổi chuỗi
// thì normalize lại bản dịch để so khớp.
func (e *Engine) translated(s string) string {
	folded := normalizer.Fold(s)
	if folded == "" {
		return ""
	}
	if canonical := e.tables.TranslatePlace(folded); canonical != folded {
		return normalizer.Fold(canonical)
	}
	return folded
}

// matchScore cộng dồn các tín hiệu match độc lập cho một quán.
func (e *Engine) matchScore(snap *catalog.Snapshot, r *models.Restaurant, query string) float64 {
	var score float64

	if r.CategoryID != nil && e.tables.CategoryMatches(*r.CategoryID, query) {
		score += pointsCategory
	}

	if name := normalizer.Fold(r.Name); name != "" && strings.Contains(name, query) {
		score += pointsName
	}

	for _, tag := range r.Tags {
		t := normalizer.Fold(tag)
		if t == "" {
			continue
		}
		if strings.Contains(t, query) || strings.Contains(query, t) {
			score += pointsTag
			break
		}
	}

	for _, item := range snap.Menu(r.ID.String()) {
		if dish := normalizer.Fold(item.DishName); dish != "" && strings.Contains(dish, query) {
			score += pointsDish
			break
		}
	}

	return score
}

// matchesProvince province khớp khi address chứa province, hoặc một tag
// chứa/bị chứa bởi province (match hai chiều).
func matchesProvince(r *models.Restaurant, province string) bool {
	if strings.Contains(normalizer.Fold(r.Address), province) {
		return true
	}
	for _, tag := range r.Tags {
		t := normalizer.Fold(tag)
		if t == "" {
			continue
		}
		if strings.Contains(t, province) || strings.Contains(province, t) {
			return true
		}
	}
	return false
}

// anyTagEqual filter tags: chỉ cần MỘT tag của quán nằm trong tập yêu
// cầu (so sánh sau normalize).
func anyTagEqual(tags []string, want []string) bool {
	for _, tag := range tags {
		t := normalizer.Fold(tag)
		for _, w := range want {
			if t == w {
				return true
			}
		}
	}
	return false
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
