package search

import (
	"testing"

	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
	"github.com/KhoaTranFitus/backend-food-app/internal/catalog"
	"github.com/KhoaTranFitus/backend-food-app/internal/keywords"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// Tâm test: trung tâm Quận 1, TP.HCM
const (
	userLat = 10.7769
	userLon = 106.7009
)

// ~0.009 độ vĩ tuyến ~ 1 km
func latAtKm(km float64) float64 { return userLat + km*0.009 }

func newTestEngine(t *testing.T, restaurants []models.Restaurant, menus map[string][]models.MenuItem) *Engine {
	t.Helper()
	store := catalog.NewStore(catalog.NewSnapshot(restaurants, menus))
	e, err := NewEngine(store, keywords.Default(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func defaultEngine(t *testing.T) *Engine {
	t.Helper()
	restaurants, menus := defaultCatalog()
	return newTestEngine(t, restaurants, menus)
}

func defaultCatalog() ([]models.Restaurant, map[string][]models.MenuItem) {
	restaurants := []models.Restaurant{
		{
			ID: "1", Name: "Phở Hà Nội",
			Address: "12 Lò Đúc, Hà Nội",
			Tags:    []string{"Phở/Bún", "Hà Nội"},
			Rating:  fptr(4.5),
		},
		{
			ID: "2", Name: "Cơm Tấm Ba Ghiền",
			Address:    "84 Đặng Văn Ngữ, TP. Hồ Chí Minh",
			Tags:       []string{"Cơm", "TP. Hồ Chí Minh"},
			CategoryID: iptr(1),
			Lat:        fptr(latAtKm(1)), Lon: fptr(userLon),
			Rating:     fptr(4.0),
			PriceRange: "50,000đ-150,000đ",
		},
		{
			ID: "3", Name: "Quán Chay An Lạc",
			Address:    "33 Nguyễn Trãi, TP. Hồ Chí Minh",
			Tags:       []string{"Chay", "TP. Hồ Chí Minh"},
			CategoryID: iptr(3),
			Lat:        fptr(latAtKm(1.5)), Lon: fptr(userLon),
			PriceRange: "garbage",
		},
		{
			ID: "4", Name: "Ốc Đêm Sài Gòn",
			Address:    "Bờ kè Hoàng Sa, TP. Hồ Chí Minh",
			Tags:       []string{"Hải sản", "TP. Hồ Chí Minh"},
			CategoryID: iptr(5),
			Lat:        fptr(latAtKm(4)), Lon: fptr(userLon),
			Rating:     fptr(3.5),
			PriceRange: "300,000đ+",
		},
	}
	menus := map[string][]models.MenuItem{
		"1": {{DishName: "Phở bò tái"}, {DishName: "Phở gà"}},
		"2": {{DishName: "Cơm tấm sườn bì chả"}},
		"3": {{DishName: "Lẩu nấm chay"}},
	}
	return restaurants, menus
}

func find(results []ScoredRestaurant, id string) *ScoredRestaurant {
	for i := range results {
		if results[i].ID.String() == id {
			return &results[i]
		}
	}
	return nil
}

// Query "pho": match tên (+10), tag (+8) và món "Phở bò tái" (+5),
// cộng rating 4.5*2 = 32.
func TestSearch_QueryNameAndTag(t *testing.T) {
	e := defaultEngine(t)

	results := e.Search(Request{Query: "pho"})
	r := find(results, "1")
	if r == nil {
		t.Fatal("restaurant 1 not in results")
	}
	if r.Score < 19 {
		t.Errorf("score = %v, want >= 19", r.Score)
	}
	if r.Score != 32 {
		t.Errorf("score = %v, want 32 (name 10 + tag 8 + dish 5 + rating 9)", r.Score)
	}
	if r.DistanceKm != nil {
		t.Error("no coordinates in request -> no distance on result")
	}
}

// Query không dính tín hiệu nào -> loại hẳn, không phải điểm 0.
func TestSearch_NoMatchExcluded(t *testing.T) {
	e := defaultEngine(t)
	if results := e.Search(Request{Query: "sushi"}); len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

// Match qua tên món trong menu (+5).
func TestSearch_DishMatch(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Query: "pho bo"})
	r := find(results, "1")
	if r == nil {
		t.Fatal("restaurant 1 not found via dish name")
	}
	// dish 5 + rating 9; tên "pho ha noi" không chứa "pho bo"
	if r.Score != 14 {
		t.Errorf("score = %v, want 14", r.Score)
	}
}

// Query chứa stem category ("chay" -> category 3) ăn +15.
func TestSearch_CategoryKeywordBoost(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Query: "chay"})
	r := find(results, "3")
	if r == nil {
		t.Fatal("restaurant 3 not found")
	}
	// category 15 + tên "Quán Chay An Lạc" 10 + tag 8
	// + dish "Lẩu nấm chay" 5, rating thiếu = 0
	if r.Score != 38 {
		t.Errorf("score = %v, want 38", r.Score)
	}
}

// Mode "quanh đây" thuần túy: bán kính 2 km, quán ngoài bị loại.
func TestSearch_NearbyMode(t *testing.T) {
	restaurants := []models.Restaurant{
		{ID: "near", Name: "Gần", Lat: fptr(latAtKm(1)), Lon: fptr(userLon), Rating: fptr(4.0)},
		{ID: "far", Name: "Xa", Lat: fptr(latAtKm(4)), Lon: fptr(userLon), Rating: fptr(5.0)},
	}
	e := newTestEngine(t, restaurants, nil)

	results := e.Search(Request{Lat: fptr(userLat), Lon: fptr(userLon)})
	if len(results) != 1 || results[0].ID != "near" {
		t.Fatalf("results = %+v, want only 'near'", results)
	}
	r := results[0]
	if r.DistanceKm == nil || *r.DistanceKm < 0.9 || *r.DistanceKm > 1.1 {
		t.Errorf("distance = %v, want ~1.0", r.DistanceKm)
	}
	// base 10 + rating 8 + proximity ~10*(1-1/2)=5
	if r.Score < 22 || r.Score > 24 {
		t.Errorf("score = %v, want ~23", r.Score)
	}
}

// radius tường minh ghi đè default 2 km của mode quanh đây.
func TestSearch_ExplicitRadiusOverride(t *testing.T) {
	restaurants := []models.Restaurant{
		{ID: "far", Name: "Xa", Lat: fptr(latAtKm(4)), Lon: fptr(userLon)},
	}
	e := newTestEngine(t, restaurants, nil)

	if results := e.Search(Request{Lat: fptr(userLat), Lon: fptr(userLon)}); len(results) != 0 {
		t.Fatal("4 km restaurant should be outside the 2 km nearby radius")
	}
	results := e.Search(Request{Lat: fptr(userLat), Lon: fptr(userLon), Radius: fptr(5)})
	if len(results) != 1 {
		t.Fatal("explicit 5 km radius should include the 4 km restaurant")
	}
}

// Có query thì bán kính mặc định là 5 km.
func TestSearch_QueryModeUsesWideRadius(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Query: "oc", Lat: fptr(userLat), Lon: fptr(userLon)})
	if find(results, "4") == nil {
		t.Error("4 km restaurant should be inside the 5 km default radius in query mode")
	}
}

// Không gửi tọa độ -> không loại quán nào vì khoảng cách.
func TestSearch_NoCoordsNoDistanceExclusion(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{})
	if len(results) != 4 {
		t.Errorf("got %d results, want all 4", len(results))
	}
	for _, r := range results {
		if r.Score < 0 {
			t.Errorf("restaurant %s has negative score %v", r.ID, r.Score)
		}
		if r.DistanceKm != nil {
			t.Errorf("restaurant %s has distance without user coords", r.ID)
		}
	}
}

// Quán thiếu tọa độ không bị loại bởi filter khoảng cách.
func TestSearch_MissingRestaurantCoordsPassThrough(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Query: "pho", Lat: fptr(userLat), Lon: fptr(userLon)})
	r := find(results, "1")
	if r == nil {
		t.Fatal("restaurant without coordinates must not be distance-excluded")
	}
	if r.DistanceKm != nil {
		t.Error("distance must be nil for restaurant without coordinates")
	}
}

// Scenario C: high(150,000) < min_price(200,000) -> loại.
func TestSearch_PriceFilter(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{MinPrice: fptr(200000)})

	if find(results, "2") != nil {
		t.Error("restaurant 2 (max 150k) should be excluded by min_price 200k")
	}
	// "300,000đ+" giao với [200000, inf) -> giữ
	if find(results, "4") == nil {
		t.Error("restaurant 4 (300k+) should pass min_price 200k")
	}
	// giá parse hỏng -> (0, inf) -> không bao giờ bị loại vì giá
	if find(results, "3") == nil {
		t.Error("restaurant with garbage price_range must never be price-excluded")
	}
}

// Scenario D: quán không có category_id đi qua filter category.
func TestSearch_CategoryFilterUnknownPassThrough(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Categories: []int{2}})

	if find(results, "1") == nil {
		t.Error("restaurant without category_id should pass the category filter")
	}
	if find(results, "2") != nil {
		t.Error("restaurant with category 1 should be excluded by categories=[2]")
	}
}

// Quán chưa có rating đi qua filter rating; rating 0 chỉ dùng khi tính điểm.
func TestSearch_RatingFilterUnknownPassThrough(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{MinRating: fptr(4.0)})

	if find(results, "3") == nil {
		t.Error("restaurant without rating should pass min_rating")
	}
	if find(results, "4") != nil {
		t.Error("restaurant rated 3.5 should be excluded by min_rating 4.0")
	}
	if find(results, "1") == nil || find(results, "2") == nil {
		t.Error("restaurants rated >= 4.0 should pass")
	}
}

func TestSearch_TagsFilter(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Tags: []string{"Hải sản"}})
	if len(results) != 1 || results[0].ID != "4" {
		t.Errorf("results = %+v, want only restaurant 4", results)
	}
}

// Province match qua tag hoặc address, sau khi dịch địa danh.
func TestSearch_ProvinceFilterWithTranslation(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Province: "saigon"})

	if find(results, "1") != nil {
		t.Error("Hà Nội restaurant should be excluded by province saigon")
	}
	for _, id := range []string{"2", "3", "4"} {
		if find(results, id) == nil {
			t.Errorf("restaurant %s should match province saigon", id)
		}
	}
	// base 1 + rating*2
	if r := find(results, "2"); r != nil && r.Score != 9 {
		t.Errorf("province-only score = %v, want 9", r.Score)
	}
}

// Query là địa danh: dịch rồi match tag tỉnh/thành.
func TestSearch_QueryPlaceTranslation(t *testing.T) {
	e := defaultEngine(t)
	results := e.Search(Request{Query: "hcmc"})
	if find(results, "2") == nil {
		t.Error("query 'hcmc' should match the TP. Hồ Chí Minh tag after translation")
	}
	if find(results, "1") != nil {
		t.Error("Hà Nội restaurant should not match query 'hcmc'")
	}
}

// Giữ nguyên mọi thứ, tăng rating thì điểm không giảm.
func TestSearch_RatingMonotonic(t *testing.T) {
	base := models.Restaurant{ID: "x", Name: "Phở Test", Tags: []string{"Phở"}}
	low, high := base, base
	low.Rating = fptr(3.0)
	high.Rating = fptr(5.0)

	eLow := newTestEngine(t, []models.Restaurant{low}, nil)
	eHigh := newTestEngine(t, []models.Restaurant{high}, nil)

	sLow := eLow.Search(Request{Query: "pho"})[0].Score
	sHigh := eHigh.Search(Request{Query: "pho"})[0].Score
	if sHigh < sLow {
		t.Errorf("higher rating lowered score: %v -> %v", sLow, sHigh)
	}
}

// Hòa điểm: quán gần hơn đứng trước; hòa cả khoảng cách giữ thứ tự catalog.
func TestSearch_Ordering(t *testing.T) {
	restaurants := []models.Restaurant{
		{ID: "a", Name: "Phở A", Lat: fptr(latAtKm(1.5)), Lon: fptr(userLon)},
		{ID: "b", Name: "Phở B", Lat: fptr(latAtKm(0.5)), Lon: fptr(userLon)},
		{ID: "c", Name: "Phở C"},
		{ID: "d", Name: "Phở D"},
	}
	e := newTestEngine(t, restaurants, nil)

	results := e.Search(Request{Query: "pho", Lat: fptr(userLat), Lon: fptr(userLon)})
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	// b gần hơn -> proximity bonus cao hơn -> đứng đầu
	if results[0].ID != "b" {
		t.Errorf("first = %s, want b", results[0].ID)
	}
	// c và d hòa điểm, không có khoảng cách -> giữ thứ tự catalog
	ci, di := -1, -1
	for i, r := range results {
		switch r.ID {
		case "c":
			ci = i
		case "d":
			di = i
		}
	}
	if ci == -1 || di == -1 || ci > di {
		t.Errorf("stable order violated: c at %d, d at %d", ci, di)
	}
}

func TestNewEngine_RequiresCatalog(t *testing.T) {
	if _, err := NewEngine(nil, keywords.Default(), zap.NewNop()); err == nil {
		t.Error("expected error for nil store")
	}
}
