package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/KhoaTranFitus/backend-food-app/app/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	// id vừa số vừa chuỗi; quán 2 thiếu tọa độ/rating
	restaurantsPath := writeFile(t, dir, "restaurants.json", `[
		{"id": 1, "name": "Phở Hà Nội", "address": "12 Lò Đúc, Hà Nội", "tags": ["Phở/Bún", "Hà Nội"], "lat": 21.0, "lon": 105.8, "rating": 4.5},
		{"id": "r2", "name": "Cơm Tấm Ba Ghiền", "address": "84 Đặng Văn Ngữ, TP. Hồ Chí Minh", "tags": ["Cơm"]}
	]`)
	// hai dạng menu: mảng trần và bọc trong {"menu": ...}
	menusPath := writeFile(t, dir, "menus.json", `{
		"1": [{"dish_name": "Phở bò tái", "price": 55000}],
		"r2": {"menu": [{"dish_name": "Cơm tấm sườn bì", "price": "65,000đ"}]},
		"ghost": [{"dish_name": "Món của quán không tồn tại"}]
	}`)

	snap, err := Load(restaurantsPath, menusPath, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if snap.Len() != 2 {
		t.Fatalf("Len = %d, want 2", snap.Len())
	}

	r, ok := snap.ByID("1")
	if !ok || r.Name != "Phở Hà Nội" {
		t.Errorf("ByID(1) = %+v, %v", r, ok)
	}
	if r.Rating == nil || *r.Rating != 4.5 {
		t.Errorf("rating not parsed: %+v", r.Rating)
	}

	r2, ok := snap.ByID("r2")
	if !ok {
		t.Fatal("ByID(r2) not found")
	}
	if r2.Lat != nil || r2.Rating != nil {
		t.Error("missing optional fields should stay nil")
	}

	if menu := snap.Menu("1"); len(menu) != 1 || menu[0].DishName != "Phở bò tái" {
		t.Errorf("Menu(1) = %+v", menu)
	}
	if menu := snap.Menu("r2"); len(menu) != 1 || menu[0].DishName != "Cơm tấm sườn bì" {
		t.Errorf("Menu(r2) wrapped form = %+v", menu)
	}
	// menu của id không tồn tại trong restaurants: không lỗi
	if menu := snap.Menu("ghost"); len(menu) != 1 {
		t.Errorf("Menu(ghost) = %+v", menu)
	}
	// quán không có menu: slice rỗng, không panic
	if menu := snap.Menu("unknown"); len(menu) != 0 {
		t.Errorf("Menu(unknown) = %+v", menu)
	}
}

func TestLoad_MissingRestaurantsIsFatal(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope.json"), filepath.Join(dir, "menus.json"), zap.NewNop()); err == nil {
		t.Error("expected error for missing restaurants file")
	}
}

func TestLoad_MissingMenusIsTolerated(t *testing.T) {
	dir := t.TempDir()
	restaurantsPath := writeFile(t, dir, "restaurants.json", `[{"id": 1, "name": "A", "address": ""}]`)
	snap, err := Load(restaurantsPath, filepath.Join(dir, "nope.json"), zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Len() != 1 || len(snap.Menu("1")) != 0 {
		t.Error("snapshot should load with empty menus")
	}
}

func TestStore_Swap(t *testing.T) {
	first := NewSnapshot([]models.Restaurant{{ID: "1", Name: "A"}}, nil)
	second := NewSnapshot([]models.Restaurant{{ID: "2", Name: "B"}}, nil)

	store := NewStore(first)
	if store.Current() != first {
		t.Fatal("Current != first")
	}
	store.Swap(second)
	if store.Current() != second {
		t.Fatal("Current != second after Swap")
	}
	// snapshot cũ vẫn dùng được cho request đang chạy dở
	if _, ok := first.ByID("1"); !ok {
		t.Error("old snapshot mutated by swap")
	}
}
