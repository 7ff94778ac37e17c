package keywords

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KhoaTranFitus/backend-food-app/internal/normalizer"
)

// Tables hai bảng tra tĩnh của search engine:
//   - places: cách viết không dấu / tiếng Anh -> tag tỉnh/thành chuẩn
//   - categories: category id -> các stem keyword (đã normalize)
//
// Cả hai là dữ liệu cấu hình, operator có thể mở rộng qua file YAML
// (LoadOverlay) mà không đụng vào thuật toán.
type Tables struct {
	places     map[string]string
	categories map[int][]string
}

// overlayFile cấu trúc file YAML mở rộng bảng tra.
type overlayFile struct {
	Places     map[string]string `yaml:"places"`
	Categories map[int][]string  `yaml:"categories"`
}

// Default bảng tra mặc định.
func Default() *Tables {
	return &Tables{
		places: map[string]string{
			"ho chi minh":     "TP. Hồ Chí Minh",
			"tp ho chi minh":  "TP. Hồ Chí Minh",
			"tp. ho chi minh": "TP. Hồ Chí Minh",
			"tphcm":           "TP. Hồ Chí Minh",
			"tp hcm":          "TP. Hồ Chí Minh",
			"hcm":             "TP. Hồ Chí Minh",
			"hcmc":            "TP. Hồ Chí Minh",
			"sai gon":         "TP. Hồ Chí Minh",
			"saigon":          "TP. Hồ Chí Minh",
			"sg":              "TP. Hồ Chí Minh",
			"ha noi":          "Hà Nội",
			"hanoi":           "Hà Nội",
			"hn":              "Hà Nội",
			"da nang":         "Đà Nẵng",
			"danang":          "Đà Nẵng",
			"hue":             "Huế",
			"can tho":         "Cần Thơ",
			"hai phong":       "Hải Phòng",
			"nha trang":       "Nha Trang",
			"da lat":          "Đà Lạt",
			"dalat":           "Đà Lạt",
			"vung tau":        "Vũng Tàu",
		},
		// id theo data: 1 món khô, 2 món nước, 3 chay, 4 món mặn, 5 hải sản
		categories: map[int][]string{
			1: {"com", "com tam", "banh mi", "xoi", "banh xeo"},
			2: {"pho", "bun", "hu tieu", "mi quang", "banh canh", "chao", "lau", "sup"},
			3: {"chay"},
			4: {"man", "nuong", "quay", "kho to"},
			5: {"hai san", "oc", "tom", "cua", "ghe", "muc"},
		},
	}
}

// LoadOverlay đọc file YAML và gộp thêm vào bảng mặc định.
// Key của places và stem của categories được normalize lại trước khi
// gộp để file cấu hình có thể viết có dấu.
func (t *Tables) LoadOverlay(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("đọc file keywords: %w", err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(b, &overlay); err != nil {
		return fmt.Errorf("parse file keywords: %w", err)
	}

	for k, v := range overlay.Places {
		t.places[normalizer.Fold(k)] = v
	}
	for id, stems := range overlay.Categories {
		for _, stem := range stems {
			t.categories[id] = append(t.categories[id], normalizer.Fold(stem))
		}
	}
	return nil
}

// TranslatePlace tra bảng địa danh với input ĐÃ normalize.
// Tra exact-match trên toàn bộ chuỗi; không có entry thì trả nguyên
// input — dịch địa danh là best-effort, không bao giờ là điều kiện cứng.
func (t *Tables) TranslatePlace(normalized string) string {
	if canonical, ok := t.places[normalized]; ok {
		return canonical
	}
	return normalized
}

// CategoryMatches báo query (đã normalize) có chứa stem nào của
// category không. Dùng để free-text query ngầm ưu tiên một nhóm món
// (vd. query chứa "chay" đẩy điểm các quán chay).
func (t *Tables) CategoryMatches(categoryID int, normalizedQuery string) bool {
	for _, stem := range t.categories[categoryID] {
		if stem != "" && strings.Contains(normalizedQuery, stem) {
			return true
		}
	}
	return false
}
