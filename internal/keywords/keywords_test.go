package keywords

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTranslatePlace(t *testing.T) {
	tables := Default()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Saigon", "saigon", "TP. Hồ Chí Minh"},
		{"HCMC", "hcmc", "TP. Hồ Chí Minh"},
		{"TPHCM", "tphcm", "TP. Hồ Chí Minh"},
		{"Hanoi", "ha noi", "Hà Nội"},
		{"Unknown_Passthrough", "quan 3", "quan 3"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tables.TranslatePlace(tc.input); got != tc.expected {
				t.Errorf("TranslatePlace(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCategoryMatches(t *testing.T) {
	tables := Default()

	testCases := []struct {
		name     string
		category int
		query    string
		expected bool
	}{
		{"Vegetarian", 3, "quan chay ngon", true},
		{"Noodle_Pho", 2, "pho bo", true},
		{"Seafood", 5, "oc dem", true},
		{"No_Match", 3, "pho bo", false},
		{"Unknown_Category", 99, "pho bo", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tables.CategoryMatches(tc.category, tc.query); got != tc.expected {
				t.Errorf("CategoryMatches(%d, %q) = %v, want %v", tc.category, tc.query, got, tc.expected)
			}
		})
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `places:
  "Biên Hòa": "Đồng Nai"
categories:
  5:
    - "Cá Lóc"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tables := Default()
	if err := tables.LoadOverlay(path); err != nil {
		t.Fatalf("LoadOverlay: %v", err)
	}

	// key có dấu trong file phải được normalize trước khi tra
	if got := tables.TranslatePlace("bien hoa"); got != "Đồng Nai" {
		t.Errorf("overlay place not merged, got %q", got)
	}
	if !tables.CategoryMatches(5, "ca loc nuong") {
		t.Error("overlay category stem not merged")
	}
	// bảng mặc định vẫn còn nguyên
	if got := tables.TranslatePlace("saigon"); got != "TP. Hồ Chí Minh" {
		t.Errorf("default entry lost after overlay, got %q", got)
	}
}

func TestLoadOverlay_MissingFile(t *testing.T) {
	tables := Default()
	if err := tables.LoadOverlay("/nonexistent/keywords.yaml"); err == nil {
		t.Error("expected error for missing overlay file")
	}
}
