package search

import (
	"math"
	"strconv"
	"strings"
)

var priceCleaner = strings.NewReplacer("đ", "", "₫", "", ",", "", " ", "")

// ParsePriceRange phân tích chuỗi giá của quán thành khoảng [low, high]:
//
//	"50,000đ-150,000đ" -> (50000, 150000)
//	"300,000đ+"        -> (300000, +Inf)
//	"80,000đ"          -> (80000, 80000)
//
// Parse lỗi kiểu gì cũng trả về (0, +Inf) — chuỗi giá hỏng không bao
// giờ là lý do loại một quán khỏi kết quả.
func ParsePriceRange(s string) (low, high float64) {
	low, high = 0, math.Inf(1)
	if s == "" {
		return
	}

	cleaned := priceCleaner.Replace(s)

	switch {
	case strings.Contains(cleaned, "+"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(cleaned, "+"), 64)
		if err != nil {
			return 0, math.Inf(1)
		}
		return v, math.Inf(1)
	case strings.Contains(cleaned, "-"):
		parts := strings.SplitN(cleaned, "-", 2)
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return 0, math.Inf(1)
		}
		return lo, hi
	default:
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, math.Inf(1)
		}
		return v, v
	}
}
