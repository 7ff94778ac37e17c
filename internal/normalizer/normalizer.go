package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Fold đưa chuỗi về dạng so sánh: lowercase, bỏ dấu tiếng Việt, gọn khoảng trắng.
// "Phở Hà Nội" -> "pho ha noi", "Đà Nẵng" -> "da nang".
//
// Đây là policy chuẩn hóa DUY NHẤT của hệ thống: mọi phép so sánh
// (query, tên quán, tags, tên món, province) đều đi qua Fold trước,
// không so sánh chuỗi thô ở bất kỳ chỗ nào khác.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(unidecode.Unidecode(s))
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
