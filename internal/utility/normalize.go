package utility

import (
	"regexp"
	"strings"
)

// Các regex dùng cho chuẩn hóa label và sinh slug.
// Hỗ trợ tiếng Hàn (Hangul) vì label/option có thể là tiếng Hàn (ví dụ "1층", "정수기").
var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reNonWord     = regexp.MustCompile(`[^0-9a-z_\p{Hangul}]`)
	reSlugInvalid = regexp.MustCompile(`[^0-9a-z\p{Hangul}]+`)
	reUnderscores = regexp.MustCompile(`_+`)
)

// NormalizeLabel chuẩn hóa label thành dạng so khớp: trim → lowercase →
// bỏ toàn bộ whitespace → bỏ ký tự ngoài [word chars, Hangul].
// Hàm này idempotent: NormalizeLabel(NormalizeLabel(s)) == NormalizeLabel(s).
// Hai label chỉ khác nhau về hoa/thường, khoảng trắng, dấu câu luôn cho cùng kết quả —
// đây là nền tảng của cơ chế "create if absent" qua lookup document.
func NormalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reWhitespace.ReplaceAllString(s, "")
	return reNonWord.ReplaceAllString(s, "")
}

// Slugify sinh slug từ label/code: lowercase, trim, thay run ký tự ngoài
// [a-z0-9, Hangul] bằng "_", gộp và cắt "_" thừa ở hai đầu.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reSlugInvalid.ReplaceAllString(s, "_")
	s = reUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
