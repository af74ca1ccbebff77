// Package utility - Test chuẩn hóa label và sinh slug.
package utility

import "testing"

func TestNormalizeLabel_Idempotent(t *testing.T) {
	inputs := []string{"Cold Brew", "  Máy lọc nước  ", "정수기", "1층", "A-B c"}
	for _, s := range inputs {
		once := NormalizeLabel(s)
		twice := NormalizeLabel(once)
		if once != twice {
			t.Errorf("NormalizeLabel không idempotent: %q → %q → %q", s, once, twice)
		}
	}
}

func TestNormalizeLabel_CaseAndSpaceInsensitive(t *testing.T) {
	cases := [][2]string{
		{"Cold Brew", "cold  brew"},
		{"COLD BREW", "coldbrew"},
		{" 정수기 ", "정수기"},
		{"Tầng 1", "tầng1"}, // dấu tiếng Việt bị loại, chỉ còn chữ thường + số
	}
	for _, c := range cases {
		a, b := NormalizeLabel(c[0]), NormalizeLabel(c[1])
		if a != b {
			t.Errorf("NormalizeLabel(%q)=%q khác NormalizeLabel(%q)=%q", c[0], a, c[1], b)
		}
	}
}

func TestNormalizeLabel_KeepsHangulAndDigits(t *testing.T) {
	if got := NormalizeLabel("1층"); got != "1층" {
		t.Errorf("NormalizeLabel(\"1층\") = %q, muốn giữ nguyên \"1층\"", got)
	}
	if got := NormalizeLabel("정수기!!"); got != "정수기" {
		t.Errorf("NormalizeLabel(\"정수기!!\") = %q, muốn \"정수기\"", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cold Brew", "cold_brew"},
		{"  Cold   Brew  ", "cold_brew"},
		{"cold-brew!", "cold_brew"},
		{"정수기", "정수기"},
		{"__a__b__", "a_b"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, muốn %q", c.in, got, c.want)
		}
	}
}
