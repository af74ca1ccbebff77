// Package regsvc - Test chọn label chính cho sinh normalized.
package regsvc

import "testing"

func TestPrimaryLabel_PrefersKoThenEn(t *testing.T) {
	labels := map[string]string{"en": "Water Purifier", "ko": "정수기", "vi": "Máy lọc nước"}
	if got := PrimaryLabel(labels); got != "정수기" {
		t.Errorf("PrimaryLabel = %q, muốn ưu tiên \"ko\"", got)
	}

	delete(labels, "ko")
	if got := PrimaryLabel(labels); got != "Water Purifier" {
		t.Errorf("PrimaryLabel = %q, muốn fallback \"en\"", got)
	}
}

func TestPrimaryLabel_FallbackSmallestKey(t *testing.T) {
	labels := map[string]string{"vi": "Máy lọc nước", "ja": "浄水器"}
	if got := PrimaryLabel(labels); got != "浄水器" {
		t.Errorf("PrimaryLabel = %q, muốn label của key nhỏ nhất (\"ja\")", got)
	}
}

func TestPrimaryLabel_SkipsEmptyValues(t *testing.T) {
	labels := map[string]string{"ko": "", "en": "Size"}
	if got := PrimaryLabel(labels); got != "Size" {
		t.Errorf("PrimaryLabel = %q, value rỗng phải bị bỏ qua", got)
	}
	if got := PrimaryLabel(nil); got != "" {
		t.Errorf("PrimaryLabel(nil) = %q, muốn chuỗi rỗng", got)
	}
}
