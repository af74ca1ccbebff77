// Package models - Test sinh key cho lookup document.
package models

import "testing"

func TestFacetLookupKey(t *testing.T) {
	if got := FacetLookupKey("Cold Brew"); got != "facet_cold_brew" {
		t.Errorf("FacetLookupKey(\"Cold Brew\") = %q, muốn \"facet_cold_brew\"", got)
	}
	// Hai code chỉ khác hoa/thường, khoảng trắng phải cho cùng key
	if FacetLookupKey("size") != FacetLookupKey("  SIZE ") {
		t.Error("FacetLookupKey phải chuẩn hóa hoa/thường và khoảng trắng")
	}
}

func TestOptionLookupKeys(t *testing.T) {
	facetHex := "665f1a2b3c4d5e6f70818293"

	byCode := OptionLookupKeyByCode(facetHex, "Cold Brew")
	if byCode != facetHex+"_cold_brew" {
		t.Errorf("OptionLookupKeyByCode = %q", byCode)
	}

	byNorm := OptionLookupKeyByNormalized(facetHex, "정수기")
	if byNorm != facetHex+"_정수기" {
		t.Errorf("OptionLookupKeyByNormalized = %q", byNorm)
	}

	// Cùng code ở hai facet khác nhau phải ra key khác nhau
	if OptionLookupKeyByCode(facetHex, "abc") == OptionLookupKeyByCode("665f1a2b3c4d5e6f70818294", "abc") {
		t.Error("OptionLookupKeyByCode phải scope theo facet")
	}
}

func TestLookupDocID(t *testing.T) {
	tenantHex := "665f000000000000000000aa"
	id := LookupDocID(tenantHex, FacetLookupKey("size"))
	if id != tenantHex+"_facet_size" {
		t.Errorf("LookupDocID = %q, muốn %q", id, tenantHex+"_facet_size")
	}
	// Cùng key ở hai tenant khác nhau phải ra _id khác nhau
	other := LookupDocID("665f000000000000000000bb", FacetLookupKey("size"))
	if id == other {
		t.Error("LookupDocID phải scope theo tenant")
	}
}
