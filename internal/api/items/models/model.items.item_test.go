// Package models - Test phẳng hóa facetRefs và round-trip token.
package models

import (
	"testing"

	"datapage/internal/utility"
)

func TestFacetPairToken(t *testing.T) {
	got := FacetPairToken("f1", "o1")
	if got != "f1|o1" {
		t.Errorf("FacetPairToken = %q, muốn \"f1|o1\"", got)
	}
}

func TestToFlatFacetPairs(t *testing.T) {
	refs := map[string][]string{
		"f2": {"o3"},
		"f1": {"o1", "o2"},
	}
	pairs := ToFlatFacetPairs(refs)
	want := []string{"f1|o1", "f1|o2", "f2|o3"}
	if len(pairs) != len(want) {
		t.Fatalf("ToFlatFacetPairs trả về %d token, muốn %d: %v", len(pairs), len(want), pairs)
	}
	// Key duyệt theo thứ tự sort nên kết quả deterministic
	for i, w := range want {
		if pairs[i] != w {
			t.Errorf("pairs[%d] = %q, muốn %q", i, pairs[i], w)
		}
	}
}

func TestToFlatFacetPairs_Empty(t *testing.T) {
	if got := ToFlatFacetPairs(nil); got == nil || len(got) != 0 {
		t.Errorf("nil refs phải ra slice rỗng (không nil), got %v", got)
	}
	if got := ToFlatFacetPairs(map[string][]string{}); got == nil || len(got) != 0 {
		t.Errorf("refs rỗng phải ra slice rỗng (không nil), got %v", got)
	}
	// Facet có danh sách option rỗng không sinh token nào
	if got := ToFlatFacetPairs(map[string][]string{"f1": {}}); len(got) != 0 {
		t.Errorf("facet không có option phải không sinh token, got %v", got)
	}
}

func TestParseFlatFacetPairs_RoundTrip(t *testing.T) {
	tokens := []string{"f1|o1", "f1|o2", "f2|o3"}
	refs := ParseFlatFacetPairs(tokens)
	back := ToFlatFacetPairs(refs)
	if !utility.SetEqual(back, tokens) {
		t.Errorf("round-trip không set-equal: %v → %v → %v", tokens, refs, back)
	}
}

func TestParseFlatFacetPairs_SkipsMalformed(t *testing.T) {
	tokens := []string{"f1|o1", "khong-co-phan-cach", "|o2", "f3|", ""}
	refs := ParseFlatFacetPairs(tokens)
	if len(refs) != 1 {
		t.Fatalf("token hỏng phải bị bỏ qua, refs = %v", refs)
	}
	if len(refs["f1"]) != 1 || refs["f1"][0] != "o1" {
		t.Errorf("refs[f1] = %v, muốn [o1]", refs["f1"])
	}
}
