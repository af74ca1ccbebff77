// Package models - Test các phép biến đổi thuần trên facetRefs.
package models

import (
	"testing"

	"datapage/internal/utility"
)

func TestStripFacetFromRefs(t *testing.T) {
	refs := map[string][]string{
		"f1": {"o1", "o2"},
		"f2": {"o3"},
	}
	got := StripFacetFromRefs(refs, "f1")
	if _, ok := got["f1"]; ok {
		t.Error("f1 phải bị gỡ khỏi facetRefs")
	}
	if len(got["f2"]) != 1 || got["f2"][0] != "o3" {
		t.Errorf("f2 phải giữ nguyên, got %v", got["f2"])
	}
	// Input không bị mutate
	if len(refs["f1"]) != 2 {
		t.Error("StripFacetFromRefs không được mutate input")
	}
}

func TestStripOptionFromRefs(t *testing.T) {
	refs := map[string][]string{
		"f1": {"o1", "o2"},
	}
	got := StripOptionFromRefs(refs, "f1", "o1")
	if len(got["f1"]) != 1 || got["f1"][0] != "o2" {
		t.Errorf("f1 phải còn lại [o2], got %v", got["f1"])
	}
	if len(refs["f1"]) != 2 {
		t.Error("StripOptionFromRefs không được mutate input")
	}
}

func TestStripOptionFromRefs_DropsEmptyFacet(t *testing.T) {
	refs := map[string][]string{
		"f1": {"o1"},
		"f2": {"o3"},
	}
	got := StripOptionFromRefs(refs, "f1", "o1")
	if _, ok := got["f1"]; ok {
		t.Error("facet rỗng sau khi gỡ option cuối phải bị xóa key")
	}
	if _, ok := got["f2"]; !ok {
		t.Error("facet khác không được ảnh hưởng")
	}
}

// Kịch bản cascade: facet "층" (tầng) có option "1층", "2층"; option "1층" bị
// archive thì item đang gắn "1층" phải gỡ đúng option đó và flatFacetPairs
// tính lại phải khớp với facetRefs mới.
func TestStripOptionFromRefs_CascadeRecomputesFlatPairs(t *testing.T) {
	floorFacet := "665f1a2b3c4d5e6f70818293"
	floor1 := "665f1a2b3c4d5e6f70818001" // "1층"
	floor2 := "665f1a2b3c4d5e6f70818002" // "2층"
	deviceFacet := "665f1a2b3c4d5e6f70818294"
	purifier := "665f1a2b3c4d5e6f70818003" // "정수기"

	refs := map[string][]string{
		floorFacet:  {floor1, floor2},
		deviceFacet: {purifier},
	}

	stripped := StripOptionFromRefs(refs, floorFacet, floor1)
	pairs := ToFlatFacetPairs(stripped)

	want := []string{
		FacetPairToken(floorFacet, floor2),
		FacetPairToken(deviceFacet, purifier),
	}
	if !utility.SetEqual(pairs, want) {
		t.Errorf("flatFacetPairs sau cascade = %v, muốn set-equal %v", pairs, want)
	}
	if utility.Contains(pairs, FacetPairToken(floorFacet, floor1)) {
		t.Error("token của option đã archive vẫn còn trong flatFacetPairs")
	}
}
