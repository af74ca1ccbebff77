// Package models - Các phép biến đổi thuần trên facetRefs.
// Dùng chung cho đường ghi item và cascade archive facet/option.
package models

// StripFacetFromRefs trả về bản sao facetRefs đã gỡ toàn bộ key facetHex.
// Input không bị mutate.
func StripFacetFromRefs(facetRefs map[string][]string, facetHex string) map[string][]string {
	out := make(map[string][]string, len(facetRefs))
	for k, v := range facetRefs {
		if k == facetHex {
			continue
		}
		out[k] = v
	}
	return out
}

// StripOptionFromRefs trả về bản sao facetRefs đã gỡ optionHex khỏi danh sách
// của facetHex; nếu danh sách rỗng sau khi gỡ thì xóa luôn key.
// Input không bị mutate.
func StripOptionFromRefs(facetRefs map[string][]string, facetHex string, optionHex string) map[string][]string {
	out := make(map[string][]string, len(facetRefs))
	for k, v := range facetRefs {
		if k != facetHex {
			out[k] = v
			continue
		}
		kept := make([]string, 0, len(v))
		for _, opt := range v {
			if opt != optionHex {
				kept = append(kept, opt)
			}
		}
		if len(kept) > 0 {
			out[k] = kept
		}
	}
	return out
}
