// Package dto - DTO cho domain Registry (sheet).
package dto

// SheetCreateInput dữ liệu tạo sheet mới.
type SheetCreateInput struct {
	Code     string            `json:"code" validate:"required"`
	Labels   map[string]string `json:"labels" validate:"required"`
	Icon     string            `json:"icon,omitempty"`
	FacetIDs []string          `json:"facetIds,omitempty" validate:"omitempty,dive,objectid"`
	Order    int               `json:"order"`
}

// SheetUpdateInput dữ liệu cập nhật sheet.
// facetIds KHÔNG đi qua đây: thêm/bớt facet dùng endpoint add-facets/remove-facet
// để giữ atomic với facetAliases.
type SheetUpdateInput struct {
	Labels map[string]string `json:"labels,omitempty"`
	Icon   string            `json:"icon,omitempty"`
	Order  int               `json:"order,omitempty"`
	Status string            `json:"status,omitempty" validate:"omitempty,oneof=active hidden"`
}

// SheetAddFacetsInput thêm facet vào sheet (union, không trùng).
type SheetAddFacetsInput struct {
	FacetIDs []string          `json:"facetIds" validate:"required,min=1,dive,objectid"`
	Aliases  map[string]string `json:"aliases,omitempty"` // facetId hex → alias, set cùng lúc nếu có
}

// SheetRemoveFacetInput gỡ một facet khỏi sheet (kèm xóa alias tương ứng).
type SheetRemoveFacetInput struct {
	FacetID string `json:"facetId" validate:"required,objectid"`
}
