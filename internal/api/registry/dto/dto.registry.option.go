// Package dto - DTO cho domain Registry (option).
package dto

// OptionCreateInput dữ liệu tạo option mới trong một facet.
type OptionCreateInput struct {
	FacetID  string            `json:"facetId" validate:"required,objectid"`
	Code     string            `json:"code" validate:"required"`
	Labels   map[string]string `json:"labels" validate:"required"`
	Synonyms []string          `json:"synonyms,omitempty"`
	Order    int               `json:"order"`
	ClientID string            `json:"clientId,omitempty"`
}

// OptionUpdateInput dữ liệu cập nhật option. Code/facetId không cho đổi.
type OptionUpdateInput struct {
	Labels   map[string]string `json:"labels,omitempty"`
	Synonyms []string          `json:"synonyms,omitempty"`
	Order    int               `json:"order,omitempty"`
	Status   string            `json:"status,omitempty" validate:"omitempty,oneof=active hidden"`
}

// OptionFindOrCreateInput dữ liệu cho find-or-create theo label.
// Gọi lặp với cùng label (khác hoa/thường, khoảng trắng) luôn trả về cùng option.
type OptionFindOrCreateInput struct {
	FacetID string `json:"facetId" validate:"required,objectid"`
	Label   string `json:"label" validate:"required"`
	Locale  string `json:"locale,omitempty"` // mặc định "ko"
}
