// Package dto - DTO cho domain Registry (facet).
package dto

// FacetCreateInput dữ liệu tạo facet mới.
// tenantId lấy từ context (middleware), không nhận từ body.
type FacetCreateInput struct {
	Code     string            `json:"code" validate:"required"`
	Labels   map[string]string `json:"labels" validate:"required"`
	Type     string            `json:"type" validate:"required,oneof=single multi text time date"`
	Indexed  bool              `json:"indexed"`
	Order    int               `json:"order"`
	ClientID string            `json:"clientId,omitempty"`
}

// FacetUpdateInput dữ liệu cập nhật facet. Code không cho đổi (gắn với lookup key);
// chuyển sang archived đi qua endpoint archive riêng để trigger dọn tham chiếu.
type FacetUpdateInput struct {
	Labels  map[string]string `json:"labels,omitempty"`
	Indexed bool              `json:"indexed,omitempty"`
	Order   int               `json:"order,omitempty"`
	Status  string            `json:"status,omitempty" validate:"omitempty,oneof=active hidden"`
}
