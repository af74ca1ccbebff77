// Package dto - DTO cho domain Items.
package dto

// ItemCreateInput dữ liệu tạo item mới.
// normalized và flatFacetPairs KHÔNG nhận từ client — server tự tính.
type ItemCreateInput struct {
	SheetID   string              `json:"sheetId" validate:"required,objectid"`
	Name      string              `json:"name" validate:"required"`
	FacetRefs map[string][]string `json:"facetRefs,omitempty"`
	Order     int                 `json:"order"`
	Required  bool                `json:"required,omitempty"`
	ClientID  string              `json:"clientId,omitempty"` // idempotency key: retry cùng clientId trả về item đã tạo
}

// ItemUpdateInput dữ liệu cập nhật item.
// Gửi facetRefs → server tính lại flatFacetPairs; gửi name → tính lại normalized.
// Order là con trỏ để phân biệt "không gửi" với "reset về 0".
type ItemUpdateInput struct {
	SheetID   string              `json:"sheetId,omitempty" validate:"omitempty,objectid"`
	Name      string              `json:"name,omitempty"`
	FacetRefs map[string][]string `json:"facetRefs,omitempty"`
	Order     *int                `json:"order,omitempty"`
}

// FacetFilter một điều kiện lọc (item phải có cặp facet/option này).
type FacetFilter struct {
	FacetID  string `json:"facetId" validate:"required,objectid"`
	OptionID string `json:"optionId" validate:"required,objectid"`
}

// ItemSearchInput dữ liệu search theo facet. Nhiều filter = AND (giao).
type ItemSearchInput struct {
	Filters []FacetFilter `json:"filters" validate:"required,min=1,dive"`
	Limit   int           `json:"limit,omitempty"`
}

// ItemBulkCreateInput tạo nhiều item. Chia chunk tối đa 500, mỗi chunk một
// transaction; giữa các chunk best-effort.
type ItemBulkCreateInput struct {
	Items []ItemCreateInput `json:"items" validate:"required,min=1,dive"`
}

// ItemBulkUpdateInput cập nhật nhiều item theo id.
type ItemBulkUpdateInput struct {
	Updates []ItemBulkUpdateEntry `json:"updates" validate:"required,min=1,dive"`
}

// ItemBulkUpdateEntry một entry của bulk update.
type ItemBulkUpdateEntry struct {
	ID    string          `json:"id" validate:"required,objectid"`
	Patch ItemUpdateInput `json:"patch"`
}

// ItemBulkDeleteInput xóa nhiều item theo id.
type ItemBulkDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,objectid"`
}
