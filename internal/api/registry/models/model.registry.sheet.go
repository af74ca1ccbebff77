// Package models - Sheet thuộc domain Registry (registry_sheets).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sheet là một view/trang gom nhóm facet để hiển thị (ví dụ trang "Thiết bị" dùng
// các facet Vị trí, Loại, Trạng thái bảo trì). FacetIDs là tập facet tham gia;
// FacetAliases cho phép đổi tên hiển thị của facet riêng trong sheet này.
// Mọi thay đổi facetIds/facetAliases đều đi qua một update đơn document để giữ atomic.
type Sheet struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TenantID     primitive.ObjectID   `json:"tenantId" bson:"tenantId" index:"single:1;compound:sheet_tenant_status"`
	Code         string               `json:"code" bson:"code"`
	Labels       map[string]string    `json:"labels" bson:"labels"`
	Icon         string               `json:"icon,omitempty" bson:"icon,omitempty"`
	FacetIDs     []primitive.ObjectID `json:"facetIds" bson:"facetIds"`
	FacetAliases map[string]string    `json:"facetAliases,omitempty" bson:"facetAliases,omitempty"` // facetId hex → alias
	Order        int                  `json:"order" bson:"order"`
	Status       string               `json:"status" bson:"status" index:"compound:sheet_tenant_status"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
