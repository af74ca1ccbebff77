// Package models - Facet thuộc domain Registry (registry_facets).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Facet là một chiều phân loại do tenant tự định nghĩa (ví dụ "Vị trí", "Loại thiết bị").
// Code là định danh machine-readable, duy nhất trong tenant (đảm bảo qua FacetCodeLookup).
type Facet struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TenantID   primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:facet_tenant_status"`
	Code       string             `json:"code" bson:"code"`
	Labels     map[string]string  `json:"labels" bson:"labels"`         // locale → hiển thị, ví dụ {"ko": "위치", "en": "Location"}
	Normalized string             `json:"normalized" bson:"normalized"` // NormalizeLabel của label chính, dùng cho so khớp
	Type       string             `json:"type" bson:"type"`             // single | multi | text | time | date
	Indexed    bool               `json:"indexed" bson:"indexed"`       // có tham gia flatFacetPairs hay không
	Order      int                `json:"order" bson:"order"`           // thứ tự hiển thị trong tenant
	Status     string             `json:"status" bson:"status" index:"single:1;compound:facet_tenant_status"`
	ClientID   string             `json:"clientId,omitempty" bson:"clientId,omitempty"` // idempotency key do client sinh

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
