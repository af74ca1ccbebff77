// Package models - Option thuộc domain Registry (registry_options).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Option là một giá trị thuộc facet kiểu single/multi (ví dụ "1층", "2층" của facet "Vị trí").
// Code duy nhất trong phạm vi facet; normalized duy nhất trong phạm vi facet
// (cả hai đảm bảo qua lookup document, không dùng unique index).
type Option struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TenantID   primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:option_tenant_facet_status"`
	FacetID    primitive.ObjectID `json:"facetId" bson:"facetId" index:"single:1;compound:option_tenant_facet_status"`
	Code       string             `json:"code" bson:"code"`
	Labels     map[string]string  `json:"labels" bson:"labels"`
	Normalized string             `json:"normalized" bson:"normalized"`
	Synonyms   []string           `json:"synonyms,omitempty" bson:"synonyms,omitempty"` // các cách viết khác cùng nghĩa, đã chuẩn hóa
	Order      int                `json:"order" bson:"order"`
	Status     string             `json:"status" bson:"status" index:"compound:option_tenant_facet_status"`
	ClientID   string             `json:"clientId,omitempty" bson:"clientId,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
