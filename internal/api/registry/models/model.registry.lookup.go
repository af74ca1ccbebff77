// Package models - Các lookup document đảm bảo tính duy nhất procedural
// (registry_facet_code_lookups, registry_option_code_lookups, registry_option_normalized_lookups).
//
// KHÔNG dùng unique index cho uniqueness. Thay vào đó: mỗi ràng buộc duy nhất
// được vật chất hóa thành một document có _id = "<tenantIdHex>_<key>".
// Kiểm tra trùng = một point read theo _id (O(1)); tạo entity + lookup luôn
// nằm trong cùng một WriteBatch để hai document không bao giờ lệch nhau.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"datapage/internal/utility"
)

// FacetCodeLookup giữ ràng buộc "code facet duy nhất trong tenant".
type FacetCodeLookup struct {
	ID string `json:"id" bson:"_id"` // "<tenantIdHex>_facet_<slug(code)>"

	TenantID primitive.ObjectID `json:"tenantId" bson:"tenantId"`
	Key      string             `json:"key" bson:"key"`
	EntityID primitive.ObjectID `json:"entityId" bson:"entityId"` // _id của facet đang giữ key

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// OptionCodeLookup giữ ràng buộc "code option duy nhất trong facet".
type OptionCodeLookup struct {
	ID string `json:"id" bson:"_id"` // "<tenantIdHex>_<facetIdHex>_<slug(code)>"

	TenantID primitive.ObjectID `json:"tenantId" bson:"tenantId"`
	FacetID  primitive.ObjectID `json:"facetId" bson:"facetId"`
	Key      string             `json:"key" bson:"key"`
	EntityID primitive.ObjectID `json:"entityId" bson:"entityId"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// OptionNormalizedLookup giữ ràng buộc "label chuẩn hóa duy nhất trong facet".
// Đây là nền của FindOrCreateOption: cùng label (khác hoa/thường, khoảng trắng)
// luôn map về cùng một option.
type OptionNormalizedLookup struct {
	ID string `json:"id" bson:"_id"` // "<tenantIdHex>_<facetIdHex>_<normalized>"

	TenantID primitive.ObjectID `json:"tenantId" bson:"tenantId"`
	FacetID  primitive.ObjectID `json:"facetId" bson:"facetId"`
	Key      string             `json:"key" bson:"key"`
	EntityID primitive.ObjectID `json:"entityId" bson:"entityId"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// FacetLookupKey sinh key duy nhất cho code facet trong tenant.
func FacetLookupKey(code string) string {
	return "facet_" + utility.Slugify(code)
}

// OptionLookupKeyByCode sinh key duy nhất cho code option trong facet.
func OptionLookupKeyByCode(facetIdHex string, code string) string {
	return facetIdHex + "_" + utility.Slugify(code)
}

// OptionLookupKeyByNormalized sinh key duy nhất cho label chuẩn hóa trong facet.
// normalized phải là kết quả của utility.NormalizeLabel.
func OptionLookupKeyByNormalized(facetIdHex string, normalized string) string {
	return facetIdHex + "_" + normalized
}

// LookupDocID ghép _id của lookup document: scope tenant nằm ngay trong _id
// nên point read không cần thêm filter tenantId.
func LookupDocID(tenantIdHex string, key string) string {
	return tenantIdHex + "_" + key
}
