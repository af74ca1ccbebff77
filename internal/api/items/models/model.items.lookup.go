// Package models - Lookup document cho idempotency key của item (item_client_lookups).
//
// Cùng cơ chế với các lookup của registry: mỗi clientId được vật chất hóa thành
// một document có _id = "<tenantIdHex>_client_<clientId>". Retry của cùng request
// luôn đọc/ghi đúng một document, hai retry chạy song song thì request thua
// vấp duplicate _id thay vì tạo item thứ hai.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ItemClientLookup giữ ràng buộc "clientId duy nhất trong tenant".
type ItemClientLookup struct {
	ID string `json:"id" bson:"_id"` // "<tenantIdHex>_client_<clientId>"

	TenantID primitive.ObjectID `json:"tenantId" bson:"tenantId"`
	Key      string             `json:"key" bson:"key"`
	EntityID primitive.ObjectID `json:"entityId" bson:"entityId"` // _id của item đang giữ clientId

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// ClientLookupKey sinh key duy nhất cho clientId trong tenant.
// clientId là chuỗi opaque do client sinh — không slugify để hai clientId
// khác nhau không bao giờ đổ về cùng một key.
func ClientLookupKey(clientID string) string {
	return "client_" + clientID
}

// ClientLookupDocID ghép _id của lookup document, scope tenant nằm trong _id.
func ClientLookupDocID(tenantIdHex string, clientID string) string {
	return tenantIdHex + "_" + ClientLookupKey(clientID)
}
