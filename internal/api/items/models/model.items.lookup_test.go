// Package models - Test sinh _id cho lookup idempotency của item.
package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClientLookupDocID_Deterministic(t *testing.T) {
	tenant := primitive.NewObjectID().Hex()
	first := ClientLookupDocID(tenant, "req-001")
	second := ClientLookupDocID(tenant, "req-001")
	if first != second {
		t.Errorf("cùng tenant + clientId phải ra cùng _id, got %q và %q", first, second)
	}
	if first != tenant+"_client_req-001" {
		t.Errorf("_id lookup = %q, muốn %q", first, tenant+"_client_req-001")
	}
}

func TestClientLookupDocID_ScopeTheoTenant(t *testing.T) {
	tenantA := primitive.NewObjectID().Hex()
	tenantB := primitive.NewObjectID().Hex()
	if ClientLookupDocID(tenantA, "req-001") == ClientLookupDocID(tenantB, "req-001") {
		t.Error("cùng clientId ở hai tenant khác nhau phải ra hai _id khác nhau")
	}
}

func TestClientLookupKey_KhongBienDoiClientID(t *testing.T) {
	// clientId là chuỗi opaque — hai giá trị chỉ khác hoa/thường hay ký tự đặc
	// biệt là hai key khác nhau, không được chuẩn hóa gộp lại
	if ClientLookupKey("Req-001") == ClientLookupKey("req-001") {
		t.Error("clientId khác hoa/thường phải ra key khác nhau")
	}
	if ClientLookupKey("a b") == ClientLookupKey("a-b") {
		t.Error("clientId chứa ký tự đặc biệt không được slugify")
	}
}
