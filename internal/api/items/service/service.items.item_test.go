// Package itemsvc - Test các bước dựng item/patch thuần (không cần store).
package itemsvc

import (
	"errors"
	"testing"

	itemdto "datapage/internal/api/items/dto"
	itemmodels "datapage/internal/api/items/models"
	"datapage/internal/common"
	"datapage/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildItem_ComputesDerivedFields(t *testing.T) {
	tenantID := primitive.NewObjectID()
	input := &itemdto.ItemCreateInput{
		SheetID: primitive.NewObjectID().Hex(),
		Name:    "  Máy Lọc Nước  ",
		FacetRefs: map[string][]string{
			"f1": {"o1", "o2"},
		},
	}
	doc, err := buildItem(input, tenantID)
	if err != nil {
		t.Fatalf("buildItem lỗi: %v", err)
	}
	if doc.Normalized != utility.NormalizeLabel(input.Name) {
		t.Errorf("normalized = %q không khớp NormalizeLabel(name)", doc.Normalized)
	}
	if !utility.SetEqual(doc.FlatFacetPairs, []string{"f1|o1", "f1|o2"}) {
		t.Errorf("flatFacetPairs = %v, muốn [f1|o1 f1|o2]", doc.FlatFacetPairs)
	}
	if doc.TenantID != tenantID {
		t.Error("tenantId phải lấy từ context, không phải từ input")
	}
	if doc.CreatedAt == 0 || doc.UpdatedAt == 0 {
		t.Error("createdAt/updatedAt phải được set")
	}
}

func TestBuildItem_NilRefsBecomeEmpty(t *testing.T) {
	doc, err := buildItem(&itemdto.ItemCreateInput{
		SheetID: primitive.NewObjectID().Hex(),
		Name:    "x",
	}, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("buildItem lỗi: %v", err)
	}
	if doc.FacetRefs == nil {
		t.Error("facetRefs nil phải thành map rỗng")
	}
	if doc.FlatFacetPairs == nil || len(doc.FlatFacetPairs) != 0 {
		t.Errorf("flatFacetPairs phải là slice rỗng, got %v", doc.FlatFacetPairs)
	}
}

func TestBuildItem_BadSheetID(t *testing.T) {
	_, err := buildItem(&itemdto.ItemCreateInput{SheetID: "khong-phai-hex", Name: "x"}, primitive.NewObjectID())
	if !errors.Is(err, common.ErrInvalidFormat) {
		t.Errorf("sheetId hỏng phải ra ErrInvalidFormat, got %v", err)
	}
}

func TestBuildUpdatePatch_RecomputesPairs(t *testing.T) {
	refs := map[string][]string{"f2": {"o9"}}
	update, err := buildUpdatePatch(&itemdto.ItemUpdateInput{FacetRefs: refs})
	if err != nil {
		t.Fatalf("buildUpdatePatch lỗi: %v", err)
	}
	pairs, ok := update.Set["flatFacetPairs"].([]string)
	if !ok {
		t.Fatal("patch facetRefs phải kèm flatFacetPairs tính lại")
	}
	if !utility.SetEqual(pairs, itemmodels.ToFlatFacetPairs(refs)) {
		t.Errorf("flatFacetPairs trong patch = %v không khớp refs %v", pairs, refs)
	}
}

func TestBuildUpdatePatch_NameRecomputesNormalized(t *testing.T) {
	update, err := buildUpdatePatch(&itemdto.ItemUpdateInput{Name: "Cold Brew"})
	if err != nil {
		t.Fatalf("buildUpdatePatch lỗi: %v", err)
	}
	if update.Set["normalized"] != utility.NormalizeLabel("Cold Brew") {
		t.Errorf("đổi name phải tính lại normalized, got %v", update.Set["normalized"])
	}
	if _, ok := update.Set["flatFacetPairs"]; ok {
		t.Error("không gửi facetRefs thì không được đụng flatFacetPairs")
	}
}

func TestBuildItemWithClientLookup_LienKetHaiChieu(t *testing.T) {
	tenantID := primitive.NewObjectID()
	input := &itemdto.ItemCreateInput{
		SheetID:  primitive.NewObjectID().Hex(),
		Name:     "POS quầy 1",
		ClientID: "req-123",
	}
	doc, lookup, err := buildItemWithClientLookup(input, tenantID)
	if err != nil {
		t.Fatalf("buildItemWithClientLookup lỗi: %v", err)
	}
	if doc.ID.IsZero() {
		t.Error("item phải được gán _id trước khi vào batch")
	}
	if lookup.EntityID != doc.ID {
		t.Error("lookup phải trỏ về _id của item vừa dựng")
	}
	if lookup.ID != itemmodels.ClientLookupDocID(tenantID.Hex(), "req-123") {
		t.Errorf("_id lookup = %q không theo quy ước <tenantIdHex>_client_<clientId>", lookup.ID)
	}
	if lookup.TenantID != tenantID {
		t.Error("lookup phải mang tenantId của request")
	}
}

// Hai retry của cùng request (cùng tenant + clientId) phải nhắm vào cùng MỘT
// lookup document — request thua vấp duplicate _id thay vì tạo item thứ hai.
func TestBuildItemWithClientLookup_RetryCungMotLookup(t *testing.T) {
	tenantID := primitive.NewObjectID()
	input := &itemdto.ItemCreateInput{
		SheetID:  primitive.NewObjectID().Hex(),
		Name:     "POS quầy 1",
		ClientID: "req-123",
	}
	first, firstLookup, err := buildItemWithClientLookup(input, tenantID)
	if err != nil {
		t.Fatalf("buildItemWithClientLookup lỗi: %v", err)
	}
	second, secondLookup, err := buildItemWithClientLookup(input, tenantID)
	if err != nil {
		t.Fatalf("buildItemWithClientLookup lỗi: %v", err)
	}
	if firstLookup.ID != secondLookup.ID {
		t.Errorf("hai retry phải ra cùng _id lookup, got %q và %q", firstLookup.ID, secondLookup.ID)
	}
	if first.ID == second.ID {
		t.Error("mỗi lần dựng phải sinh _id item mới — chỉ lookup là điểm tranh chấp")
	}
}

func TestBuildUpdatePatch_EmptyPatch(t *testing.T) {
	_, err := buildUpdatePatch(&itemdto.ItemUpdateInput{})
	if !errors.Is(err, common.ErrRequiredField) {
		t.Errorf("patch rỗng phải ra ErrRequiredField, got %v", err)
	}
}

func TestBuildUpdatePatch_OrderResetVeKhong(t *testing.T) {
	zero := 0
	update, err := buildUpdatePatch(&itemdto.ItemUpdateInput{Order: &zero})
	if err != nil {
		t.Fatalf("buildUpdatePatch lỗi: %v", err)
	}
	v, ok := update.Set["order"]
	if !ok {
		t.Fatal("order = 0 là giá trị hợp lệ, phải được đưa vào patch")
	}
	if v != 0 {
		t.Errorf("order trong patch = %v, muốn 0", v)
	}
}

func TestBuildUpdatePatch_KhongGuiOrder(t *testing.T) {
	update, err := buildUpdatePatch(&itemdto.ItemUpdateInput{Name: "x"})
	if err != nil {
		t.Fatalf("buildUpdatePatch lỗi: %v", err)
	}
	if _, ok := update.Set["order"]; ok {
		t.Error("không gửi order thì không được đụng order")
	}
}

func TestMatchesAllTokens(t *testing.T) {
	item := itemmodels.Item{FlatFacetPairs: []string{"f1|o1", "f2|o3"}}

	if !matchesAllTokens(item, []string{"f2|o3"}) {
		t.Error("item chứa token phải match")
	}
	if !matchesAllTokens(item, nil) {
		t.Error("không có token bổ sung thì mọi item đều match")
	}
	if matchesAllTokens(item, []string{"f1|o1", "f9|o9"}) {
		t.Error("thiếu một token là loại (ngữ nghĩa AND)")
	}
}
