// Package models - Item thuộc domain Items (items).
package models

import (
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item là một dòng dữ liệu của tenant, gắn vào một sheet, mang các giá trị facet.
//
// FacetRefs là dữ liệu CANONICAL: facetId hex → danh sách optionId hex.
// FlatFacetPairs là chỉ mục DẪN XUẤT: mỗi cặp (facetId, optionId) phẳng hóa thành
// token "facetId|optionId" để query mảng bằng một index duy nhất. Bất biến:
// FlatFacetPairs luôn set-equal với flatten(FacetRefs). Server tự tính lại
// FlatFacetPairs ở mọi đường ghi; client không bao giờ gửi trường này.
type Item struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TenantID primitive.ObjectID `json:"tenantId" bson:"tenantId" index:"single:1;compound:item_tenant_flat_pairs;compound:item_tenant_sheet_order;compound:item_tenant_normalized"`
	SheetID  primitive.ObjectID `json:"sheetId" bson:"sheetId" index:"compound:item_tenant_sheet_order"`

	Name       string `json:"name" bson:"name"`
	Normalized string `json:"normalized" bson:"normalized" index:"compound:item_tenant_normalized"` // NormalizeLabel(Name), cho search theo prefix

	FacetRefs      map[string][]string `json:"facetRefs" bson:"facetRefs"`
	FlatFacetPairs []string            `json:"flatFacetPairs" bson:"flatFacetPairs" index:"compound:item_tenant_flat_pairs"`

	Order    int    `json:"order" bson:"order" index:"compound:item_tenant_sheet_order"`
	Required bool   `json:"required,omitempty" bson:"required,omitempty"`
	ClientID string `json:"clientId,omitempty" bson:"clientId,omitempty"` // idempotency key do client sinh; unique qua item_client_lookups

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// FacetPairToken ghép token phẳng từ một cặp facet/option.
func FacetPairToken(facetIdHex string, optionIdHex string) string {
	return facetIdHex + "|" + optionIdHex
}

// ToFlatFacetPairs phẳng hóa facetRefs thành danh sách token "facetId|optionId".
// Key được duyệt theo thứ tự sort để kết quả deterministic; không dedup ngoài
// những gì input đã có.
func ToFlatFacetPairs(facetRefs map[string][]string) []string {
	if len(facetRefs) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(facetRefs))
	for k := range facetRefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(facetRefs))
	for _, facetHex := range keys {
		for _, optionHex := range facetRefs[facetHex] {
			pairs = append(pairs, FacetPairToken(facetHex, optionHex))
		}
	}
	return pairs
}

// ParseFlatFacetPairs dựng lại facetRefs từ danh sách token.
// Luật round-trip: ToFlatFacetPairs(ParseFlatFacetPairs(tokens)) set-equal tokens.
// Token không chứa "|" bị bỏ qua.
func ParseFlatFacetPairs(tokens []string) map[string][]string {
	refs := make(map[string][]string)
	for _, token := range tokens {
		facetHex, optionHex, found := strings.Cut(token, "|")
		if !found || facetHex == "" || optionHex == "" {
			continue
		}
		refs[facetHex] = append(refs[facetHex], optionHex)
	}
	return refs
}
