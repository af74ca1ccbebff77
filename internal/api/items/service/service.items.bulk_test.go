// Package itemsvc - Test phần dựng document thuần của bulk create.
package itemsvc

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	itemdto "datapage/internal/api/items/dto"
	"datapage/internal/common"
)

// Bulk create 1200 dòng: caller nhận đủ 1200 _id, mỗi _id gán sẵn trước khi
// commit và không trùng nhau — kể cả khi commit dở dang, phần id đã ghi là
// prefix theo đúng thứ tự input.
func TestPrepareBulkItems_GanDuIDChoMoiDong(t *testing.T) {
	tenantID := primitive.NewObjectID()
	sheetID := primitive.NewObjectID().Hex()
	inputs := make([]itemdto.ItemCreateInput, 1200)
	for i := range inputs {
		inputs[i] = itemdto.ItemCreateInput{
			SheetID: sheetID,
			Name:    fmt.Sprintf("dòng %d", i),
		}
	}

	docs, err := prepareBulkItems(inputs, tenantID)
	if err != nil {
		t.Fatalf("prepareBulkItems lỗi: %v", err)
	}
	if len(docs) != 1200 {
		t.Fatalf("phải dựng đủ 1200 document, got %d", len(docs))
	}
	seen := make(map[primitive.ObjectID]bool, len(docs))
	for i, doc := range docs {
		if doc.ID.IsZero() {
			t.Fatalf("document %d chưa được gán _id", i)
		}
		if seen[doc.ID] {
			t.Fatalf("_id %s bị trùng", doc.ID.Hex())
		}
		seen[doc.ID] = true
		if doc.Name != inputs[i].Name {
			t.Fatalf("document %d lệch thứ tự input", i)
		}
	}
}

func TestPrepareBulkItems_SheetIDHongChanCaLo(t *testing.T) {
	inputs := []itemdto.ItemCreateInput{
		{SheetID: primitive.NewObjectID().Hex(), Name: "ok"},
		{SheetID: "khong-phai-hex", Name: "hỏng"},
	}
	if _, err := prepareBulkItems(inputs, primitive.NewObjectID()); err == nil {
		t.Error("một dòng hỏng phải chặn cả lô trước khi ghi")
	}
}

func TestCommittedOf(t *testing.T) {
	partial := &common.PartialBulkError{CommittedChunks: 1, TotalChunks: 3, CommittedCount: 500, Cause: common.ErrTransaction}
	if got := committedOf(partial); got != 500 {
		t.Errorf("committedOf(PartialBulkError) = %d, muốn 500", got)
	}
	if got := committedOf(common.ErrNotFound); got != 0 {
		t.Errorf("lỗi không phải partial phải ra 0, got %d", got)
	}
}
