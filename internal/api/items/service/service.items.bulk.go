// Package itemsvc - Bulk operation cho item: chia chunk tối đa 500 thao tác,
// mỗi chunk một transaction, giữa các chunk best-effort (chunk-atomic).
package itemsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "datapage/internal/api/base/service"
	itemdto "datapage/internal/api/items/dto"
	itemmodels "datapage/internal/api/items/models"
	"datapage/internal/common"
	"datapage/internal/global"
	"datapage/internal/logger"
)

// committedOf đọc tiến độ đã commit từ lỗi bulk (0 nếu không phải PartialBulkError).
func committedOf(err error) int {
	var partial *common.PartialBulkError
	if errors.As(err, &partial) {
		return partial.CommittedCount
	}
	return 0
}

// prepareBulkItems dựng trước toàn bộ document với _id gán sẵn — caller biết
// danh sách id của mọi item trước khi commit, kể cả khi commit dở dang
// (phần đã ghi là prefix theo đúng thứ tự input).
func prepareBulkItems(inputs []itemdto.ItemCreateInput, tenantID primitive.ObjectID) ([]itemmodels.Item, error) {
	docs := make([]itemmodels.Item, 0, len(inputs))
	for i := range inputs {
		doc, err := buildItem(&inputs[i], tenantID)
		if err != nil {
			return nil, err
		}
		doc.ID = primitive.NewObjectID()
		docs = append(docs, *doc)
	}
	return docs, nil
}

// BulkCreateItems tạo nhiều item, trả về _id của các item ĐÃ commit theo đúng
// thứ tự input. Lỗi giữa chừng trả về PartialBulkError — slice id chỉ chứa
// phần đã ghi, các chunk trước đó KHÔNG bị rollback.
// Không ghi lookup clientId — bulk ingestion không có ngữ nghĩa retry từng dòng.
func (s *ItemService) BulkCreateItems(ctx context.Context, tenantID primitive.ObjectID, inputs []itemdto.ItemCreateInput) ([]primitive.ObjectID, error) {
	docs, err := prepareBulkItems(inputs, tenantID)
	if err != nil {
		return nil, err
	}
	payload := make([]interface{}, len(docs))
	ids := make([]primitive.ObjectID, len(docs))
	for i := range docs {
		payload[i] = docs[i]
		ids[i] = docs[i].ID
	}

	if err := basesvc.InsertChunked(ctx, global.MongoDB_Session, s.Collection(), payload); err != nil {
		committed := committedOf(err)
		logger.GetAppLogger().WithError(err).WithField("committed", committed).Error("bulk create item thất bại giữa chừng")
		return ids[:committed], err
	}
	return ids, nil
}

// BulkUpdateItems cập nhật nhiều item theo id. Patch đi qua cùng đường tính lại
// normalized/flatFacetPairs như UpdateItem đơn lẻ.
func (s *ItemService) BulkUpdateItems(ctx context.Context, tenantID primitive.ObjectID, entries []itemdto.ItemBulkUpdateEntry) (int, error) {
	filters := make([]bson.M, 0, len(entries))
	updates := make([]interface{}, 0, len(entries))
	for i := range entries {
		itemID, err := primitive.ObjectIDFromHex(entries[i].ID)
		if err != nil {
			return 0, common.ErrInvalidFormat
		}
		update, err := buildUpdatePatch(&entries[i].Patch)
		if err != nil {
			return 0, err
		}
		filters = append(filters, bson.M{"_id": itemID, "tenantId": tenantID})
		updates = append(updates, update)
	}

	if err := basesvc.CommitChunked(ctx, global.MongoDB_Session, s.Collection(), filters, updates, 0); err != nil {
		committed := committedOf(err)
		logger.GetAppLogger().WithError(err).WithField("committed", committed).Error("bulk update item thất bại giữa chừng")
		return committed, err
	}
	return len(filters), nil
}

// BulkDeleteItems xóa nhiều item theo id. Không đụng lookup clientId —
// lookup mồ côi (nếu có) sẽ được CreateItem chiếm lại khi gặp lần sau.
func (s *ItemService) BulkDeleteItems(ctx context.Context, tenantID primitive.ObjectID, idHexes []string) (int, error) {
	filters := make([]bson.M, 0, len(idHexes))
	for _, hex := range idHexes {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return 0, common.ErrInvalidFormat
		}
		filters = append(filters, bson.M{"_id": oid, "tenantId": tenantID})
	}

	if err := basesvc.DeleteChunked(ctx, global.MongoDB_Session, s.Collection(), filters); err != nil {
		committed := committedOf(err)
		logger.GetAppLogger().WithError(err).WithField("committed", committed).Error("bulk delete item thất bại giữa chừng")
		return committed, err
	}
	return len(filters), nil
}

// RemoveFacetFromAllItems gỡ một facet khỏi MỌI item của tenant còn tham chiếu:
// xóa key facetRefs.<facetId>, tính lại flatFacetPairs từ refs đã strip.
// Đây là bước cascade khi archive facet; chạy lại an toàn (item đã sạch không
// match filter $exists nữa).
func (s *ItemService) RemoveFacetFromAllItems(ctx context.Context, tenantID, facetID primitive.ObjectID) (int, error) {
	facetHex := facetID.Hex()
	filter := bson.M{
		"tenantId":              tenantID,
		"facetRefs." + facetHex: bson.M{"$exists": true},
	}
	items, err := s.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}

	filters := make([]bson.M, 0, len(items))
	updates := make([]interface{}, 0, len(items))
	for _, item := range items {
		stripped := itemmodels.StripFacetFromRefs(item.FacetRefs, facetHex)
		filters = append(filters, bson.M{"_id": item.ID})
		updates = append(updates, &basesvc.UpdateData{Set: map[string]interface{}{
			"facetRefs":      stripped,
			"flatFacetPairs": itemmodels.ToFlatFacetPairs(stripped),
		}})
	}

	if err := basesvc.CommitChunked(ctx, global.MongoDB_Session, s.Collection(), filters, updates, 0); err != nil {
		committed := committedOf(err)
		logger.GetAppLogger().WithError(err).WithField("committed", committed).Error("gỡ facet khỏi item thất bại giữa chừng")
		return committed, err
	}
	return len(filters), nil
}
