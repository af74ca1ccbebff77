// Package reconcile - Job đối soát: tính lại toàn bộ trường dẫn xuất của item
// trong một tenant. Lưới an toàn cuối cùng khi cascade chết giữa chừng hoặc
// dữ liệu được ghi thẳng vào store không qua API.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "datapage/internal/api/base/service"
	itemmodels "datapage/internal/api/items/models"
	itemsvc "datapage/internal/api/items/service"
	"datapage/internal/common"
	"datapage/internal/global"
	"datapage/internal/logger"
	"datapage/internal/utility"
)

// ReconcileService chạy rebuild trường dẫn xuất theo tenant.
type ReconcileService struct {
	items *itemsvc.ItemService
}

// NewReconcileService tạo ReconcileService mới.
func NewReconcileService() (*ReconcileService, error) {
	items, err := itemsvc.NewItemService()
	if err != nil {
		return nil, fmt.Errorf("tạo ItemService: %w", err)
	}
	return &ReconcileService{items: items}, nil
}

// chunkSize đọc kích thước chunk từ config, chặn trên bởi giới hạn batch.
func chunkSize() int {
	size := basesvc.MaxBatchOps
	if cfg := global.MongoDB_ServerConfig; cfg != nil && cfg.Reconcile_ChunkSize > 0 && cfg.Reconcile_ChunkSize < size {
		size = cfg.Reconcile_ChunkSize
	}
	return size
}

// RebuildTenant duyệt TOÀN BỘ item của tenant, tính lại normalized +
// flatFacetPairs và ghi đè KHÔNG so sánh trước (khác trigger onItemWrite:
// job đối soát ưu tiên đơn giản-chắc chắn hơn tiết kiệm write). Ghi theo
// chunk; trả về số item đã xử lý. Idempotent — chạy lại cho cùng kết quả.
func (s *ReconcileService) RebuildTenant(ctx context.Context, tenantID primitive.ObjectID) (int, error) {
	items, err := s.items.Find(ctx, bson.M{"tenantId": tenantID}, nil)
	if err != nil {
		return 0, err
	}

	filters := make([]bson.M, 0, len(items))
	updates := make([]interface{}, 0, len(items))
	for _, item := range items {
		filters = append(filters, bson.M{"_id": item.ID})
		updates = append(updates, &basesvc.UpdateData{Set: map[string]interface{}{
			"normalized":     utility.NormalizeLabel(item.Name),
			"flatFacetPairs": itemmodels.ToFlatFacetPairs(item.FacetRefs),
		}})
	}

	if err := basesvc.CommitChunked(ctx, global.MongoDB_Session, s.items.Collection(), filters, updates, chunkSize()); err != nil {
		processed := 0
		var partial *common.PartialBulkError
		if errors.As(err, &partial) {
			processed = partial.CommittedCount
		}
		logger.GetAppLogger().WithError(err).
			WithField("tenantId", tenantID.Hex()).
			WithField("processed", processed).
			Error("[reconcile] Rebuild tenant thất bại giữa chừng")
		return processed, err
	}

	logger.GetAppLogger().
		WithField("tenantId", tenantID.Hex()).
		WithField("processed", len(items)).
		Info("[reconcile] Rebuild tenant hoàn tất")
	return len(items), nil
}
