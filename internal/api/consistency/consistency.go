// Package consistency - Event handlers giữ bất biến dữ liệu (OnDataChanged):
//   - item ghi xong: flatFacetPairs/normalized phải khớp facetRefs/name
//   - facet archived: không item nào còn tham chiếu facet
//   - option archived: không item nào còn tham chiếu option
//
// Mọi thân handler đều idempotent (tính lại từ giá trị hiện tại, so sánh trước
// khi ghi) nên an toàn với at-least-once delivery và chạy lại sau crash.
package consistency

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "datapage/internal/api/base/service"
	"datapage/internal/api/events"
	itemmodels "datapage/internal/api/items/models"
	itemsvc "datapage/internal/api/items/service"
	regmodels "datapage/internal/api/registry/models"
	"datapage/internal/global"
	"datapage/internal/logger"
	"datapage/internal/utility"
)

// cascadeTimeout chặn cascade treo vô hạn khi store chậm.
// Cascade dở dang sẽ được reconcile (RebuildTenant) vá lại.
const cascadeTimeout = 5 * time.Minute

func init() {
	events.OnDataChanged(handleDataChange)
}

// handleDataChange dispatch theo collection. Chạy trong goroutine riêng của
// event bus; dùng context tách khỏi request vì cascade sống lâu hơn response.
func handleDataChange(_ context.Context, e events.DataChangeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), cascadeTimeout)
	defer cancel()

	switch e.CollectionName {
	case global.MongoDB_ColNames.Items:
		if e.Operation == events.OpDelete {
			return
		}
		if item, ok := toItem(e.Document); ok {
			onItemWrite(ctx, item)
		}

	case global.MongoDB_ColNames.Facets:
		if e.Operation != events.OpUpdate {
			return
		}
		if facet, ok := toFacet(e.Document); ok && facet.Status == regmodels.StatusArchived {
			onFacetArchive(ctx, facet)
		}

	case global.MongoDB_ColNames.Options:
		if e.Operation != events.OpUpdate {
			return
		}
		if option, ok := toOption(e.Document); ok && option.Status == regmodels.StatusArchived {
			onOptionArchive(ctx, option)
		}
	}
}

// onItemWrite tính lại các trường dẫn xuất từ document sau ghi và CHỈ ghi lại
// khi có trường lệch. Không lệch = không ghi = không phát event mới — đây là
// điều kiện dừng chống vòng lặp retrigger (ghi sửa → event → kiểm tra → khớp → dừng).
func onItemWrite(ctx context.Context, item *itemmodels.Item) {
	svc, err := itemsvc.NewItemService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("[consistency] Không thể tạo ItemService trong hook")
		return
	}

	expectedPairs := itemmodels.ToFlatFacetPairs(item.FacetRefs)
	expectedNormalized := utility.NormalizeLabel(item.Name)

	set := map[string]interface{}{}
	if !utility.SetEqual(item.FlatFacetPairs, expectedPairs) {
		set["flatFacetPairs"] = expectedPairs
	}
	if item.Normalized != expectedNormalized {
		set["normalized"] = expectedNormalized
	}
	if len(set) == 0 {
		return
	}

	update := &basesvc.UpdateData{Set: set}
	if _, err := svc.UpdateOne(ctx, bson.M{"_id": item.ID}, update, nil); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("itemId", item.ID.Hex()).
			Warn("[consistency] Sửa trường dẫn xuất của item lỗi")
	}
}

// onFacetArchive gỡ facet khỏi mọi item của tenant còn tham chiếu.
// Quét toàn tenant (archive facet là thao tác hiếm, chấp nhận quét).
func onFacetArchive(ctx context.Context, facet *regmodels.Facet) {
	svc, err := itemsvc.NewItemService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("[consistency] Không thể tạo ItemService trong hook")
		return
	}
	count, err := svc.RemoveFacetFromAllItems(ctx, facet.TenantID, facet.ID)
	if err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("facetId", facet.ID.Hex()).
			WithField("cleaned", count).
			Error("[consistency] Cascade archive facet thất bại giữa chừng")
		return
	}
	logger.GetAppLogger().
		WithField("facetId", facet.ID.Hex()).
		WithField("cleaned", count).
		Info("[consistency] Cascade archive facet hoàn tất")
}

// onOptionArchive gỡ option khỏi mọi item còn tham chiếu. Khác facet archive,
// ở đây có đường hiệu quả: query thẳng token "facetId|optionId" trên index
// flatFacetPairs thay vì quét toàn tenant.
func onOptionArchive(ctx context.Context, option *regmodels.Option) {
	svc, err := itemsvc.NewItemService()
	if err != nil {
		logger.GetAppLogger().WithError(err).Warn("[consistency] Không thể tạo ItemService trong hook")
		return
	}

	facetHex := option.FacetID.Hex()
	optionHex := option.ID.Hex()
	token := itemmodels.FacetPairToken(facetHex, optionHex)

	items, err := svc.Find(ctx, bson.M{"tenantId": option.TenantID, "flatFacetPairs": token}, nil)
	if err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("optionId", optionHex).
			Error("[consistency] Query item theo token lỗi")
		return
	}

	filters := make([]bson.M, 0, len(items))
	updates := make([]interface{}, 0, len(items))
	for _, item := range items {
		stripped := itemmodels.StripOptionFromRefs(item.FacetRefs, facetHex, optionHex)
		filters = append(filters, bson.M{"_id": item.ID})
		updates = append(updates, &basesvc.UpdateData{Set: map[string]interface{}{
			"facetRefs":      stripped,
			"flatFacetPairs": itemmodels.ToFlatFacetPairs(stripped),
		}})
	}

	if err := basesvc.CommitChunked(ctx, global.MongoDB_Session, svc.Collection(), filters, updates, 0); err != nil {
		logger.GetAppLogger().WithError(err).
			WithField("optionId", optionHex).
			Error("[consistency] Cascade archive option thất bại giữa chừng")
		return
	}
	logger.GetAppLogger().
		WithField("optionId", optionHex).
		WithField("cleaned", len(items)).
		Info("[consistency] Cascade archive option hoàn tất")
}

func toItem(doc interface{}) (*itemmodels.Item, bool) {
	if doc == nil {
		return nil, false
	}
	if d, ok := doc.(*itemmodels.Item); ok {
		return d, true
	}
	if d, ok := doc.(itemmodels.Item); ok {
		return &d, true
	}
	return nil, false
}

func toFacet(doc interface{}) (*regmodels.Facet, bool) {
	if doc == nil {
		return nil, false
	}
	if d, ok := doc.(*regmodels.Facet); ok {
		return d, true
	}
	if d, ok := doc.(regmodels.Facet); ok {
		return &d, true
	}
	return nil, false
}

func toOption(doc interface{}) (*regmodels.Option, bool) {
	if doc == nil {
		return nil, false
	}
	if d, ok := doc.(*regmodels.Option); ok {
		return d, true
	}
	if d, ok := doc.(regmodels.Option); ok {
		return &d, true
	}
	return nil, false
}
