// Package itemsvc - Service item (items): CRUD, search theo facet, search theo tên.
package itemsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "datapage/internal/api/base/service"
	itemdto "datapage/internal/api/items/dto"
	itemmodels "datapage/internal/api/items/models"
	"datapage/internal/common"
	"datapage/internal/global"
	"datapage/internal/utility"
)

// ItemService xử lý CRUD và search item. Mọi đường ghi đều tính lại
// normalized và flatFacetPairs phía server — client không kiểm soát hai trường này.
type ItemService struct {
	*basesvc.BaseServiceMongoImpl[itemmodels.Item]
	clientLookup *basesvc.BaseServiceMongoImpl[itemmodels.ItemClientLookup]
}

// NewItemService tạo ItemService mới.
func NewItemService() (*ItemService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Items)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Items, common.ErrNotFound)
	}
	lookupColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ItemClientLookups)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.ItemClientLookups, common.ErrNotFound)
	}
	return &ItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[itemmodels.Item](coll),
		clientLookup:         basesvc.NewBaseServiceMongo[itemmodels.ItemClientLookup](lookupColl),
	}, nil
}

// buildItem dựng model item từ input, tính normalized + flatFacetPairs.
func buildItem(input *itemdto.ItemCreateInput, tenantID primitive.ObjectID) (*itemmodels.Item, error) {
	sheetID, err := primitive.ObjectIDFromHex(input.SheetID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	refs := input.FacetRefs
	if refs == nil {
		refs = map[string][]string{}
	}
	now := time.Now().UnixMilli()
	return &itemmodels.Item{
		TenantID:       tenantID,
		SheetID:        sheetID,
		Name:           input.Name,
		Normalized:     utility.NormalizeLabel(input.Name),
		FacetRefs:      refs,
		FlatFacetPairs: itemmodels.ToFlatFacetPairs(refs),
		Order:          input.Order,
		Required:       input.Required,
		ClientID:       input.ClientID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// buildItemWithClientLookup dựng item (gán _id trước) kèm lookup idempotency
// trỏ về item đó. Hai document luôn được ghi trong cùng một WriteBatch.
func buildItemWithClientLookup(input *itemdto.ItemCreateInput, tenantID primitive.ObjectID) (*itemmodels.Item, *itemmodels.ItemClientLookup, error) {
	doc, err := buildItem(input, tenantID)
	if err != nil {
		return nil, nil, err
	}
	doc.ID = primitive.NewObjectID()
	lookup := &itemmodels.ItemClientLookup{
		ID:        itemmodels.ClientLookupDocID(tenantID.Hex(), input.ClientID),
		TenantID:  tenantID,
		Key:       itemmodels.ClientLookupKey(input.ClientID),
		EntityID:  doc.ID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	return doc, lookup, nil
}

// CreateItem tạo item mới. Input có clientId đi qua lookup document
// (_id = "<tenantIdHex>_client_<clientId>") — cùng cơ chế unique với code
// facet/option: point read lookup → đã có chủ thì trả về item đã tạo
// (created = false); chưa có thì ghi item + lookup trong CÙNG một WriteBatch.
// Hai retry chạy song song: request thua vấp duplicate _id của lookup khi
// commit và đọc lại item thắng cuộc — không bao giờ có hai item cùng clientId.
func (s *ItemService) CreateItem(ctx context.Context, input *itemdto.ItemCreateInput, tenantID primitive.ObjectID) (*itemmodels.Item, bool, error) {
	if input.ClientID == "" {
		doc, err := buildItem(input, tenantID)
		if err != nil {
			return nil, false, err
		}
		item, err := s.InsertOne(ctx, *doc)
		if err != nil {
			return nil, false, err
		}
		return &item, true, nil
	}

	docID := itemmodels.ClientLookupDocID(tenantID.Hex(), input.ClientID)
	reclaim := false
	lookup, err := s.clientLookup.FindOne(ctx, bson.M{"_id": docID}, nil)
	if err == nil {
		existing, ferr := s.FindOneById(ctx, lookup.EntityID)
		if ferr == nil {
			return &existing, false, nil
		}
		if !errors.Is(ferr, common.ErrNotFound) {
			return nil, false, ferr
		}
		// Lookup mồ côi (item bị xóa không qua DeleteItem): chiếm lại bằng upsert
		reclaim = true
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	doc, lookupDoc, err := buildItemWithClientLookup(input, tenantID)
	if err != nil {
		return nil, false, err
	}
	batch := basesvc.NewWriteBatch(global.MongoDB_Session)
	if err := batch.InsertOne(s.Collection(), *doc); err != nil {
		return nil, false, err
	}
	if reclaim {
		update := &basesvc.UpdateData{Set: map[string]interface{}{
			"tenantId": tenantID,
			"key":      lookupDoc.Key,
			"entityId": doc.ID,
		}}
		if err := batch.UpsertOne(s.clientLookup.Collection(), bson.M{"_id": docID}, update); err != nil {
			return nil, false, err
		}
	} else if err := batch.InsertOne(s.clientLookup.Collection(), *lookupDoc); err != nil {
		return nil, false, err
	}
	if err := batch.Commit(ctx); err != nil {
		// Thua race với một retry khác cùng clientId: đọc lại item thắng cuộc
		if common.IsAlreadyExists(err) {
			if winner, ferr := s.clientLookup.FindOne(ctx, bson.M{"_id": docID}, nil); ferr == nil {
				if existing, ferr := s.FindOneById(ctx, winner.EntityID); ferr == nil {
					return &existing, false, nil
				}
			}
		}
		return nil, false, err
	}
	return doc, true, nil
}

// buildUpdatePatch dựng UpdateData từ patch: gửi facetRefs → tính lại
// flatFacetPairs, gửi name → tính lại normalized.
func buildUpdatePatch(patch *itemdto.ItemUpdateInput) (*basesvc.UpdateData, error) {
	update := &basesvc.UpdateData{Set: map[string]interface{}{}}
	if patch.Name != "" {
		update.Set["name"] = patch.Name
		update.Set["normalized"] = utility.NormalizeLabel(patch.Name)
	}
	if patch.FacetRefs != nil {
		update.Set["facetRefs"] = patch.FacetRefs
		update.Set["flatFacetPairs"] = itemmodels.ToFlatFacetPairs(patch.FacetRefs)
	}
	if patch.SheetID != "" {
		sheetID, err := primitive.ObjectIDFromHex(patch.SheetID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		update.Set["sheetId"] = sheetID
	}
	if patch.Order != nil {
		update.Set["order"] = *patch.Order
	}
	if len(update.Set) == 0 {
		return nil, common.ErrRequiredField
	}
	return update, nil
}

// UpdateItem cập nhật item theo id trong phạm vi tenant.
func (s *ItemService) UpdateItem(ctx context.Context, tenantID, itemID primitive.ObjectID, patch *itemdto.ItemUpdateInput) (*itemmodels.Item, error) {
	update, err := buildUpdatePatch(patch)
	if err != nil {
		return nil, err
	}
	item, err := s.UpdateOne(ctx, bson.M{"_id": itemID, "tenantId": tenantID}, update, nil)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem xóa vật lý item theo id trong phạm vi tenant. Item có clientId
// thì lookup idempotency đi cùng bị xóa trong CÙNG một batch — không để lookup
// mồ côi trỏ về item đã mất.
func (s *ItemService) DeleteItem(ctx context.Context, tenantID, itemID primitive.ObjectID) error {
	item, err := s.FindOne(ctx, bson.M{"_id": itemID, "tenantId": tenantID}, nil)
	if err != nil {
		return err
	}
	if item.ClientID == "" {
		return s.DeleteOne(ctx, bson.M{"_id": itemID, "tenantId": tenantID})
	}
	batch := basesvc.NewWriteBatch(global.MongoDB_Session)
	if err := batch.DeleteOne(s.Collection(), bson.M{"_id": itemID, "tenantId": tenantID}); err != nil {
		return err
	}
	docID := itemmodels.ClientLookupDocID(tenantID.Hex(), item.ClientID)
	if err := batch.DeleteOne(s.clientLookup.Collection(), bson.M{"_id": docID}); err != nil {
		return err
	}
	return batch.Commit(ctx)
}

// GetItemsBySheet trả về item của một sheet theo thứ tự (order, name, createdAt).
func (s *ItemService) GetItemsBySheet(ctx context.Context, tenantID, sheetID primitive.ObjectID, limit int64) ([]itemmodels.Item, error) {
	opts := mongoopts.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "name", Value: 1},
		{Key: "createdAt", Value: 1},
	})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return s.Find(ctx, bson.M{"tenantId": tenantID, "sheetId": sheetID}, opts)
}

// SearchItems lọc item theo các cặp (facetId, optionId), nhiều filter = AND.
// Hai pha: filter đầu tiên đẩy xuống store qua token flatFacetPairs (dùng index
// item_tenant_flat_pairs), các filter còn lại giao trong bộ nhớ trên kết quả thô.
// Ngữ nghĩa giao CHÍNH XÁC, chỉ pha đầu là coarse.
func (s *ItemService) SearchItems(ctx context.Context, tenantID primitive.ObjectID, filters []itemdto.FacetFilter, limit int) ([]itemmodels.Item, error) {
	if len(filters) == 0 {
		return nil, common.ErrRequiredField
	}
	tokens := make([]string, 0, len(filters))
	for _, f := range filters {
		if !primitive.IsValidObjectID(f.FacetID) || !primitive.IsValidObjectID(f.OptionID) {
			return nil, common.ErrInvalidFormat
		}
		tokens = append(tokens, itemmodels.FacetPairToken(f.FacetID, f.OptionID))
	}

	coarse, err := s.Find(ctx, bson.M{"tenantId": tenantID, "flatFacetPairs": tokens[0]}, nil)
	if err != nil {
		return nil, err
	}

	matched := make([]itemmodels.Item, 0, len(coarse))
	for _, item := range coarse {
		if matchesAllTokens(item, tokens[1:]) {
			matched = append(matched, item)
			if limit > 0 && len(matched) >= limit {
				break
			}
		}
	}
	return matched, nil
}

// matchesAllTokens kiểm tra item chứa đủ mọi token (pha giao trong bộ nhớ của SearchItems).
func matchesAllTokens(item itemmodels.Item, tokens []string) bool {
	for _, token := range tokens {
		if !utility.Contains(item.FlatFacetPairs, token) {
			return false
		}
	}
	return true
}

// SearchItemsByName tìm item theo prefix tên (so khớp trên normalized).
// Range query [q, q + U+F8FF] trên index item_tenant_normalized.
func (s *ItemService) SearchItemsByName(ctx context.Context, tenantID primitive.ObjectID, q string, limit int64) ([]itemmodels.Item, error) {
	normalized := utility.NormalizeLabel(q)
	if normalized == "" {
		return nil, common.ErrRequiredField
	}
	filter := bson.M{
		"tenantId":   tenantID,
		"normalized": bson.M{"$gte": normalized, "$lte": normalized + ""},
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "normalized", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return s.Find(ctx, filter, opts)
}
