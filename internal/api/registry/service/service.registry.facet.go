// Package regsvc - Service facet (registry_facets + registry_facet_code_lookups).
package regsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "datapage/internal/api/base/service"
	regdto "datapage/internal/api/registry/dto"
	regmodels "datapage/internal/api/registry/models"
	"datapage/internal/common"
	"datapage/internal/global"
	"datapage/internal/utility"
)

// FacetService xử lý CRUD facet kèm ràng buộc code duy nhất qua lookup.
type FacetService struct {
	*basesvc.BaseServiceMongoImpl[regmodels.Facet]
	codeLookup *basesvc.BaseServiceMongoImpl[regmodels.FacetCodeLookup]
}

// NewFacetService tạo FacetService mới.
func NewFacetService() (*FacetService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Facets)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Facets, common.ErrNotFound)
	}
	lookupColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.FacetCodeLookups)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.FacetCodeLookups, common.ErrNotFound)
	}
	return &FacetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[regmodels.Facet](coll),
		codeLookup:           basesvc.NewBaseServiceMongo[regmodels.FacetCodeLookup](lookupColl),
	}, nil
}

// CreateFacet tạo facet mới. Kiểm tra trùng code bằng point read lookup trước,
// sau đó ghi facet + lookup trong CÙNG một WriteBatch (một transaction) để
// không bao giờ có facet thiếu lookup hay lookup thiếu facet.
// Trùng code → AlreadyExists kèm _id của facet đang giữ code (client có thể dùng lại).
func (s *FacetService) CreateFacet(ctx context.Context, input *regdto.FacetCreateInput, tenantID primitive.ObjectID) (*regmodels.Facet, error) {
	key := regmodels.FacetLookupKey(input.Code)
	if key == "facet_" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Code facet không hợp lệ sau khi chuẩn hóa", common.StatusBadRequest, nil)
	}
	docID := regmodels.LookupDocID(tenantID.Hex(), key)

	existing, err := s.codeLookup.FindOne(ctx, bson.M{"_id": docID}, nil)
	if cerr := lookupConflict(existing.EntityID, err); cerr != nil {
		return nil, cerr
	}

	now := time.Now().UnixMilli()
	facet := regmodels.Facet{
		ID:         primitive.NewObjectID(),
		TenantID:   tenantID,
		Code:       input.Code,
		Labels:     input.Labels,
		Normalized: utility.NormalizeLabel(PrimaryLabel(input.Labels)),
		Type:       input.Type,
		Indexed:    input.Indexed,
		Order:      input.Order,
		Status:     regmodels.StatusActive,
		ClientID:   input.ClientID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	lookup := regmodels.FacetCodeLookup{
		ID:        docID,
		TenantID:  tenantID,
		Key:       key,
		EntityID:  facet.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	batch := basesvc.NewWriteBatch(global.MongoDB_Session)
	if err := batch.InsertOne(s.Collection(), facet); err != nil {
		return nil, err
	}
	if err := batch.InsertOne(s.codeLookup.Collection(), lookup); err != nil {
		return nil, err
	}
	if err := batch.Commit(ctx); err != nil {
		// Hai request tạo cùng code cùng lúc: request thua thấy duplicate _id của lookup
		if common.IsAlreadyExists(err) {
			if winner, ferr := s.codeLookup.FindOne(ctx, bson.M{"_id": docID}, nil); ferr == nil {
				return nil, common.NewAlreadyExistsError(winner.EntityID.Hex())
			}
		}
		return nil, err
	}
	return &facet, nil
}

// FindFacetByCode tìm facet theo code: point read lookup rồi point read facet.
func (s *FacetService) FindFacetByCode(ctx context.Context, tenantID primitive.ObjectID, code string) (*regmodels.Facet, error) {
	docID := regmodels.LookupDocID(tenantID.Hex(), regmodels.FacetLookupKey(code))
	lookup, err := s.codeLookup.FindOne(ctx, bson.M{"_id": docID}, nil)
	if err != nil {
		return nil, err
	}
	facet, err := s.FindOneById(ctx, lookup.EntityID)
	if err != nil {
		return nil, err
	}
	return &facet, nil
}

// ListFacets trả về facet của tenant theo order tăng dần, lọc status nếu có.
func (s *FacetService) ListFacets(ctx context.Context, tenantID primitive.ObjectID, status string) ([]regmodels.Facet, error) {
	filter := bson.M{"tenantId": tenantID}
	if status != "" {
		filter["status"] = status
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// ArchiveFacet chuyển facet sang archived. Event update phát ra từ base service
// sẽ kích hoạt cascade gỡ facet khỏi mọi item của tenant (consistency package).
func (s *FacetService) ArchiveFacet(ctx context.Context, tenantID, facetID primitive.ObjectID) (*regmodels.Facet, error) {
	filter := bson.M{"_id": facetID, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"status": regmodels.StatusArchived}}
	facet, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil {
		return nil, err
	}
	return &facet, nil
}

// PrimaryLabel chọn label chính để sinh normalized: ưu tiên "ko", rồi "en",
// cuối cùng là key nhỏ nhất theo thứ tự từ điển (để deterministic).
func PrimaryLabel(labels map[string]string) string {
	if v, ok := labels["ko"]; ok && v != "" {
		return v
	}
	if v, ok := labels["en"]; ok && v != "" {
		return v
	}
	bestKey := ""
	for k, v := range labels {
		if v == "" {
			continue
		}
		if bestKey == "" || k < bestKey {
			bestKey = k
		}
	}
	if bestKey == "" {
		return ""
	}
	return labels[bestKey]
}
