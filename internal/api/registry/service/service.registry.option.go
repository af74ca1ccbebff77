// Package regsvc - Service option (registry_options + hai collection lookup:
// theo code và theo label chuẩn hóa).
package regsvc

import (
	"context"
	"errors"
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

// OptionService xử lý CRUD option kèm HAI ràng buộc duy nhất trong facet:
// code (slug) và label chuẩn hóa. Mỗi option active luôn có đúng 2 lookup document.
type OptionService struct {
	*basesvc.BaseServiceMongoImpl[regmodels.Option]
	facets     *basesvc.BaseServiceMongoImpl[regmodels.Facet]
	codeLookup *basesvc.BaseServiceMongoImpl[regmodels.OptionCodeLookup]
	normLookup *basesvc.BaseServiceMongoImpl[regmodels.OptionNormalizedLookup]
}

// NewOptionService tạo OptionService mới.
func NewOptionService() (*OptionService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Options)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Options, common.ErrNotFound)
	}
	facetColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Facets)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Facets, common.ErrNotFound)
	}
	codeColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OptionCodeLookups)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OptionCodeLookups, common.ErrNotFound)
	}
	normColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.OptionNormalizedLookups)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.OptionNormalizedLookups, common.ErrNotFound)
	}
	return &OptionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[regmodels.Option](coll),
		facets:               basesvc.NewBaseServiceMongo[regmodels.Facet](facetColl),
		codeLookup:           basesvc.NewBaseServiceMongo[regmodels.OptionCodeLookup](codeColl),
		normLookup:           basesvc.NewBaseServiceMongo[regmodels.OptionNormalizedLookup](normColl),
	}, nil
}

// requireFacet kiểm tra facet thuộc tenant và nhận option (kiểu single/multi).
func (s *OptionService) requireFacet(ctx context.Context, tenantID, facetID primitive.ObjectID) (*regmodels.Facet, error) {
	facet, err := s.facets.FindOne(ctx, bson.M{"_id": facetID, "tenantId": tenantID}, nil)
	if err != nil {
		return nil, err
	}
	if facet.Type != regmodels.FacetTypeSingle && facet.Type != regmodels.FacetTypeMulti {
		return nil, common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Facet kiểu %s không nhận option", facet.Type), common.StatusBadRequest, nil)
	}
	if facet.Status == regmodels.StatusArchived {
		return nil, common.ErrInvalidState
	}
	return &facet, nil
}

// CreateOption tạo option mới: kiểm tra trùng theo CẢ code lẫn label chuẩn hóa
// (hai point read), sau đó ghi option + 2 lookup trong một WriteBatch.
func (s *OptionService) CreateOption(ctx context.Context, input *regdto.OptionCreateInput, tenantID primitive.ObjectID) (*regmodels.Option, error) {
	facetID, err := primitive.ObjectIDFromHex(input.FacetID)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	if _, err := s.requireFacet(ctx, tenantID, facetID); err != nil {
		return nil, err
	}

	normalized := utility.NormalizeLabel(PrimaryLabel(input.Labels))
	if normalized == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Label option rỗng sau khi chuẩn hóa", common.StatusBadRequest, nil)
	}
	codeKey := regmodels.OptionLookupKeyByCode(facetID.Hex(), input.Code)
	normKey := regmodels.OptionLookupKeyByNormalized(facetID.Hex(), normalized)
	codeDocID := regmodels.LookupDocID(tenantID.Hex(), codeKey)
	normDocID := regmodels.LookupDocID(tenantID.Hex(), normKey)

	existing, err := s.codeLookup.FindOne(ctx, bson.M{"_id": codeDocID}, nil)
	if cerr := lookupConflict(existing.EntityID, err); cerr != nil {
		return nil, cerr
	}
	existingNorm, err := s.normLookup.FindOne(ctx, bson.M{"_id": normDocID}, nil)
	if cerr := lookupConflict(existingNorm.EntityID, err); cerr != nil {
		return nil, cerr
	}

	now := time.Now().UnixMilli()
	option := regmodels.Option{
		ID:         primitive.NewObjectID(),
		TenantID:   tenantID,
		FacetID:    facetID,
		Code:       input.Code,
		Labels:     input.Labels,
		Normalized: normalized,
		Synonyms:   input.Synonyms,
		Order:      input.Order,
		Status:     regmodels.StatusActive,
		ClientID:   input.ClientID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	batch := basesvc.NewWriteBatch(global.MongoDB_Session)
	if err := batch.InsertOne(s.Collection(), option); err != nil {
		return nil, err
	}
	if err := batch.InsertOne(s.codeLookup.Collection(), regmodels.OptionCodeLookup{
		ID: codeDocID, TenantID: tenantID, FacetID: facetID, Key: codeKey, EntityID: option.ID, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		return nil, err
	}
	if err := batch.InsertOne(s.normLookup.Collection(), regmodels.OptionNormalizedLookup{
		ID: normDocID, TenantID: tenantID, FacetID: facetID, Key: normKey, EntityID: option.ID, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		return nil, err
	}
	if err := batch.Commit(ctx); err != nil {
		if common.IsAlreadyExists(err) {
			// Thua race: đọc lại lookup để trả về id của option thắng cuộc
			if winner, ferr := s.codeLookup.FindOne(ctx, bson.M{"_id": codeDocID}, nil); ferr == nil {
				return nil, common.NewAlreadyExistsError(winner.EntityID.Hex())
			}
			if winner, ferr := s.normLookup.FindOne(ctx, bson.M{"_id": normDocID}, nil); ferr == nil {
				return nil, common.NewAlreadyExistsError(winner.EntityID.Hex())
			}
		}
		return nil, err
	}
	return &option, nil
}

// FindOptionByLabel tìm option theo label (so khớp sau chuẩn hóa).
func (s *OptionService) FindOptionByLabel(ctx context.Context, tenantID, facetID primitive.ObjectID, label string) (*regmodels.Option, error) {
	normalized := utility.NormalizeLabel(label)
	if normalized == "" {
		return nil, common.ErrRequiredField
	}
	docID := regmodels.LookupDocID(tenantID.Hex(), regmodels.OptionLookupKeyByNormalized(facetID.Hex(), normalized))
	lookup, err := s.normLookup.FindOne(ctx, bson.M{"_id": docID}, nil)
	if err != nil {
		return nil, err
	}
	option, err := s.FindOneById(ctx, lookup.EntityID)
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// FindOrCreateOption tìm option theo label chuẩn hóa, tạo mới nếu chưa có.
// Idempotent: gọi lặp với cùng label (khác hoa/thường, khoảng trắng, dấu câu)
// luôn trả về cùng một option — đây là primitive cho ingestion dữ liệu thô.
// created = true nếu lần gọi này thực sự tạo mới.
func (s *OptionService) FindOrCreateOption(ctx context.Context, input *regdto.OptionFindOrCreateInput, tenantID primitive.ObjectID) (*regmodels.Option, bool, error) {
	facetID, err := primitive.ObjectIDFromHex(input.FacetID)
	if err != nil {
		return nil, false, common.ErrInvalidFormat
	}
	normalized := utility.NormalizeLabel(input.Label)
	if normalized == "" {
		return nil, false, common.ErrRequiredField
	}

	// Đường nhanh: label đã có option
	if option, err := s.FindOptionByLabel(ctx, tenantID, facetID, input.Label); err == nil {
		return option, false, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}

	locale := input.Locale
	if locale == "" {
		locale = "ko"
	}
	option, err := s.CreateOption(ctx, &regdto.OptionCreateInput{
		FacetID: input.FacetID,
		Code:    utility.Slugify(input.Label),
		Labels:  map[string]string{locale: input.Label},
	}, tenantID)
	if err == nil {
		return option, true, nil
	}
	// Thua race với một find-or-create khác cùng label: đọc lại theo id thắng cuộc
	if winnerID, ok := existingEntityID(err); ok {
		if existing, ferr := s.FindOneById(ctx, winnerID); ferr == nil {
			return &existing, false, nil
		}
	}
	return nil, false, err
}

// ListOptions trả về option của một facet theo order tăng dần, lọc status nếu có.
func (s *OptionService) ListOptions(ctx context.Context, tenantID, facetID primitive.ObjectID, status string) ([]regmodels.Option, error) {
	filter := bson.M{"tenantId": tenantID, "facetId": facetID}
	if status != "" {
		filter["status"] = status
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// ArchiveOption chuyển option sang archived. Event update sẽ kích hoạt cascade
// gỡ token "facetId|optionId" khỏi mọi item đang tham chiếu.
func (s *OptionService) ArchiveOption(ctx context.Context, tenantID, optionID primitive.ObjectID) (*regmodels.Option, error) {
	filter := bson.M{"_id": optionID, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"status": regmodels.StatusArchived}}
	option, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil {
		return nil, err
	}
	return &option, nil
}
