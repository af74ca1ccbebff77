// Package regsvc - Service sheet (registry_sheets).
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
)

// SheetService xử lý CRUD sheet. Mọi thay đổi facetIds/facetAliases dùng
// update đơn document với operator atomic ($addToSet/$pull/$unset) — không
// read-modify-write nên hai request đồng thời không ghi đè lẫn nhau.
type SheetService struct {
	*basesvc.BaseServiceMongoImpl[regmodels.Sheet]
}

// NewSheetService tạo SheetService mới.
func NewSheetService() (*SheetService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Sheets)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Sheets, common.ErrNotFound)
	}
	return &SheetService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[regmodels.Sheet](coll),
	}, nil
}

// CreateSheet tạo sheet mới.
func (s *SheetService) CreateSheet(ctx context.Context, input *regdto.SheetCreateInput, tenantID primitive.ObjectID) (*regmodels.Sheet, error) {
	facetIDs := make([]primitive.ObjectID, 0, len(input.FacetIDs))
	for _, hex := range input.FacetIDs {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		facetIDs = append(facetIDs, oid)
	}
	now := time.Now().UnixMilli()
	sheet, err := s.InsertOne(ctx, regmodels.Sheet{
		TenantID:  tenantID,
		Code:      input.Code,
		Labels:    input.Labels,
		Icon:      input.Icon,
		FacetIDs:  facetIDs,
		Order:     input.Order,
		Status:    regmodels.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// ListSheets trả về sheet của tenant theo order tăng dần, lọc status nếu có.
func (s *SheetService) ListSheets(ctx context.Context, tenantID primitive.ObjectID, status string) ([]regmodels.Sheet, error) {
	filter := bson.M{"tenantId": tenantID}
	if status != "" {
		filter["status"] = status
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// AddFacets thêm facet vào sheet bằng $addToSet $each (union, không trùng lặp)
// kèm set alias trong cùng MỘT update.
func (s *SheetService) AddFacets(ctx context.Context, tenantID, sheetID primitive.ObjectID, input *regdto.SheetAddFacetsInput) (*regmodels.Sheet, error) {
	facetIDs := make([]primitive.ObjectID, 0, len(input.FacetIDs))
	for _, hex := range input.FacetIDs {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		facetIDs = append(facetIDs, oid)
	}

	update := &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			"facetIds": bson.M{"$each": facetIDs},
		},
	}
	if len(input.Aliases) > 0 {
		update.Set = make(map[string]interface{}, len(input.Aliases))
		for facetHex, alias := range input.Aliases {
			if _, err := primitive.ObjectIDFromHex(facetHex); err != nil {
				return nil, common.ErrInvalidFormat
			}
			update.Set["facetAliases."+facetHex] = alias
		}
	}

	sheet, err := s.UpdateOne(ctx, bson.M{"_id": sheetID, "tenantId": tenantID}, update, nil)
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// RemoveFacet gỡ facet khỏi sheet: $pull facetIds + $unset alias tương ứng
// trong cùng MỘT update — không bao giờ có alias mồ côi.
func (s *SheetService) RemoveFacet(ctx context.Context, tenantID, sheetID, facetID primitive.ObjectID) (*regmodels.Sheet, error) {
	update := &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"facetIds": facetID,
		},
		Unset: map[string]interface{}{
			"facetAliases." + facetID.Hex(): "",
		},
	}
	sheet, err := s.UpdateOne(ctx, bson.M{"_id": sheetID, "tenantId": tenantID}, update, nil)
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

// ArchiveSheet chuyển sheet sang archived. Item của sheet không bị xóa
// (sheet chỉ là view; dữ liệu item vẫn truy cập được qua search).
func (s *SheetService) ArchiveSheet(ctx context.Context, tenantID, sheetID primitive.ObjectID) (*regmodels.Sheet, error) {
	filter := bson.M{"_id": sheetID, "tenantId": tenantID}
	update := bson.M{"$set": bson.M{"status": regmodels.StatusArchived}}
	sheet, err := s.UpdateOne(ctx, filter, update, nil)
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}
