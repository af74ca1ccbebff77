// Package reghdl - Handler sheet thuộc domain Registry.
package reghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "datapage/internal/api/base/handler"
	regdto "datapage/internal/api/registry/dto"
	regmodels "datapage/internal/api/registry/models"
	regsvc "datapage/internal/api/registry/service"
	"datapage/internal/common"
	"datapage/internal/logger"
)

// SheetHandler xử lý các route sheet.
type SheetHandler struct {
	basehdl.BaseHandler[regmodels.Sheet, regdto.SheetCreateInput, regdto.SheetUpdateInput]
	SheetService *regsvc.SheetService
}

// NewSheetHandler tạo SheetHandler mới.
func NewSheetHandler() (*SheetHandler, error) {
	svc, err := regsvc.NewSheetService()
	if err != nil {
		return nil, fmt.Errorf("tạo SheetService: %w", err)
	}
	h := &SheetHandler{SheetService: svc}
	h.BaseHandler = *basehdl.NewBaseHandler[regmodels.Sheet, regdto.SheetCreateInput, regdto.SheetUpdateInput](svc)
	return h, nil
}

// HandleCreate xử lý POST /sheets/create.
func (h *SheetHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input regdto.SheetCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		sheet, err := h.SheetService.CreateSheet(c.Context(), &input, *tenantID)
		if err == nil {
			logger.LogCRUD("create", "sheet", sheet.ID.Hex(), c, map[string]interface{}{"code": sheet.Code})
		}
		h.HandleResponse(c, sheet, err)
		return nil
	})
}

// HandleList xử lý GET /sheets/list?status=active.
func (h *SheetHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		sheets, err := h.SheetService.ListSheets(c.Context(), *tenantID, c.Query("status"))
		h.HandleResponse(c, sheets, err)
		return nil
	})
}

// HandleAddFacets xử lý POST /sheets/:id/add-facets.
func (h *SheetHandler) HandleAddFacets(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sheetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		var input regdto.SheetAddFacetsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		sheet, err := h.SheetService.AddFacets(c.Context(), *tenantID, sheetID, &input)
		h.HandleResponse(c, sheet, err)
		return nil
	})
}

// HandleRemoveFacet xử lý POST /sheets/:id/remove-facet.
func (h *SheetHandler) HandleRemoveFacet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sheetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		var input regdto.SheetRemoveFacetInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		facetID, err := primitive.ObjectIDFromHex(input.FacetID)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		sheet, err := h.SheetService.RemoveFacet(c.Context(), *tenantID, sheetID, facetID)
		h.HandleResponse(c, sheet, err)
		return nil
	})
}

// HandleArchive xử lý POST /sheets/:id/archive.
func (h *SheetHandler) HandleArchive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sheetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		sheet, err := h.SheetService.ArchiveSheet(c.Context(), *tenantID, sheetID)
		if err == nil {
			logger.LogCRUD("archive", "sheet", sheetID.Hex(), c, nil)
		}
		h.HandleResponse(c, sheet, err)
		return nil
	})
}
