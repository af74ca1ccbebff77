// Package reghdl - Handler facet thuộc domain Registry.
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

// FacetHandler xử lý các route facet. CRUD generic đi qua BaseHandler;
// create/archive/find-by-code có logic riêng (lookup, cascade).
type FacetHandler struct {
	basehdl.BaseHandler[regmodels.Facet, regdto.FacetCreateInput, regdto.FacetUpdateInput]
	FacetService *regsvc.FacetService
}

// NewFacetHandler tạo FacetHandler mới.
func NewFacetHandler() (*FacetHandler, error) {
	svc, err := regsvc.NewFacetService()
	if err != nil {
		return nil, fmt.Errorf("tạo FacetService: %w", err)
	}
	h := &FacetHandler{FacetService: svc}
	h.BaseHandler = *basehdl.NewBaseHandler[regmodels.Facet, regdto.FacetCreateInput, regdto.FacetUpdateInput](svc)
	return h, nil
}

// HandleCreate xử lý POST /facets/create: tạo facet kèm kiểm tra trùng code.
// Trùng code trả về 409 với existingId trong details.
func (h *FacetHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input regdto.FacetCreateInput
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

		facet, err := h.FacetService.CreateFacet(c.Context(), &input, *tenantID)
		if err == nil {
			logger.LogCRUD("create", "facet", facet.ID.Hex(), c, map[string]interface{}{"code": facet.Code})
		}
		h.HandleResponse(c, facet, err)
		return nil
	})
}

// HandleFindByCode xử lý GET /facets/by-code/:code.
func (h *FacetHandler) HandleFindByCode(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		code := c.Params("code")
		if code == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		facet, err := h.FacetService.FindFacetByCode(c.Context(), *tenantID, code)
		h.HandleResponse(c, facet, err)
		return nil
	})
}

// HandleList xử lý GET /facets/list?status=active.
func (h *FacetHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		facets, err := h.FacetService.ListFacets(c.Context(), *tenantID, c.Query("status"))
		h.HandleResponse(c, facets, err)
		return nil
	})
}

// HandleArchive xử lý POST /facets/:id/archive.
// Cascade gỡ facet khỏi item chạy bất đồng bộ qua event, response trả về ngay.
func (h *FacetHandler) HandleArchive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		facetID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		facet, err := h.FacetService.ArchiveFacet(c.Context(), *tenantID, facetID)
		if err == nil {
			logger.LogCRUD("archive", "facet", facetID.Hex(), c, nil)
		}
		h.HandleResponse(c, facet, err)
		return nil
	})
}
