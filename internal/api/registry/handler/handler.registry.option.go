// Package reghdl - Handler option thuộc domain Registry.
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

// OptionHandler xử lý các route option.
type OptionHandler struct {
	basehdl.BaseHandler[regmodels.Option, regdto.OptionCreateInput, regdto.OptionUpdateInput]
	OptionService *regsvc.OptionService
}

// NewOptionHandler tạo OptionHandler mới.
func NewOptionHandler() (*OptionHandler, error) {
	svc, err := regsvc.NewOptionService()
	if err != nil {
		return nil, fmt.Errorf("tạo OptionService: %w", err)
	}
	h := &OptionHandler{OptionService: svc}
	h.BaseHandler = *basehdl.NewBaseHandler[regmodels.Option, regdto.OptionCreateInput, regdto.OptionUpdateInput](svc)
	return h, nil
}

// HandleCreate xử lý POST /options/create: tạo option kèm kiểm tra trùng
// theo cả code lẫn label chuẩn hóa.
func (h *OptionHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input regdto.OptionCreateInput
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
		option, err := h.OptionService.CreateOption(c.Context(), &input, *tenantID)
		if err == nil {
			logger.LogCRUD("create", "option", option.ID.Hex(), c, map[string]interface{}{"code": option.Code, "facetId": option.FacetID.Hex()})
		}
		h.HandleResponse(c, option, err)
		return nil
	})
}

// HandleFindOrCreate xử lý POST /options/find-or-create: idempotent theo label
// chuẩn hóa — gọi lặp cùng label luôn trả về cùng option.
func (h *OptionHandler) HandleFindOrCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input regdto.OptionFindOrCreateInput
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
		option, created, err := h.OptionService.FindOrCreateOption(c.Context(), &input, *tenantID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if created {
			logger.LogCRUD("create", "option", option.ID.Hex(), c, map[string]interface{}{"label": input.Label, "findOrCreate": true})
		}
		h.HandleResponse(c, fiber.Map{"option": option, "created": created}, nil)
		return nil
	})
}

// HandleFindByLabel xử lý GET /options/by-label?facetId=...&label=...
func (h *OptionHandler) HandleFindByLabel(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		facetID, err := primitive.ObjectIDFromHex(c.Query("facetId"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		label := c.Query("label")
		if label == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		option, err := h.OptionService.FindOptionByLabel(c.Context(), *tenantID, facetID, label)
		h.HandleResponse(c, option, err)
		return nil
	})
}

// HandleList xử lý GET /options/list?facetId=...&status=active.
func (h *OptionHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		facetID, err := primitive.ObjectIDFromHex(c.Query("facetId"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		options, err := h.OptionService.ListOptions(c.Context(), *tenantID, facetID, c.Query("status"))
		h.HandleResponse(c, options, err)
		return nil
	})
}

// HandleArchive xử lý POST /options/:id/archive.
func (h *OptionHandler) HandleArchive(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		optionID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		option, err := h.OptionService.ArchiveOption(c.Context(), *tenantID, optionID)
		if err == nil {
			logger.LogCRUD("archive", "option", optionID.Hex(), c, nil)
		}
		h.HandleResponse(c, option, err)
		return nil
	})
}
