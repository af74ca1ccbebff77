// Package itemhdl - Handler item thuộc domain Items.
package itemhdl

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "datapage/internal/api/base/handler"
	itemdto "datapage/internal/api/items/dto"
	itemmodels "datapage/internal/api/items/models"
	itemsvc "datapage/internal/api/items/service"
	"datapage/internal/common"
	"datapage/internal/logger"
)

// ItemHandler xử lý các route item. CRUD generic đi qua BaseHandler;
// create (idempotency), search và bulk có handler riêng.
type ItemHandler struct {
	basehdl.BaseHandler[itemmodels.Item, itemdto.ItemCreateInput, itemdto.ItemUpdateInput]
	ItemService *itemsvc.ItemService
}

// NewItemHandler tạo ItemHandler mới.
func NewItemHandler() (*ItemHandler, error) {
	svc, err := itemsvc.NewItemService()
	if err != nil {
		return nil, fmt.Errorf("tạo ItemService: %w", err)
	}
	h := &ItemHandler{ItemService: svc}
	h.BaseHandler = *basehdl.NewBaseHandler[itemmodels.Item, itemdto.ItemCreateInput, itemdto.ItemUpdateInput](svc)
	return h, nil
}

// HandleCreate xử lý POST /items/create. Retry với cùng clientId trả về
// item đã tạo (created = false) thay vì tạo bản sao.
func (h *ItemHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input itemdto.ItemCreateInput
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
		item, created, err := h.ItemService.CreateItem(c.Context(), &input, *tenantID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if created {
			logger.LogCRUD("create", "item", item.ID.Hex(), c, map[string]interface{}{"sheetId": item.SheetID.Hex()})
		}
		h.HandleResponse(c, fiber.Map{"item": item, "created": created}, nil)
		return nil
	})
}

// HandleUpdate xử lý PUT /items/:id — đường update chuyên biệt: server tính lại
// normalized/flatFacetPairs từ patch (thay cho update-by-id generic).
func (h *ItemHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		var input itemdto.ItemUpdateInput
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
		item, err := h.ItemService.UpdateItem(c.Context(), *tenantID, itemID, &input)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// HandleDelete xử lý DELETE /items/delete/:id — đường xóa chuyên biệt: item có
// clientId thì lookup idempotency bị xóa cùng batch (thay cho delete-by-id generic).
func (h *ItemHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		if err := h.ItemService.DeleteItem(c.Context(), *tenantID, itemID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("delete", "item", itemID.Hex(), c, nil)
		h.HandleResponse(c, fiber.Map{"deleted": itemID.Hex()}, nil)
		return nil
	})
}

// HandleGetBySheet xử lý GET /items/by-sheet/:sheetId?limit=100.
func (h *ItemHandler) HandleGetBySheet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sheetID, err := primitive.ObjectIDFromHex(c.Params("sheetId"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		var limit int64
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		items, err := h.ItemService.GetItemsBySheet(c.Context(), *tenantID, sheetID, limit)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// HandleSearch xử lý POST /items/search: lọc theo cặp facet/option, AND semantics.
func (h *ItemHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input itemdto.ItemSearchInput
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
		items, err := h.ItemService.SearchItems(c.Context(), *tenantID, input.Filters, input.Limit)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// HandleSearchByName xử lý GET /items/search-by-name?q=...&limit=50.
func (h *ItemHandler) HandleSearchByName(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		q := c.Query("q")
		if q == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}
		tenantID := h.GetTenantID(c)
		if tenantID == nil {
			h.HandleResponse(c, nil, common.ErrMissingTenant)
			return nil
		}
		var limit int64 = 50
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		items, err := h.ItemService.SearchItemsByName(c.Context(), *tenantID, q, limit)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// handleBulkResult format kết quả bulk: lỗi partial trả về 207 kèm tiến độ,
// lỗi khác đi qua HandleResponse như thường. extra được gộp vào payload thành
// công lẫn details của 207 (bulk create dùng để trả danh sách id đã ghi).
func (h *ItemHandler) handleBulkResult(c fiber.Ctx, committed int, extra fiber.Map, err error) {
	if err == nil {
		payload := fiber.Map{"committed": committed}
		for k, v := range extra {
			payload[k] = v
		}
		h.HandleResponse(c, payload, nil)
		return
	}
	var partial *common.PartialBulkError
	if errors.As(err, &partial) {
		details := fiber.Map{
			"committedChunks": partial.CommittedChunks,
			"totalChunks":     partial.TotalChunks,
			"committedCount":  partial.CommittedCount,
		}
		for k, v := range extra {
			details[k] = v
		}
		basehdl.JSONResponse(c, common.StatusMultiStatus, fiber.Map{
			"code":    common.ErrCodeDatabaseQuery.Code,
			"message": partial.Error(),
			"details": details,
			"status":  "error",
		})
		return
	}
	h.HandleResponse(c, nil, err)
}

// HandleBulkCreate xử lý POST /items/bulk-create.
func (h *ItemHandler) HandleBulkCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input itemdto.ItemBulkCreateInput
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
		ids, err := h.ItemService.BulkCreateItems(c.Context(), *tenantID, input.Items)
		idHexes := make([]string, len(ids))
		for i, id := range ids {
			idHexes[i] = id.Hex()
		}
		if err == nil {
			logger.LogCRUD("bulk_create", "item", "", c, map[string]interface{}{"count": len(ids)})
		}
		h.handleBulkResult(c, len(ids), fiber.Map{"ids": idHexes}, err)
		return nil
	})
}

// HandleBulkUpdate xử lý POST /items/bulk-update.
func (h *ItemHandler) HandleBulkUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input itemdto.ItemBulkUpdateInput
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
		committed, err := h.ItemService.BulkUpdateItems(c.Context(), *tenantID, input.Updates)
		h.handleBulkResult(c, committed, nil, err)
		return nil
	})
}

// HandleBulkDelete xử lý POST /items/bulk-delete.
func (h *ItemHandler) HandleBulkDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input itemdto.ItemBulkDeleteInput
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
		committed, err := h.ItemService.BulkDeleteItems(c.Context(), *tenantID, input.IDs)
		if err == nil {
			logger.LogCRUD("bulk_delete", "item", "", c, map[string]interface{}{"count": committed})
		}
		h.handleBulkResult(c, committed, nil, err)
		return nil
	})
}
