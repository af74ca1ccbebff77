package reconcile

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "datapage/internal/api/base/handler"
	"datapage/internal/common"
	"datapage/internal/logger"
)

// ReconcileHandler xử lý route đối soát (endpoint vận hành).
type ReconcileHandler struct {
	service *ReconcileService
}

// NewReconcileHandler tạo ReconcileHandler mới.
func NewReconcileHandler() (*ReconcileHandler, error) {
	svc, err := NewReconcileService()
	if err != nil {
		return nil, fmt.Errorf("tạo ReconcileService: %w", err)
	}
	return &ReconcileHandler{service: svc}, nil
}

// HandleRebuildTenant xử lý POST /reconcile/rebuild — rebuild toàn bộ trường
// dẫn xuất của tenant trong header X-Tenant-ID. Chạy đồng bộ, trả về số item.
func (h *ReconcileHandler) HandleRebuildTenant(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		tenantIDStr, _ := c.Locals("tenant_id").(string)
		tenantID, err := primitive.ObjectIDFromHex(tenantIDStr)
		if err != nil {
			basehdl.JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": common.ErrMissingTenant.Error(), "status": "error",
			})
			return nil
		}

		processed, err := h.service.RebuildTenant(c.Context(), tenantID)
		if err != nil {
			var partial *common.PartialBulkError
			if errors.As(err, &partial) {
				basehdl.JSONResponse(c, common.StatusMultiStatus, fiber.Map{
					"code":    common.ErrCodeDatabaseQuery.Code,
					"message": partial.Error(),
					"details": fiber.Map{
						"committedChunks": partial.CommittedChunks,
						"totalChunks":     partial.TotalChunks,
						"committedCount":  partial.CommittedCount,
					},
					"status": "error",
				})
				return nil
			}
			basehdl.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
				"code": common.ErrCodeDatabase.Code, "message": err.Error(), "status": "error",
			})
			return nil
		}

		logger.LogAction("reconcile_rebuild", c, map[string]interface{}{"processed": processed})
		basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": fiber.Map{"processed": processed}, "status": "success",
		})
		return nil
	})
}
