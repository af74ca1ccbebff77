package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"datapage/internal/common"
)

// TenantMiddleware middleware để quản lý tenant context
// - Đọc X-Tenant-ID (tenant ID dạng ObjectID hex) từ header
// - Validate format ObjectID
// - Lưu tenant_id vào context cho các handler phía sau
// Mọi thao tác đọc/ghi dữ liệu đều bắt buộc phải có tenant context.
func TenantMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tenantIDStr := c.Get("X-Tenant-ID")
		if tenantIDStr == "" {
			HandleErrorResponse(c, common.ErrMissingTenant)
			return nil
		}

		tenantID, err := primitive.ObjectIDFromHex(tenantIDStr)
		if err != nil {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationFormat,
				"Tenant ID không đúng định dạng ObjectID",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		c.Locals("tenant_id", tenantID.Hex())
		return c.Next()
	}
}
