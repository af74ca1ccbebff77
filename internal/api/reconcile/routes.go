package reconcile

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"datapage/internal/api/middleware"
	apirouter "datapage/internal/api/router"
)

// Register đăng ký route reconcile lên v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	handler, err := NewReconcileHandler()
	if err != nil {
		return fmt.Errorf("tạo ReconcileHandler: %w", err)
	}

	tenantMiddleware := middleware.TenantMiddleware()

	// POST /reconcile/rebuild — đối soát toàn bộ item của tenant (endpoint vận hành)
	apirouter.RegisterRouteWithMiddleware(v1, "/reconcile", "POST", "/rebuild", []fiber.Handler{tenantMiddleware}, handler.HandleRebuildTenant)

	return nil
}
