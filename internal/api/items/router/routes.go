// Package router đăng ký các route thuộc domain Items.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	itemhdl "datapage/internal/api/items/handler"
	"datapage/internal/api/middleware"
	apirouter "datapage/internal/api/router"
)

// Register đăng ký tất cả route Items lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	itemHandler, err := itemhdl.NewItemHandler()
	if err != nil {
		return fmt.Errorf("tạo ItemHandler: %w", err)
	}

	tenantMiddleware := middleware.TenantMiddleware()
	middlewares := []fiber.Handler{tenantMiddleware}

	// POST /items/create — clientId idempotency: retry trả về item đã tạo
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "POST", "/create", middlewares, itemHandler.HandleCreate)
	// PUT /items/update/:id — server tính lại normalized + flatFacetPairs
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "PUT", "/update/:id", middlewares, itemHandler.HandleUpdate)
	// DELETE /items/delete/:id — xóa kèm lookup clientId trong cùng batch
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "DELETE", "/delete/:id", middlewares, itemHandler.HandleDelete)
	// GET /items/by-sheet/:sheetId?limit=100 — thứ tự (order, name, createdAt)
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "GET", "/by-sheet/:sheetId", middlewares, itemHandler.HandleGetBySheet)
	// POST /items/search — lọc theo cặp facet/option, nhiều filter = AND
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "POST", "/search", middlewares, itemHandler.HandleSearch)
	// GET /items/search-by-name?q=...
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "GET", "/search-by-name", middlewares, itemHandler.HandleSearchByName)
	// POST /items/bulk-create | bulk-update | bulk-delete — chunk ≤500, 207 khi partial
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "POST", "/bulk-create", middlewares, itemHandler.HandleBulkCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "POST", "/bulk-update", middlewares, itemHandler.HandleBulkUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/items", "POST", "/bulk-delete", middlewares, itemHandler.HandleBulkDelete)

	// CRUD generic: chỉ các route đọc (create/update/delete đi qua route chuyên biệt ở trên)
	r.RegisterCRUDRoutes(v1, "/items", itemHandler, apirouter.CRUDConfig{
		Find: true, FindOne: true, FindById: true, FindIds: true, Paginate: true,
		Count: true, Exists: true,
	})

	return nil
}
