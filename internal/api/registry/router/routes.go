// Package router đăng ký các route thuộc domain Registry: facets, options, sheets.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"datapage/internal/api/middleware"
	reghdl "datapage/internal/api/registry/handler"
	apirouter "datapage/internal/api/router"
)

// Register đăng ký tất cả route Registry lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	facetHandler, err := reghdl.NewFacetHandler()
	if err != nil {
		return fmt.Errorf("tạo FacetHandler: %w", err)
	}
	optionHandler, err := reghdl.NewOptionHandler()
	if err != nil {
		return fmt.Errorf("tạo OptionHandler: %w", err)
	}
	sheetHandler, err := reghdl.NewSheetHandler()
	if err != nil {
		return fmt.Errorf("tạo SheetHandler: %w", err)
	}

	tenantMiddleware := middleware.TenantMiddleware()
	middlewares := []fiber.Handler{tenantMiddleware}

	// Create đi qua handler riêng (kiểm tra trùng qua lookup), không dùng insert-one generic.
	// Delete vật lý bị tắt: vòng đời kết thúc ở archive (cascade dọn tham chiếu).
	readUpdateConfig := apirouter.CRUDConfig{
		Find: true, FindOne: true, FindById: true, FindIds: true, Paginate: true,
		UpdById: true,
		Count:   true, Exists: true,
	}

	// POST /facets/create — tạo facet, 409 kèm existingId nếu trùng code
	apirouter.RegisterRouteWithMiddleware(v1, "/facets", "POST", "/create", middlewares, facetHandler.HandleCreate)
	// GET /facets/list?status=active
	apirouter.RegisterRouteWithMiddleware(v1, "/facets", "GET", "/list", middlewares, facetHandler.HandleList)
	// GET /facets/by-code/:code
	apirouter.RegisterRouteWithMiddleware(v1, "/facets", "GET", "/by-code/:code", middlewares, facetHandler.HandleFindByCode)
	// POST /facets/:id/archive — kích hoạt cascade gỡ facet khỏi mọi item
	apirouter.RegisterRouteWithMiddleware(v1, "/facets", "POST", "/:id/archive", middlewares, facetHandler.HandleArchive)
	r.RegisterCRUDRoutes(v1, "/facets", facetHandler, readUpdateConfig)

	// POST /options/create
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "POST", "/create", middlewares, optionHandler.HandleCreate)
	// POST /options/find-or-create — idempotent theo label chuẩn hóa
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "POST", "/find-or-create", middlewares, optionHandler.HandleFindOrCreate)
	// GET /options/by-label?facetId=...&label=...
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "GET", "/by-label", middlewares, optionHandler.HandleFindByLabel)
	// GET /options/list?facetId=...&status=active
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "GET", "/list", middlewares, optionHandler.HandleList)
	// POST /options/:id/archive — kích hoạt cascade gỡ token khỏi item
	apirouter.RegisterRouteWithMiddleware(v1, "/options", "POST", "/:id/archive", middlewares, optionHandler.HandleArchive)
	r.RegisterCRUDRoutes(v1, "/options", optionHandler, readUpdateConfig)

	// POST /sheets/create
	apirouter.RegisterRouteWithMiddleware(v1, "/sheets", "POST", "/create", middlewares, sheetHandler.HandleCreate)
	// GET /sheets/list?status=active
	apirouter.RegisterRouteWithMiddleware(v1, "/sheets", "GET", "/list", middlewares, sheetHandler.HandleList)
	// POST /sheets/:id/add-facets — $addToSet union + alias, một update atomic
	apirouter.RegisterRouteWithMiddleware(v1, "/sheets", "POST", "/:id/add-facets", middlewares, sheetHandler.HandleAddFacets)
	// POST /sheets/:id/remove-facet — $pull + $unset alias, một update atomic
	apirouter.RegisterRouteWithMiddleware(v1, "/sheets", "POST", "/:id/remove-facet", middlewares, sheetHandler.HandleRemoveFacet)
	// POST /sheets/:id/archive
	apirouter.RegisterRouteWithMiddleware(v1, "/sheets", "POST", "/:id/archive", middlewares, sheetHandler.HandleArchive)
	r.RegisterCRUDRoutes(v1, "/sheets", sheetHandler, readUpdateConfig)

	return nil
}
