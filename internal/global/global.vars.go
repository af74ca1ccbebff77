package global

import (
	"datapage/config"
	"datapage/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Registry_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Registry_CollectionName struct {
	Facets                  string // Tên collection cho facet (trường phân loại)
	Options                 string // Tên collection cho option (giá trị của facet)
	Sheets                  string // Tên collection cho sheet (bảng dữ liệu của tenant)
	FacetCodeLookups        string // Tên collection cho lookup mã facet (đảm bảo unique theo tenant)
	OptionCodeLookups       string // Tên collection cho lookup mã option (đảm bảo unique theo facet)
	OptionNormalizedLookups string // Tên collection cho lookup nhãn chuẩn hóa của option
	Items                   string // Tên collection cho item (bản ghi dữ liệu)
	ItemClientLookups       string // Tên collection cho lookup idempotency key của item (đảm bảo unique theo tenant)
}

// Các biến toàn cục
var Validate *validator.Validate                                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                                               // Cấu hình của server
var MongoDB_ColNames MongoDB_Registry_CollectionName = *new(MongoDB_Registry_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
