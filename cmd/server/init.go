package main

import (
	"context"

	"datapage/config"
	itemmodels "datapage/internal/api/items/models"
	regmodels "datapage/internal/api/registry/models"
	"datapage/internal/database"
	"datapage/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Registry (tiền tố registry_)
	global.MongoDB_ColNames.Facets = "registry_facets"
	global.MongoDB_ColNames.Options = "registry_options"
	global.MongoDB_ColNames.Sheets = "registry_sheets"

	// Lookup documents cho unique thủ công (_id = tenantIdHex + "_" + key)
	global.MongoDB_ColNames.FacetCodeLookups = "registry_facet_code_lookups"
	global.MongoDB_ColNames.OptionCodeLookups = "registry_option_code_lookups"
	global.MongoDB_ColNames.OptionNormalizedLookups = "registry_option_normalized_lookups"

	// Dữ liệu item của tenant + lookup idempotency key
	global.MongoDB_ColNames.Items = "items"
	global.MongoDB_ColNames.ItemClientLookups = "item_client_lookups"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: objectid, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection theo tag `index` trên model.
	// Các collection lookup dùng _id tự nhiên nên không cần index bổ sung.
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Data
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Facets), regmodels.Facet{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Options), regmodels.Option{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Sheets), regmodels.Sheet{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Items), itemmodels.Item{})
}
