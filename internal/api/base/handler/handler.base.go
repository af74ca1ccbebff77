package basehdl

// Package basehdl - base handler struct và các tiện ích parse/validate/transform.

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "datapage/internal/api/base/service"
	"datapage/internal/common"
	"datapage/internal/global"
	"datapage/internal/utility"
)

// BaseHandler cung cấp các CRUD handler chung cho một model.
// Type Parameters:
//   - T: Kiểu model
//   - CreateInput: DTO cho request tạo mới
//   - UpdateInput: DTO cho request cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// NewBaseHandler tạo BaseHandler mới bọc service CRUD
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{BaseService: service}
}

// ParseRequestBody parse request body JSON vào struct đích
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput validate struct với các tag validate (required, oneof, objectid, ...)
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// TransformCreateInputToModel chuyển CreateInput DTO sang model.
// Field trùng tên json được copy; field string có thể map sang ObjectID ở model
// (DTO khai báo transform qua cặp field cùng json tag).
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	var model T
	if err := transformStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// TransformUpdateInputToModel chuyển UpdateInput DTO sang model
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	var model T
	if err := transformStruct(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// transformStruct copy field theo tên từ source sang target (con trỏ struct).
// Hỗ trợ chuyển string → primitive.ObjectID cho các field id.
func transformStruct(source interface{}, target interface{}) error {
	src := reflect.ValueOf(source)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Ptr {
		return common.ErrInvalidFormat
	}
	dst = dst.Elem()
	if src.Kind() != reflect.Struct || dst.Kind() != reflect.Struct {
		return common.ErrInvalidFormat
	}

	srcType := src.Type()
	for i := 0; i < srcType.NumField(); i++ {
		sf := srcType.Field(i)
		sv := src.Field(i)
		if !sv.CanInterface() {
			continue
		}
		df := dst.FieldByName(sf.Name)
		if !df.IsValid() || !df.CanSet() {
			continue
		}

		// string → ObjectID (field id trong DTO là chuỗi hex)
		if sv.Kind() == reflect.String && df.Type() == reflect.TypeOf(primitive.ObjectID{}) {
			hex := sv.String()
			if hex == "" {
				continue
			}
			oid, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("Field %s: '%s' không phải ObjectID hợp lệ", sf.Name, hex),
					common.StatusBadRequest,
					err,
				)
			}
			df.Set(reflect.ValueOf(oid))
			continue
		}

		// []string → []ObjectID
		if sv.Kind() == reflect.Slice && sv.Type().Elem().Kind() == reflect.String &&
			df.Type() == reflect.TypeOf([]primitive.ObjectID{}) {
			out := make([]primitive.ObjectID, 0, sv.Len())
			for j := 0; j < sv.Len(); j++ {
				hex := sv.Index(j).String()
				oid, err := primitive.ObjectIDFromHex(hex)
				if err != nil {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("Field %s[%d]: '%s' không phải ObjectID hợp lệ", sf.Name, j, hex),
						common.StatusBadRequest,
						err,
					)
				}
				out = append(out, oid)
			}
			df.Set(reflect.ValueOf(out))
			continue
		}

		if sv.Type().AssignableTo(df.Type()) {
			df.Set(sv)
		} else if sv.Type().ConvertibleTo(df.Type()) {
			df.Set(sv.Convert(df.Type()))
		}
	}
	return nil
}

// ProcessFilter parse filter JSON từ query string và chuẩn hóa các field id.
// Các giá trị hex 24 ký tự của key _id / *Id được chuyển sang ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (bson.M, error) {
	filterStr := c.Query("filter", "{}")

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(filterStr), &raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là JSON hợp lệ. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter := bson.M{}
	for k, v := range raw {
		filter[k] = normalizeFilterValue(k, v)
	}
	return filter, nil
}

// normalizeFilterValue chuyển giá trị hex của các key id sang ObjectID
func normalizeFilterValue(key string, value interface{}) interface{} {
	if strVal, ok := value.(string); ok && isIDKey(key) && primitive.IsValidObjectID(strVal) {
		return utility.String2ObjectID(strVal)
	}
	return value
}

// isIDKey kiểm tra key có phải field id không (_id, tenantId, sheetId, facetId, ...)
func isIDKey(key string) bool {
	if key == "_id" {
		return true
	}
	n := len(key)
	return n > 2 && key[n-2:] == "Id"
}

// processMongoOptions parse options JSON từ query string (projection, sort, limit, skip)
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, findOne bool) (interface{}, error) {
	optionsStr := c.Query("options", "{}")

	var raw struct {
		Projection map[string]interface{} `json:"projection"`
		Sort       map[string]interface{} `json:"sort"`
		Limit      *int64                 `json:"limit"`
		Skip       *int64                 `json:"skip"`
	}
	if err := json.Unmarshal([]byte(optionsStr), &raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options phải là JSON hợp lệ. Giá trị nhận được: %s", optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if findOne {
		opts := mongoopts.FindOne()
		if raw.Projection != nil {
			opts.SetProjection(raw.Projection)
		}
		if raw.Sort != nil {
			opts.SetSort(raw.Sort)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if raw.Projection != nil {
		opts.SetProjection(raw.Projection)
	}
	if raw.Sort != nil {
		opts.SetSort(raw.Sort)
	}
	if raw.Limit != nil {
		opts.SetLimit(*raw.Limit)
	}
	if raw.Skip != nil {
		opts.SetSkip(*raw.Skip)
	}
	return opts, nil
}

// GetTenantID lấy tenantId từ fiber locals (middleware tenant đã set)
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetTenantID(c fiber.Ctx) *primitive.ObjectID {
	tenantIDStr, ok := c.Locals("tenant_id").(string)
	if !ok || tenantIDStr == "" {
		return nil
	}
	tenantID, err := primitive.ObjectIDFromHex(tenantIDStr)
	if err != nil {
		return nil
	}
	return &tenantID
}

// hasTenantIDField kiểm tra model có field TenantID không
func (h *BaseHandler[T, CreateInput, UpdateInput]) hasTenantIDField() bool {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	_, ok := t.FieldByName("TenantID")
	return ok
}

// applyTenantFilter thêm tenantId vào filter nếu model có field TenantID.
// Đảm bảo mọi truy vấn qua base handler đều bị giới hạn trong tenant của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) applyTenantFilter(c fiber.Ctx, filter bson.M) bson.M {
	if !h.hasTenantIDField() {
		return filter
	}
	tenantID := h.GetTenantID(c)
	if tenantID == nil || tenantID.IsZero() {
		return filter
	}
	if filter == nil {
		filter = bson.M{}
	}
	filter["tenantId"] = *tenantID
	return filter
}

// SetTenantID gán tenantId vào model (field TenantID) bằng reflection
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetTenantID(model interface{}, tenantID primitive.ObjectID) {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	f := v.FieldByName("TenantID")
	if !f.IsValid() || !f.CanSet() {
		return
	}
	if f.Type() == reflect.TypeOf(primitive.ObjectID{}) {
		f.Set(reflect.ValueOf(tenantID))
	}
}
