// Package regsvc - Các quyết định thuần quanh lookup document, dùng chung cho
// cả ba ràng buộc duy nhất (code facet, code option, label chuẩn hóa của option).
package regsvc

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"datapage/internal/common"
)

// lookupConflict xét kết quả point read lookup document trước khi create:
// err == nil nghĩa là key đã có chủ → AlreadyExists mang _id của entity đang
// giữ key (request lặp lại nhận cùng một id, bất kể gọi bao nhiêu lần);
// ErrNotFound nghĩa là key còn trống → nil; lỗi khác trả nguyên.
func lookupConflict(holder primitive.ObjectID, err error) error {
	if err == nil {
		return common.NewAlreadyExistsError(holder.Hex())
	}
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	return err
}

// existingEntityID lấy _id entity thắng cuộc từ lỗi AlreadyExists — bước phục
// hồi khi thua race create: caller đọc lại entity theo id này thay vì báo lỗi.
func existingEntityID(err error) (primitive.ObjectID, bool) {
	hex, ok := common.ExistingIDFromError(err)
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, perr := primitive.ObjectIDFromHex(hex)
	if perr != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
