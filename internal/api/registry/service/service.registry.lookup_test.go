// Package regsvc - Test các quyết định create-if-absent quanh lookup document.
package regsvc

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"datapage/internal/common"
)

// Tạo trùng code: request đầu thắng và giữ lookup, mọi request sau phải nhận
// AlreadyExists mang _id của entity tạo ĐẦU TIÊN — không đổi qua các lần gọi.
func TestLookupConflict_CodeDaCoChu(t *testing.T) {
	first := primitive.NewObjectID()

	err := lookupConflict(first, nil)
	if !common.IsAlreadyExists(err) {
		t.Fatalf("code đã có chủ phải ra lỗi AlreadyExists, got %v", err)
	}
	id, ok := common.ExistingIDFromError(err)
	if !ok || id != first.Hex() {
		t.Errorf("lỗi trùng code phải mang _id của entity đầu tiên %s, got %q", first.Hex(), id)
	}

	// Gọi lặp: quyết định ổn định, lần nào cũng trả về cùng id
	again, _ := common.ExistingIDFromError(lookupConflict(first, nil))
	if again != id {
		t.Errorf("lần gọi sau trả id %q khác lần đầu %q", again, id)
	}
}

func TestLookupConflict_CodeConTrong(t *testing.T) {
	if err := lookupConflict(primitive.NilObjectID, common.ErrNotFound); err != nil {
		t.Errorf("key còn trống (ErrNotFound) phải cho create đi tiếp, got %v", err)
	}
}

func TestLookupConflict_LoiKhacTraNguyen(t *testing.T) {
	err := lookupConflict(primitive.NilObjectID, common.ErrConnection)
	if !errors.Is(err, common.ErrConnection) {
		t.Errorf("lỗi store phải trả nguyên, got %v", err)
	}
	if common.IsAlreadyExists(err) {
		t.Error("lỗi store không được biến thành AlreadyExists")
	}
}

// Phục hồi sau race: find-or-create thua cuộc nhận AlreadyExists từ CreateOption
// và phải rút ra đúng _id của option thắng cuộc để đọc lại — đây là chỗ bảo đảm
// hai lời gọi cùng label luôn hội tụ về một option duy nhất.
func TestExistingEntityID_PhucHoiSauRace(t *testing.T) {
	winner := primitive.NewObjectID()
	id, ok := existingEntityID(common.NewAlreadyExistsError(winner.Hex()))
	if !ok {
		t.Fatal("lỗi AlreadyExists hợp lệ phải cho ra id thắng cuộc")
	}
	if id != winner {
		t.Errorf("id phục hồi = %s, muốn %s", id.Hex(), winner.Hex())
	}
}

func TestExistingEntityID_KhongPhaiLoiTrung(t *testing.T) {
	if _, ok := existingEntityID(common.ErrNotFound); ok {
		t.Error("lỗi không phải AlreadyExists thì không được phục hồi id")
	}
	if _, ok := existingEntityID(nil); ok {
		t.Error("err nil không được phục hồi id")
	}
}

func TestExistingEntityID_IdHong(t *testing.T) {
	if _, ok := existingEntityID(common.NewAlreadyExistsError("khong-phai-hex")); ok {
		t.Error("id không phải hex hợp lệ phải bị từ chối")
	}
}
