// Package basesvc - Test phần thuần của bulk chunking (không cần store).
package basesvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"datapage/internal/common"
	"datapage/internal/utility"
)

func TestCommitChunked_DoDaiFilterUpdateLech(t *testing.T) {
	filters := []bson.M{{}, {}}
	updates := []interface{}{nil}
	err := CommitChunked(context.Background(), nil, nil, filters, updates, 0)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Errorf("filter/update lệch độ dài phải ra ErrInvalidInput, got %v", err)
	}
}

func TestMakeRange_ChiaChunkLienTuc(t *testing.T) {
	chunks := utility.SplitIntoChunks(makeRange(1200), MaxBatchOps)
	if len(chunks) != 3 {
		t.Fatalf("1200 thao tác phải chia thành 3 chunk, got %d", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 200 {
		t.Errorf("kích thước chunk phải là 500/500/200, got %d/%d/%d",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	// Index phải liên tục qua ranh giới chunk — tiến độ CommittedCount
	// của PartialBulkError dựa trên thứ tự này
	if chunks[1][0] != 500 || chunks[2][0] != 1000 {
		t.Errorf("index đầu mỗi chunk phải là 500 và 1000, got %d và %d",
			chunks[1][0], chunks[2][0])
	}
}

func TestPartialBulkError_MangTienDo(t *testing.T) {
	cause := common.ErrTransaction
	err := &common.PartialBulkError{
		CommittedChunks: 2,
		TotalChunks:     3,
		CommittedCount:  1000,
		Cause:           cause,
	}
	var partial *common.PartialBulkError
	if !errors.As(err, &partial) {
		t.Fatal("PartialBulkError phải bắt được qua errors.As")
	}
	if partial.CommittedCount != 1000 {
		t.Errorf("CommittedCount = %d, muốn 1000", partial.CommittedCount)
	}
	if !errors.Is(err, cause) {
		t.Error("PartialBulkError phải unwrap về lỗi gốc của chunk thất bại")
	}
}
