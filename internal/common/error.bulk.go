package common

import "fmt"

// PartialBulkError mô tả lỗi bulk operation thất bại giữa chừng:
// các chunk trước đó ĐÃ commit, chunk lỗi và các chunk sau KHÔNG được ghi.
// Bulk operation chỉ atomic trong từng chunk (tối đa 500 thao tác),
// không atomic trên toàn bộ lời gọi — caller cần biết tiến độ để retry/repair.
type PartialBulkError struct {
	CommittedChunks int   // Số chunk đã commit thành công trước khi lỗi
	TotalChunks     int   // Tổng số chunk của lời gọi
	CommittedCount  int   // Số thao tác đã commit (tổng phần tử các chunk thành công)
	Cause           error // Lỗi gốc của chunk thất bại
}

// Error trả về message mô tả tiến độ và lỗi gốc.
func (e *PartialBulkError) Error() string {
	return fmt.Sprintf(
		"bulk operation thất bại tại chunk %d/%d (đã commit %d thao tác): %v",
		e.CommittedChunks+1, e.TotalChunks, e.CommittedCount, e.Cause,
	)
}

// Unwrap hỗ trợ errors.Is/errors.As với lỗi gốc.
func (e *PartialBulkError) Unwrap() error {
	return e.Cause
}
