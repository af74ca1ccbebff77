// Package events - Test cơ chế phát sự kiện thay đổi dữ liệu.
package events

import (
	"context"
	"testing"
	"time"
)

// Một handler panic không được kéo theo các handler khác: mỗi handler chạy
// trong goroutine riêng, panic được recover và ghi log.
func TestEmitDataChanged_HandlerPanicKhongAnhHuongHandlerKhac(t *testing.T) {
	done := make(chan DataChangeEvent, 1)
	OnDataChanged(func(_ context.Context, e DataChangeEvent) {
		panic("handler hỏng")
	})
	OnDataChanged(func(_ context.Context, e DataChangeEvent) {
		done <- e
	})

	want := DataChangeEvent{CollectionName: "items", Operation: OpInsert}
	EmitDataChanged(context.Background(), want)

	select {
	case got := <-done:
		if got.CollectionName != want.CollectionName || got.Operation != want.Operation {
			t.Errorf("handler nhận event %+v, muốn %+v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler sau handler panic không được gọi")
	}
}
