// Package utility - Test các helper slice dùng cho bulk operation.
package utility

import "testing"

func TestSplitIntoChunks(t *testing.T) {
	items := make([]int, 1200)
	for i := range items {
		items[i] = i
	}

	chunks := SplitIntoChunks(items, 500)
	if len(chunks) != 3 {
		t.Fatalf("SplitIntoChunks(1200, 500) trả về %d chunk, muốn 3", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 200 {
		t.Errorf("kích thước chunk = %d/%d/%d, muốn 500/500/200", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	// Chunk cuối phải chứa đúng phần tử cuối
	last := chunks[2][len(chunks[2])-1]
	if last != 1199 {
		t.Errorf("phần tử cuối = %d, muốn 1199", last)
	}
}

func TestSplitIntoChunks_EdgeCases(t *testing.T) {
	if got := SplitIntoChunks([]int{}, 500); got != nil {
		t.Errorf("slice rỗng phải trả về nil, got %v", got)
	}
	if got := SplitIntoChunks([]int{1, 2}, 0); got != nil {
		t.Errorf("size <= 0 phải trả về nil, got %v", got)
	}
	chunks := SplitIntoChunks([]int{1, 2, 3}, 10)
	if len(chunks) != 1 || len(chunks[0]) != 3 {
		t.Errorf("slice nhỏ hơn size phải ra đúng 1 chunk, got %v", chunks)
	}
}

func TestSetEqual(t *testing.T) {
	if !SetEqual([]string{"a", "b"}, []string{"b", "a"}) {
		t.Error("SetEqual phải bỏ qua thứ tự")
	}
	if !SetEqual([]string{"a", "a", "b"}, []string{"b", "a"}) {
		t.Error("SetEqual phải bỏ qua phần tử trùng")
	}
	if SetEqual([]string{"a"}, []string{"a", "b"}) {
		t.Error("SetEqual phải phát hiện tập khác nhau")
	}
	if !SetEqual([]string{}, nil) {
		t.Error("SetEqual giữa rỗng và nil phải bằng nhau")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"x", "y"}, "y") {
		t.Error("Contains không tìm thấy phần tử có trong slice")
	}
	if Contains([]string{"x"}, "z") {
		t.Error("Contains trả về true cho phần tử không có")
	}
}
