package utility

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// SplitIntoChunks chia slice thành các chunk tối đa size phần tử.
// Dùng cho bulk operation: mỗi chunk commit như một atomic batch riêng,
// các chunk KHÔNG atomic với nhau (best-effort, chunk-atomic).
func SplitIntoChunks[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// SetEqual so sánh hai slice theo ngữ nghĩa tập hợp (bỏ qua thứ tự, phần tử trùng).
func SetEqual[T comparable](a, b []T) bool {
	setA := make(map[T]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[T]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for v := range setA {
		if _, ok := setB[v]; !ok {
			return false
		}
	}
	return true
}
