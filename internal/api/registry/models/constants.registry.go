// Package models - Các model thuộc domain Registry: facet, option, sheet
// và các lookup document phục vụ kiểm tra trùng procedural.
package models

// Trạng thái của facet/option/sheet.
// archived là trạng thái terminal: trigger dọn tham chiếu sẽ chạy khi chuyển sang archived.
const (
	StatusActive   = "active"
	StatusHidden   = "hidden"
	StatusArchived = "archived"
)

// Kiểu facet. single/multi tham chiếu option; text/time/date là giá trị tự do.
const (
	FacetTypeSingle = "single"
	FacetTypeMulti  = "multi"
	FacetTypeText   = "text"
	FacetTypeTime   = "time"
	FacetTypeDate   = "date"
)

// ValidFacetTypes dùng cho validate input.
var ValidFacetTypes = []string{FacetTypeSingle, FacetTypeMulti, FacetTypeText, FacetTypeTime, FacetTypeDate}

// ValidStatuses dùng cho validate input.
var ValidStatuses = []string{StatusActive, StatusHidden, StatusArchived}
