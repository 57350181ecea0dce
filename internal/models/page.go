package models

// FeedPageSize is the single global page size for every feed view.
const FeedPageSize = 10

// Page is a bounded slice of a feed plus pagination metadata. Number is
// 1-indexed and always within [1, TotalPages].
type Page struct {
	Items      []Post `json:"items"`
	Number     int    `json:"number"`
	Size       int    `json:"size"`
	TotalItems int64  `json:"total_items"`
	TotalPages int    `json:"total_pages"`
}

// Paginate clamps a requested 1-indexed page number against the total item
// count and returns the normalized page number, the row offset and the total
// page count. Out-of-range requests do not error: numbers below 1 clamp to
// the first page and numbers past the end clamp to the last page. An empty
// feed yields a single empty page.
func Paginate(totalItems int64, number, size int) (page, offset, totalPages int) {
	if size < 1 {
		size = FeedPageSize
	}
	totalPages = int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return number, (number - 1) * size, totalPages
}

// NewPage assembles a Page from already-fetched items and the pagination
// values produced by Paginate.
func NewPage(items []Post, number, size int, totalItems int64, totalPages int) *Page {
	if items == nil {
		items = []Post{}
	}
	return &Page{
		Items:      items,
		Number:     number,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
