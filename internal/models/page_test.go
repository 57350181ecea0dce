package models

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int64
		number     int
		wantPage   int
		wantOffset int
		wantPages  int
	}{
		{"first page of two", 11, 1, 1, 0, 2},
		{"last partial page", 11, 2, 2, 10, 2},
		{"exact multiple has no extra page", 20, 2, 2, 10, 2},
		{"past the end clamps to last", 11, 99, 2, 10, 2},
		{"zero clamps to first", 11, 0, 1, 0, 2},
		{"negative clamps to first", 11, -5, 1, 0, 2},
		{"empty feed is one empty page", 0, 1, 1, 0, 1},
		{"empty feed clamps high requests too", 0, 42, 1, 0, 1},
		{"single item", 1, 1, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, offset, pages := Paginate(tt.totalItems, tt.number, FeedPageSize)
			if page != tt.wantPage || offset != tt.wantOffset || pages != tt.wantPages {
				t.Errorf("Paginate(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.totalItems, tt.number, page, offset, pages,
					tt.wantPage, tt.wantOffset, tt.wantPages)
			}
		})
	}
}

func TestPaginateDefaultsBadSize(t *testing.T) {
	page, offset, pages := Paginate(25, 3, 0)
	if page != 3 || offset != 20 || pages != 3 {
		t.Errorf("Paginate with size 0 = (%d, %d, %d), want (3, 20, 3)", page, offset, pages)
	}
}

func TestNewPageNilItems(t *testing.T) {
	p := NewPage(nil, 1, FeedPageSize, 0, 1)
	if p.Items == nil {
		t.Fatal("NewPage(nil, ...) should produce an empty slice, not nil")
	}
	if len(p.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(p.Items))
	}
}
