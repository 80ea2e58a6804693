package database

import (
	"testing"
)

func TestNewPaged_Empty(t *testing.T) {
	p := NewPaged([]string{}, 1, 20, 0)
	if len(p.Data) != 0 {
		t.Errorf("Data length = %d, want 0", len(p.Data))
	}
	if p.Items.Total != 0 || p.Items.Begin != 0 || p.Items.End != 0 {
		t.Errorf("Items = %+v, want all zero", p.Items)
	}
	if p.Pages.Total != 0 || p.Pages.HasNext || p.Pages.HasPrev {
		t.Errorf("Pages = %+v, want no pages", p.Pages)
	}
}

func TestNewPaged_NilDataBecomesEmptySlice(t *testing.T) {
	p := NewPaged[string](nil, 1, 20, 0)
	if p.Data == nil {
		t.Error("Data is nil, want empty slice")
	}
}

func TestNewPaged_FirstPage(t *testing.T) {
	data := make([]int, 20)
	p := NewPaged(data, 1, 20, 45)
	if p.Pages.Total != 3 {
		t.Errorf("Pages.Total = %d, want 3", p.Pages.Total)
	}
	if !p.Pages.HasNext || p.Pages.HasPrev {
		t.Errorf("Pages = %+v, want next but no prev", p.Pages)
	}
	if p.Items.Begin != 1 || p.Items.End != 20 {
		t.Errorf("Items begin/end = %d/%d, want 1/20", p.Items.Begin, p.Items.End)
	}
}

func TestNewPaged_LastPartialPage(t *testing.T) {
	data := make([]int, 5)
	p := NewPaged(data, 3, 20, 45)
	if p.Pages.HasNext {
		t.Error("HasNext = true on last page")
	}
	if !p.Pages.HasPrev {
		t.Error("HasPrev = false on page 3")
	}
	if p.Items.Begin != 41 || p.Items.End != 45 {
		t.Errorf("Items begin/end = %d/%d, want 41/45", p.Items.Begin, p.Items.End)
	}
}

// TestNewPaged_PageBeyondEnd verifies a page past the last one reports
// accurate totals with an empty window instead of erroring.
func TestNewPaged_PageBeyondEnd(t *testing.T) {
	p := NewPaged([]int{}, 9, 20, 45)
	if p.Items.Total != 45 {
		t.Errorf("Items.Total = %d, want 45", p.Items.Total)
	}
	if p.Items.Begin != 0 || p.Items.End != 0 {
		t.Errorf("Items begin/end = %d/%d, want 0/0", p.Items.Begin, p.Items.End)
	}
	if p.Pages.Total != 3 {
		t.Errorf("Pages.Total = %d, want 3", p.Pages.Total)
	}
	if p.Pages.HasNext {
		t.Error("HasNext = true beyond last page")
	}
}

func TestNewPaged_ExactFit(t *testing.T) {
	data := make([]int, 20)
	p := NewPaged(data, 2, 20, 40)
	if p.Pages.Total != 2 {
		t.Errorf("Pages.Total = %d, want 2", p.Pages.Total)
	}
	if p.Pages.HasNext {
		t.Error("HasNext = true on final exact page")
	}
	if p.Items.End != 40 {
		t.Errorf("Items.End = %d, want 40", p.Items.End)
	}
}
