package paging

import "testing"

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestTrimPage_FirstPageWithNext(t *testing.T) {
	rows := makeRows(PageSize + 1)
	res := TrimPage(&rows, "", "")
	if len(rows) != PageSize {
		t.Errorf("len: got %d, want %d", len(rows), PageSize)
	}
	if rows[len(rows)-1] != PageSize-1 {
		t.Errorf("last row: got %d, want %d", rows[len(rows)-1], PageSize-1)
	}
	if res.HasPrev || !res.HasNext {
		t.Errorf("indicators: got %+v, want HasPrev=false HasNext=true", res)
	}
}

func TestTrimPage_LastPage(t *testing.T) {
	rows := makeRows(10)
	res := TrimPage(&rows, "", "cursor")
	if len(rows) != 10 {
		t.Errorf("len: got %d, want 10", len(rows))
	}
	if !res.HasPrev || res.HasNext {
		t.Errorf("indicators: got %+v, want HasPrev=true HasNext=false", res)
	}
}

func TestTrimPage_BackwardTrimsFirstRow(t *testing.T) {
	rows := makeRows(PageSize + 1)
	res := TrimPage(&rows, "cursor", "")
	if len(rows) != PageSize {
		t.Errorf("len: got %d, want %d", len(rows), PageSize)
	}
	if rows[0] != 1 {
		t.Errorf("first row: got %d, want 1", rows[0])
	}
	if !res.HasPrev || !res.HasNext {
		t.Errorf("indicators: got %+v, want HasPrev=true HasNext=true", res)
	}
}

func TestTrimPage_BackwardToFirstPage(t *testing.T) {
	rows := makeRows(10)
	res := TrimPage(&rows, "cursor", "")
	if len(rows) != 10 {
		t.Errorf("len: got %d, want 10", len(rows))
	}
	if res.HasPrev || !res.HasNext {
		t.Errorf("indicators: got %+v, want HasPrev=false HasNext=true", res)
	}
}

func TestConfigureKeyset_Directions(t *testing.T) {
	if cfg := ConfigureKeyset("", ""); cfg.Direction != Forward || cfg.SortOrder != 1 || cfg.Cursor != nil {
		t.Errorf("empty cursors: got %+v", cfg)
	}
	if cfg := ConfigureKeyset("bogus", ""); cfg.Direction != Backward || cfg.SortOrder != -1 {
		t.Errorf("before cursor: got %+v", cfg)
	}
}

func TestReverse(t *testing.T) {
	rows := []int{3, 2, 1}
	Reverse(rows)
	for i, want := range []int{1, 2, 3} {
		if rows[i] != want {
			t.Fatalf("rows = %v", rows)
		}
	}
}
