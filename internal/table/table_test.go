package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRow(key, title string) Row {
	return Row{
		Key: key,
		ID:  1,
		Cells: []Cell{
			{Text: key, Style: StyleIDBadge},
			{Text: title},
			{Text: "Activo", Style: StyleStatus},
		},
	}
}

func TestTable_LoadAndAppend(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "El zorro de arriba")})

	tbl.Append(sampleRow("L0002", "Los ríos profundos"))

	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if _, ok := tbl.Row("L0002"); !ok {
		t.Error("appended row not found by key")
	}
}

func TestTable_PatchOverwritesOnlyGivenCells(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "Título viejo")})

	ok := tbl.Patch("L0001", map[int]Cell{
		1: {Text: "Título nuevo"},
		2: {Text: "Inactivo", Style: StyleStatus},
	})
	if !ok {
		t.Fatal("Patch() = false, want true")
	}

	row, _ := tbl.Row("L0001")
	if row.Cells[1].Text != "Título nuevo" {
		t.Errorf("title cell = %q, want patched value", row.Cells[1].Text)
	}
	if row.Cells[2].Text != "Inactivo" {
		t.Errorf("status cell = %q, want Inactivo", row.Cells[2].Text)
	}
	// The identifier cell was not in the patch set and must survive.
	if row.Cells[0].Text != "L0001" {
		t.Errorf("id cell = %q, want untouched L0001", row.Cells[0].Text)
	}
}

func TestTable_PatchMissingRowIsNoOp(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "x")})

	if tbl.Patch("L9999", map[int]Cell{1: {Text: "y"}}) {
		t.Error("Patch() = true for a missing key, want silent no-op")
	}
	// Exact match only: a prefix of an existing key must not patch it.
	if tbl.Patch("L000", map[int]Cell{1: {Text: "y"}}) {
		t.Error("Patch() matched a partial key")
	}
}

func TestTable_PatchIsIdempotent(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "a")})

	patch := map[int]Cell{1: {Text: "b"}, 2: {Text: "Inactivo", Style: StyleStatus}}
	tbl.Patch("L0001", patch)
	once, _ := tbl.Row("L0001")

	tbl.Patch("L0001", patch)
	twice, _ := tbl.Row("L0001")

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("patching twice diverged from patching once (-once +twice):\n%s", diff)
	}
}

func TestTable_Filter(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{
		sampleRow("L0001", "Los ríos profundos"),
		sampleRow("L0002", "La ciudad y los perros"),
	})

	if got := tbl.Filter("perros"); len(got) != 1 || got[0].Key != "L0002" {
		t.Errorf("Filter(perros) = %d rows, want only L0002", len(got))
	}
	// Case-insensitive.
	if got := tbl.Filter("PERROS"); len(got) != 1 {
		t.Errorf("Filter(PERROS) = %d rows, want 1", len(got))
	}
	// Empty query returns everything.
	if got := tbl.Filter("  "); len(got) != 2 {
		t.Errorf("Filter(blank) = %d rows, want 2", len(got))
	}
	// The filtered view is what exports consume; no match means no rows.
	if got := tbl.Filter("zzz"); len(got) != 0 {
		t.Errorf("Filter(zzz) = %d rows, want 0", len(got))
	}
}

func TestTable_FilterMatchesExtraBadgeText(t *testing.T) {
	tbl := New("Código", "Autor")
	tbl.Load([]Row{{
		Key:   "L0001",
		Cells: []Cell{{Text: "L0001"}, {Text: "Vargas Llosa", Extra: "A0007"}},
	}})

	if got := tbl.Filter("a0007"); len(got) != 1 {
		t.Errorf("Filter over Extra text = %d rows, want 1", len(got))
	}
}

func TestTable_PatchLeavesEarlierSnapshotsIntact(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "Título viejo")})

	snapshot := tbl.Rows()

	if ok := tbl.Patch("L0001", map[int]Cell{1: {Text: "Título nuevo"}}); !ok {
		t.Fatal("Patch() = false, want true")
	}

	if got := snapshot[0].Cells[1].Text; got != "Título viejo" {
		t.Errorf("snapshot cell = %q, patch leaked into a handed-out copy", got)
	}
	row, _ := tbl.Row("L0001")
	if row.Cells[1].Text != "Título nuevo" {
		t.Errorf("table cell = %q, want the patched value", row.Cells[1].Text)
	}
}

func TestTable_ConcurrentPatchAndFilter(t *testing.T) {
	tbl := New("Código", "Título", "Estado")
	tbl.Load([]Row{sampleRow("L0001", "Título viejo")})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			tbl.Patch("L0001", map[int]Cell{1: {Text: "Título nuevo"}})
		}
	}()

	// Page renders iterate filtered snapshots while edits land; the race
	// detector flags any write into a shared backing array.
	for i := 0; i < 200; i++ {
		for _, row := range tbl.Filter("título") {
			_ = row.Cells[1].Text
		}
	}
	<-done
}
