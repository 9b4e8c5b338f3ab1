package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	dir := t.TempDir()
	writeTable(t, dir, "councils.json", `[
		{"name": "Gloucester City Council", "code": "GLO"},
		{"name": "Stroud District Council", "code": "STR"}
	]`)
	writeTable(t, dir, "committees.json", `[
		{"id": "147", "name": "Planning Committee", "council": "Gloucester City Council"},
		{"id": "152", "name": "Cabinet", "council": "Gloucester City Council"},
		{"id": "88", "name": "Environment Committee", "council": "Stroud District Council"}
	]`)
	writeTable(t, dir, "wards.json", `[
		{"name": "Barton and Tredworth", "council": "Gloucester City Council", "councillors": ["Usman Bhaimia"]},
		{"name": "Kingsholm and Wotton", "council": "Gloucester City Council"}
	]`)

	registry, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return registry
}

func TestLoad(t *testing.T) {
	registry := testRegistry(t)

	if got := len(registry.Councils()); got != 2 {
		t.Errorf("Councils() = %d entries, want 2", got)
	}
	if got := len(registry.Committees("")); got != 3 {
		t.Errorf("Committees(\"\") = %d entries, want 3", got)
	}
}

func TestLoad_MissingFilesAreEmptyTables(t *testing.T) {
	registry, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(registry.Councils()) != 0 || len(registry.Committees("")) != 0 {
		t.Error("expected empty tables")
	}
	if _, ok := registry.WardByName("Barton and Tredworth"); ok {
		t.Error("WardByName matched in an empty registry")
	}
}

func TestLoad_MalformedTableFails(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "councils.json", `{not json`)
	if _, err := Load(dir); err == nil {
		t.Fatal("Load() succeeded on malformed JSON")
	}
}

func TestCommittees_FilterByCouncil(t *testing.T) {
	registry := testRegistry(t)

	committees := registry.Committees("gloucester city council")
	if len(committees) != 2 {
		t.Fatalf("got %d committees, want 2", len(committees))
	}
	for _, committee := range committees {
		if committee.Council != "Gloucester City Council" {
			t.Errorf("wrong council: %+v", committee)
		}
	}

	if got := registry.Committees("Cotswold District Council"); len(got) != 0 {
		t.Errorf("unknown council returned %d committees", len(got))
	}
}

func TestWardByName(t *testing.T) {
	registry := testRegistry(t)

	ward, ok := registry.WardByName("  BARTON AND TREDWORTH ")
	if !ok {
		t.Fatal("WardByName() did not match")
	}
	if ward.Council != "Gloucester City Council" {
		t.Errorf("Council = %q", ward.Council)
	}
	if len(ward.Councillors) != 1 {
		t.Errorf("Councillors = %v", ward.Councillors)
	}

	if _, ok := registry.WardByName("Nowhere"); ok {
		t.Error("WardByName matched an unknown ward")
	}
}
