package correction

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreAppendAndLoad(t *testing.T) {
	store := NewStore(t.TempDir())

	first := Correction{
		Type:     TypeStreet,
		City:     "Beispielstadt",
		Street:   "Hauptstr.",
		ToStreet: "Hauptstraße",
		Comment:  "abbreviated in registry",
	}
	second := Correction{
		Type:        TypeIgnore,
		City:        "Beispielstadt",
		Street:      "Alte Gasse",
		Housenumber: "3",
	}

	if err := store.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	list, err := store.Load("Beispielstadt")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d corrections, want 2", len(list))
	}
	if list[0].ToStreet != "Hauptstraße" || list[1].Type != TypeIgnore {
		t.Errorf("insertion order not preserved: %+v", list)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	list, err := store.Load("Nirgendwo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d corrections for unknown district, want 0", len(list))
	}
}

func TestStoreValidation(t *testing.T) {
	store := NewStore(t.TempDir())

	tests := []struct {
		name       string
		correction Correction
	}{
		{
			name:       "Missing City",
			correction: Correction{Type: TypeStreet, Street: "A", ToStreet: "B"},
		},
		{
			name:       "Point Without Target",
			correction: Correction{Type: TypePoint, City: "X", Street: "A", Housenumber: "1"},
		},
		{
			name:       "Street Without Target",
			correction: Correction{Type: TypeStreet, City: "X", Street: "A"},
		},
		{
			name:       "Ignore Without Housenumber",
			correction: Correction{Type: TypeIgnore, City: "X", Street: "A"},
		},
		{
			name:       "Unknown Type",
			correction: Correction{Type: "merge", City: "X", Street: "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Append(tt.correction)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("got %T, want *ValidationError", err)
			}
		})
	}
}

func TestStoreLegacyFieldTranslation(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	legacy := `[
		{"type": "street", "state": "Beispielstadt", "street": "Hauptstr.", "new_street": "Hauptstraße"},
		{"type": "point", "city": "Beispielstadt", "street": "Nebenweg", "housenumber": "5",
		 "new_street": "Nebenweg", "new_housenumber": "5a"}
	]`
	if err := os.WriteFile(store.Path("Beispielstadt"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := store.Load("Beispielstadt")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d corrections, want 2", len(list))
	}
	if list[0].City != "Beispielstadt" {
		t.Errorf("state not translated to city: %+v", list[0])
	}
	if list[0].ToStreet != "Hauptstraße" {
		t.Errorf("new_street not translated: %+v", list[0])
	}
	if list[1].ToHousenumber != "5a" {
		t.Errorf("new_housenumber not translated: %+v", list[1])
	}
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	c := Correction{Type: TypeIgnore, City: "Beispielstadt", Street: "Alte Gasse", Housenumber: "3"}
	if err := store.Append(c); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "Beispielstadt_corrections.json")); err != nil {
		t.Errorf("expected corrections file: %v", err)
	}
}
