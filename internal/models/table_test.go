package models

import "testing"

func TestLookupIsCaseInsensitive(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("Ped1", 400)

	for _, name := range []string{"Ped1", "PED1", "ped1", "pEd1"} {
		id, ok := tbl.Lookup(name)
		if !ok || id != 400 {
			t.Errorf("Lookup(%q) = %d, %v", name, id, ok)
		}
	}
	if _, ok := tbl.Lookup("Ped2"); ok {
		t.Error("Lookup matched a name that was never inserted")
	}
}

func TestInsertKeepsOrderAndReplaces(t *testing.T) {
	tbl := NewTable()
	tbl.Insert("zebra", 3)
	tbl.Insert("Apple", 1)
	tbl.Insert("mango", 2)

	entries := tbl.Entries()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Name != "Apple" || entries[1].Name != "mango" || entries[2].Name != "zebra" {
		t.Errorf("entries out of order: %v", entries)
	}

	// Fold-equal names collapse onto one entry.
	tbl.Insert("MANGO", 20)
	if tbl.Len() != 3 {
		t.Errorf("len after replace = %d, want 3", tbl.Len())
	}
	if id, _ := tbl.Lookup("mango"); id != 20 {
		t.Errorf("replaced id = %d, want 20", id)
	}
}

func TestFoldCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "ABC", 0},
		{"abc", "abd", -1},
		{"abd", "abc", 1},
		{"ab", "abc", -1},
		{"abc", "ab", 1},
		{"", "", 0},
		{"a_1", "A_1", 0},
	}
	for _, tt := range tests {
		if got := foldCompare(tt.a, tt.b); got != tt.want {
			t.Errorf("foldCompare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStoreIsModelFromIDE(t *testing.T) {
	def := NewTable()
	def.Insert("Ped1", 400)
	level := NewTable()
	level.Insert("LevelObj", 9000)

	store := NewStore()
	store.Setup(def, level)

	if !store.IsModelFromIDE("PED1") || !store.IsModelFromIDE("ped1") {
		t.Error("default table lookup must be case-insensitive")
	}
	if !store.IsModelFromIDE("levelobj") {
		t.Error("level table must also answer IsModelFromIDE")
	}
	if store.IsModelFromIDE("unknown_thing") {
		t.Error("unknown name reported as a model")
	}
}

func TestStoreLookupPrefersLevel(t *testing.T) {
	def := NewTable()
	def.Insert("shared", 1)
	level := NewTable()
	level.Insert("shared", 2)

	store := NewStore()
	store.Setup(def, level)
	if id, _ := store.Lookup("SHARED"); id != 2 {
		t.Errorf("Lookup = %d, want the level table's 2", id)
	}
}
