package models

// Store publishes the model tables consumed by translation-unit workers.
// Setup must happen before any concurrent job starts, or exclusively
// between job batches; after that the store is read-only.
type Store struct {
	defaultModels *Table
	levelModels   *Table
}

// NewStore creates a store with empty tables.
func NewStore() *Store {
	return &Store{defaultModels: NewTable(), levelModels: NewTable()}
}

// Setup replaces both tables. Not safe to call while jobs are running.
func (s *Store) Setup(defaultModels, levelModels *Table) {
	if defaultModels == nil {
		defaultModels = NewTable()
	}
	if levelModels == nil {
		levelModels = NewTable()
	}
	s.defaultModels = defaultModels
	s.levelModels = levelModels
}

// IsModelFromIDE reports whether name denotes a known game object, in
// either the default or the level table. Case-insensitive.
func (s *Store) IsModelFromIDE(name string) bool {
	return s.defaultModels.Contains(name) || s.levelModels.Contains(name)
}

// Lookup finds the ID for name, preferring the level table.
func (s *Store) Lookup(name string) (uint32, bool) {
	if id, ok := s.levelModels.Lookup(name); ok {
		return id, true
	}
	return s.defaultModels.Lookup(name)
}
