package reconcile

import "reconcile/internal/storage"

// Table renders the entity's storage shape: canonical columns in order with
// their logical types, plus the lookup indexes the storage collaborator is
// expected to create.
func (s EntitySpec) Table() storage.Table {
	kinds := s.ColumnKinds()
	cols := make([]storage.Column, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = storage.Column{Name: c, Kind: kinds[c]}
	}
	return storage.Table{Name: s.Name, Columns: cols, Indexes: s.Indexes}
}
