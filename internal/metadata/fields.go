package metadata

import (
	"slices"

	"replayview/internal/types"
)

const identifierFieldName = "identifier"

// FilterUserFields keeps user fields with a value, excluding the identifier
// field which already has its own row. Order is preserved.
func FilterUserFields(fields []types.Field) []types.Field {
	out := make([]types.Field, 0, len(fields))
	for _, field := range fields {
		if field.Type != types.FieldTypeUser {
			continue
		}
		if field.Name == identifierFieldName {
			continue
		}
		if field.Value == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}

// FieldMemo caches FilterUserFields for the last field list it saw. It is not
// safe for concurrent use; the UI event loop owns it.
type FieldMemo struct {
	source   []types.Field
	filtered []types.Field
	primed   bool
	computed int
}

func (m *FieldMemo) Filter(fields []types.Field) []types.Field {
	if m.primed && slices.Equal(m.source, fields) {
		return m.filtered
	}
	m.source = slices.Clone(fields)
	m.filtered = FilterUserFields(fields)
	m.primed = true
	m.computed++
	return m.filtered
}

// Computations reports how many times the filter actually ran.
func (m *FieldMemo) Computations() int {
	return m.computed
}
