package domain

// Record is a node in the tree store: a mapping from field name to value.
// Profiles, job posts and application snapshots are all stored this way so
// that sparse merge-updates preserve sibling fields written by other schema
// versions.
type Record map[string]interface{}

// Str returns the string value of a field, or "" when absent or non-string.
func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Has reports whether the field is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
