package model

// Report is the ordered list of source sets produced by one generation run.
// It is serialized directly as the top-level JSON array.
type Report []SourceSet

// Equal compares two reports element by element.
func (r Report) Equal(other Report) bool {
	if len(r) != len(other) {
		return false
	}

	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Names returns the source set names in report order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r))
	for _, set := range r {
		names = append(names, set.Name)
	}

	return names
}

// FileCount returns the total number of files across all source sets.
func (r Report) FileCount() int {
	total := 0
	for _, set := range r {
		total += len(set.Files)
	}

	return total
}
