package record

// Uniques returns the unique key of every record, preserving input order.
// Duplicate keys are included if present in the input.
func Uniques[T Record](records []T) []interface{} {
	keys := make([]interface{}, 0, len(records))
	for _, r := range records {
		keys = append(keys, r.UniqueKey())
	}
	return keys
}

// FindByUnique returns the first record (in input order) whose unique key
// equals key.
func FindByUnique[T Record](records []T, key interface{}) (T, bool) {
	for _, r := range records {
		if r.UniqueKey() == key {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Intersection returns the records of a whose unique keys also appear in b,
// preserving a's order. A key duplicated within a contributes only its first
// occurrence.
func Intersection[T Record](a, b []T) []T {
	return filterByKeys(a, b, true)
}

// Difference returns the records of a whose unique keys do not appear in b,
// preserving a's order. A key duplicated within a contributes only its first
// occurrence.
func Difference[T Record](a, b []T) []T {
	return filterByKeys(a, b, false)
}

func filterByKeys[T Record](a, b []T, keep bool) []T {
	inB := make(map[interface{}]struct{}, len(b))
	for _, r := range b {
		inB[r.UniqueKey()] = struct{}{}
	}

	var result []T
	seen := make(map[interface{}]struct{}, len(a))
	for _, r := range a {
		key := r.UniqueKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := inB[key]; ok == keep {
			result = append(result, r)
		}
	}
	return result
}
