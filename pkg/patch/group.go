package patch

// Group partitions operations by target path, preserving each file's relative
// order. The second return value lists the paths in first-seen order so
// callers can iterate deterministically.
func Group(ops []Operation) (map[string][]Operation, []string) {
	grouped := make(map[string][]Operation)
	var paths []string
	for _, op := range ops {
		if _, ok := grouped[op.Path]; !ok {
			paths = append(paths, op.Path)
		}
		grouped[op.Path] = append(grouped[op.Path], op)
	}
	return grouped, paths
}
