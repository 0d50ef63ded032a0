package utils

// RemoveDuplicates returns a new slice holding the unique elements of
// items, ordered by the first occurrence of each value in the input.
func RemoveDuplicates[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	var unique []T
	for _, item := range items {
		if _, ok := seen[item]; !ok {
			seen[item] = struct{}{}
			unique = append(unique, item)
		}
	}
	return unique
}
