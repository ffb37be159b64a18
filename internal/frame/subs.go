package frame

import "sort"

func sortedSubs[F any](m map[int]F) []F {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]F, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}
