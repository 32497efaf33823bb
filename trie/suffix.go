package trie

// BuildSuffixIndex returns a tree storing every suffix of every key, the key
// itself included. Suffixes start on rune boundaries. An empty key stores the
// empty string, as Build does; non-empty keys do not add the empty suffix.
//
// Suffixes are inserted one by one, so the cost grows with the sum of the
// squared key lengths.
func BuildSuffixIndex(keys []string, compressed bool) *Tree {
	return Build(suffixes(keys), compressed)
}

func suffixes(keys []string) []string {
	var out []string
	for _, key := range keys {
		if key == "" {
			out = append(out, key)
			continue
		}
		for i := 0; i < len(key); {
			out = append(out, key[i:])
			i += len(firstRune(key[i:]))
		}
	}
	return out
}
