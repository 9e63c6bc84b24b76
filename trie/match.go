package trie

// PatternMatch returns every stored key consistent with pattern, where '.'
// matches any single byte and '*' matches any remainder. Bytes
// after a '*' are ignored. A pattern matching nothing yields an empty map.
func (t *Trie[V]) PatternMatch(pattern string) map[string]V {
	result := make(map[string]V)
	collect(t.root, "", pattern, 0, result)
	return result
}

func collect[V any](x *node[V], prefix string, pattern string, d int, result map[string]V) {
	if x == nil || d == len(pattern) {
		return
	}

	p := pattern[d]
	if p == AnyRest {
		collectAll(x, prefix, result)
		return
	}

	if p == AnyOne || p < x.symbol {
		collect(x.less, prefix, pattern, d, result)
	}
	if p == AnyOne || p == x.symbol {
		key := extend(prefix, x.symbol)
		if d == len(pattern)-1 && x.terminal {
			result[key] = x.value
		}
		collect(x.equal, key, pattern, d+1, result)
	}
	if p == AnyOne || p > x.symbol {
		collect(x.greater, prefix, pattern, d, result)
	}
}

// collectAll gathers the whole subtrie rooted at x, x itself included.
func collectAll[V any](x *node[V], prefix string, result map[string]V) {
	if x == nil {
		return
	}
	key := extend(prefix, x.symbol)
	if x.terminal {
		result[key] = x.value
	}
	collectAll(x.less, prefix, result)
	collectAll(x.equal, key, result)
	collectAll(x.greater, prefix, result)
}

// LongestPrefixOf returns the longest stored key that is a prefix of s.
func (t *Trie[V]) LongestPrefixOf(s string) (string, bool) {
	best := 0

	x := t.root
	for i := 0; x != nil && i < len(s); {
		switch c := s[i]; {
		case c < x.symbol:
			x = x.less
		case c > x.symbol:
			x = x.greater
		default:
			i++
			if x.terminal {
				best = i
			}
			x = x.equal
		}
	}

	if best == 0 {
		return "", false
	}
	return s[:best], true
}
