package trie

/*
 * node is one vertex of the ternary search trie. less/greater hold the
 * subtries for symbols smaller/larger than symbol at the same key position,
 * equal holds the subtrie for the next position. terminal marks that an
 * inserted key ends here.
 */
type node[V any] struct {
	symbol   byte
	value    V
	terminal bool

	less    *node[V]
	equal   *node[V]
	greater *node[V]
}

func newNode[V any](symbol byte) *node[V] {
	return &node[V]{symbol: symbol}
}
