package trie

const (
	AnyOne  = '.' // match any single byte
	AnyRest = '*' // match everything from here on
)

// Trie is a ternary search trie mapping non-empty string keys to values.
// Keys are compared byte by byte, so binary keys are stored as given. The zero value is an empty trie ready to use.
// A Trie is not safe for concurrent mutation; callers serialize access.
type Trie[V any] struct {
	root *node[V]
	size int
}

func New[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Len returns the number of stored keys.
func (t *Trie[V]) Len() int {
	return t.size
}

func (t *Trie[V]) Contains(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Get returns the value stored under key. The empty key is never found.
func (t *Trie[V]) Get(key string) (V, bool) {
	var zero V
	if len(key) == 0 {
		return zero, false
	}

	x := t.root
	for i := 0; x != nil; {
		switch c := key[i]; {
		case c < x.symbol:
			x = x.less
		case c > x.symbol:
			x = x.greater
		default:
			if i == len(key)-1 {
				if !x.terminal {
					return zero, false
				}
				return x.value, true
			}
			i++
			x = x.equal
		}
	}
	return zero, false
}

// Set stores value under key, replacing any previous value. The empty key is ignored.
func (t *Trie[V]) Set(key string, value V) {
	if len(key) == 0 {
		return
	}

	link := &t.root
	for i := 0; ; {
		if *link == nil {
			*link = newNode[V](key[i])
		}
		x := *link
		switch c := key[i]; {
		case c < x.symbol:
			link = &x.less
		case c > x.symbol:
			link = &x.greater
		default:
			if i == len(key)-1 {
				if !x.terminal {
					t.size++
				}
				x.value = value
				x.terminal = true
				return
			}
			i++
			link = &x.equal
		}
	}
}

// Range calls fn for every stored key in byte order until fn returns false.
func (t *Trie[V]) Range(fn func(key string, value V) bool) {
	walk(t.root, "", fn)
}

func walk[V any](x *node[V], prefix string, fn func(string, V) bool) bool {
	if x == nil {
		return true
	}
	if !walk(x.less, prefix, fn) {
		return false
	}
	key := extend(prefix, x.symbol)
	if x.terminal && !fn(key, x.value) {
		return false
	}
	if !walk(x.equal, key, fn) {
		return false
	}
	return walk(x.greater, prefix, fn)
}

func extend(prefix string, symbol byte) string {
	return prefix + string([]byte{symbol})
}
