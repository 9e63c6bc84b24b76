package common

import (
	"fmt"
	"strings"

	"github.com/alibaba/RedisKeyTrie/trie"
)

/*
 * KeyFilter is the white list given by --filterlist. An element ending with
 * '*' is a prefix match, otherwise it is a full match. e.g.: 'abc*|efg|m*'
 * passes 'abc', 'abc1', 'efg', 'm', 'mxyz', but not 'efgh' or 'p'.
 */
type KeyFilter struct {
	all      bool
	exact    trie.Trie[struct{}]
	prefixes trie.Trie[struct{}]
}

// NewKeyFilter parses a '|' separated filter list. An empty list passes every key.
func NewKeyFilter(list string) (*KeyFilter, error) {
	f := new(KeyFilter)
	if len(list) == 0 {
		f.all = true
		return f, nil
	}

	for _, filter := range strings.Split(list, FilterSplitter) {
		switch {
		case filter == "":
			return nil, fmt.Errorf("invalid input filter list[%v]", list)
		case filter == string(trie.AnyRest):
			f.all = true
		case strings.HasSuffix(filter, string(trie.AnyRest)):
			f.prefixes.Set(strings.TrimSuffix(filter, string(trie.AnyRest)), struct{}{})
		default:
			f.exact.Set(filter, struct{}{})
		}
	}
	return f, nil
}

// Pass returns true when the key should be indexed.
func (f *KeyFilter) Pass(key []byte) bool {
	if f == nil || f.all {
		return true
	}
	s := string(key)
	if f.exact.Contains(s) {
		return true
	}
	_, ok := f.prefixes.LongestPrefixOf(s)
	return ok
}

func (f *KeyFilter) String() string {
	if f == nil || f.all {
		return "*"
	}
	var list []string
	f.exact.Range(func(key string, _ struct{}) bool {
		list = append(list, key)
		return true
	})
	f.prefixes.Range(func(key string, _ struct{}) bool {
		list = append(list, key+string(trie.AnyRest))
		return true
	})
	return strings.Join(list, FilterSplitter)
}
