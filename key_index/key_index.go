package key_index

import (
	"context"
	"sort"
	"sync"

	"github.com/alibaba/RedisKeyTrie/client"
	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/metric"
	"github.com/alibaba/RedisKeyTrie/trie"
)

type Parameter struct {
	SourceHost  client.RedisHost
	BatchCount  int
	Parallel    int
	Qps         int
	ValueMode   int
	Filter      *common.KeyFilter
	MetricPrint bool
}

/*
 * KeyIndex keeps one ternary search trie per logical db of the source redis.
 * The tries are not safe for concurrent mutation, so every write goes through
 * Insert under the write lock and every query holds the read lock.
 */
type KeyIndex struct {
	Parameter

	stat                 metric.Stat
	currentDB            int32
	sourceDBNums         map[int32]int64
	sourcePhysicalDBList []string

	mu      sync.RWMutex
	indexes map[int32]*trie.Trie[*common.Key]

	// stages of Build, replaced in tests
	scanner        func(ctx context.Context, allKeys chan<- []*common.Key) error
	fetcherFactory func() (client.Fetcher, error)
}

func NewKeyIndex(param Parameter) *KeyIndex {
	p := &KeyIndex{
		Parameter: param,
		indexes:   make(map[int32]*trie.Trie[*common.Key]),
	}
	p.scanner = p.ScanFromSourceRedis
	p.fetcherFactory = p.newFetcher
	return p
}

func (p *KeyIndex) Stat() *metric.Stat {
	return &p.stat
}

// Insert adds or replaces one key in the trie of its db.
func (p *KeyIndex) Insert(key *common.Key) {
	if len(key.Key) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tree, ok := p.indexes[key.Db]
	if !ok {
		tree = trie.New[*common.Key]()
		p.indexes[key.Db] = tree
	}
	tree.Set(string(key.Key), key)
	p.stat.Indexed.Inc(1)
}

// Dbs returns the indexed dbs in ascending order.
func (p *KeyIndex) Dbs() []int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dbs := make([]int32, 0, len(p.indexes))
	for db := range p.indexes {
		dbs = append(dbs, db)
	}
	sort.Slice(dbs, func(i, j int) bool { return dbs[i] < dbs[j] })
	return dbs
}

func (p *KeyIndex) Len(db int32) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if tree, ok := p.indexes[db]; ok {
		return tree.Len()
	}
	return 0
}

func (p *KeyIndex) countQuery(hits int) {
	p.stat.Queries.Inc(1)
	p.stat.Matches.Inc(hits)
}

func (p *KeyIndex) Get(db int32, key string) (*common.Key, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tree, ok := p.indexes[db]
	if !ok {
		p.countQuery(0)
		return nil, false
	}
	value, ok := tree.Get(key)
	if ok {
		p.countQuery(1)
	} else {
		p.countQuery(0)
	}
	return value, ok
}

func (p *KeyIndex) Contains(db int32, key string) bool {
	_, ok := p.Get(db, key)
	return ok
}

// Match returns the keys matching pattern ('.' any one character, '*' any
// remainder) ordered by key.
func (p *KeyIndex) Match(db int32, pattern string) []*common.Key {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*common.Key, 0)
	if tree, ok := p.indexes[db]; ok {
		for _, key := range tree.PatternMatch(pattern) {
			result = append(result, key)
		}
	}
	sort.Slice(result, func(i, j int) bool { return string(result[i].Key) < string(result[j].Key) })
	p.countQuery(len(result))
	return result
}

// LongestPrefix returns the longest indexed key that is a prefix of str.
func (p *KeyIndex) LongestPrefix(db int32, str string) (*common.Key, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	tree, ok := p.indexes[db]
	if !ok {
		p.countQuery(0)
		return nil, false
	}
	prefix, ok := tree.LongestPrefixOf(str)
	if !ok {
		p.countQuery(0)
		return nil, false
	}
	key, ok := tree.Get(prefix)
	if ok {
		p.countQuery(1)
	} else {
		p.countQuery(0)
	}
	return key, ok
}

// Dump returns every key of db in key order.
func (p *KeyIndex) Dump(db int32) []*common.Key {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*common.Key, 0)
	if tree, ok := p.indexes[db]; ok {
		tree.Range(func(_ string, key *common.Key) bool {
			result = append(result, key)
			return true
		})
	}
	p.countQuery(len(result))
	return result
}
