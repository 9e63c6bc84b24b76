package key_index

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alibaba/RedisKeyTrie/client"
	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/trie"

	"golang.org/x/sync/errgroup"
)

// Build scans every logical db of the source redis and indexes its keys.
// A db that is rebuilt replaces the previous trie of that db.
func (p *KeyIndex) Build(ctx context.Context) error {
	sourceClient, err := client.NewRedisClient(p.SourceHost, 0)
	if err != nil {
		return fmt.Errorf("create redis client with host[%v] db[%v] error[%v]", p.SourceHost, 0, err)
	}
	p.sourceDBNums, p.sourcePhysicalDBList, err = sourceClient.FetchBaseInfo()
	sourceClient.Close()
	if err != nil {
		return err
	}

	dbs := make([]int32, 0, len(p.sourceDBNums))
	for db, keyNum := range p.sourceDBNums {
		common.Logger.Infof("db=%d:keys=%d", db, keyNum)
		dbs = append(dbs, db)
	}
	sort.Slice(dbs, func(i, j int) bool { return dbs[i] < dbs[j] })
	common.Logger.Infof("physical db list: %v", p.sourcePhysicalDBList)

	for _, db := range dbs {
		if err := p.buildDB(ctx, db); err != nil {
			return fmt.Errorf("build index of db[%v] failed[%v]", db, err)
		}
	}
	common.Logger.Infof("all finish successfully, totally %d keys indexed in %d dbs", p.total(), len(dbs))
	return nil
}

func (p *KeyIndex) buildDB(ctx context.Context, db int32) error {
	p.currentDB = db
	p.stat.Reset()

	p.mu.Lock()
	p.indexes[db] = trie.New[*common.Key]()
	p.mu.Unlock()

	tickerStat := time.NewTicker(time.Second * common.StatRollFrequency)
	ctxStat, cancelStat := context.WithCancel(ctx)
	statDone := make(chan struct{})
	go func() {
		defer close(statDone)
		defer tickerStat.Stop()
		for {
			select {
			case <-ctxStat.Done():
				return
			case <-tickerStat.C:
				p.stat.Rotate()
				p.PrintStat(db, false)
			}
		}
	}()
	// the stat goroutine must be gone before the next db is built
	stopStat := func() {
		cancelStat()
		<-statDone
	}
	defer stopStat()

	common.Logger.Infof("start index db %d", db)
	keys := make(chan []*common.Key, 1024)
	fetched := make(chan []*common.Key, 1024)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.scanner(gctx, keys)
	})
	g.Go(func() error {
		defer close(fetched)
		fetchers, fctx := errgroup.WithContext(gctx)
		for i := 0; i < p.Parallel; i++ {
			fetchers.Go(func() error {
				return p.FetchAllKeyInfo(fctx, keys, fetched)
			})
		}
		return fetchers.Wait()
	})
	g.Go(func() error {
		p.InsertAll(fetched)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	stopStat()
	p.PrintStat(db, true)
	return nil
}

func (p *KeyIndex) total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := 0
	for _, tree := range p.indexes {
		total += tree.Len()
	}
	return total
}
