package key_index

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alibaba/RedisKeyTrie/client"
	"github.com/alibaba/RedisKeyTrie/common"
)

func (p *KeyIndex) newFetcher() (client.Fetcher, error) {
	if p.SourceHost.IsCluster() {
		return client.NewClusterClient(p.SourceHost)
	}
	rc, err := client.NewRedisClient(p.SourceHost, p.currentDB)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// FetchAllKeyInfo fills type, length and value of every scanned batch and
// passes it on, sleeping between batches to keep under the qps limit.
func (p *KeyIndex) FetchAllKeyInfo(ctx context.Context, allKeys <-chan []*common.Key, fetched chan<- []*common.Key) error {
	fetcher, err := p.fetcherFactory()
	if err != nil {
		return fmt.Errorf("create redis client with host[%v] db[%v] error[%v]", p.SourceHost, p.currentDB, err)
	}
	defer fetcher.Close()

	divisor := int(math.Max(1, float64(p.Qps/1000/p.Parallel)))
	standardTime := int64(p.BatchCount * 3 / divisor)
	for keyInfo := range allKeys {
		begin := time.Now()

		if err := p.FetchKeyInfo(fetcher, keyInfo); err != nil {
			return err
		}

		select {
		case fetched <- keyInfo:
		case <-ctx.Done():
			return ctx.Err()
		}

		interval := time.Since(begin).Milliseconds()
		if standardTime-interval > 0 {
			time.Sleep(time.Duration(standardTime-interval) * time.Millisecond)
		}
	}
	return nil
}

// FetchKeyInfo fetches the attributes the value mode asks for.
func (p *KeyIndex) FetchKeyInfo(fetcher client.Fetcher, keyInfo []*common.Key) error {
	if len(keyInfo) == 0 {
		return nil
	}

	types, err := fetcher.PipeTypeCommand(keyInfo)
	if err != nil {
		return fmt.Errorf("fetch type failed[%v]", err)
	}
	for i, t := range types {
		keyInfo[i].Tp = common.NewKeyType(t)
	}
	if p.ValueMode == common.KeyOutline {
		return nil
	}

	lens, err := fetcher.PipeLenCommand(keyInfo)
	if err != nil {
		return fmt.Errorf("fetch len failed[%v]", err)
	}
	for i, l := range lens {
		keyInfo[i].ItemCount = l
	}
	if p.ValueMode != common.FullValue {
		return nil
	}

	values, err := fetcher.PipeValueCommand(keyInfo)
	if err != nil {
		return fmt.Errorf("fetch value failed[%v]", err)
	}
	for i, v := range values {
		keyInfo[i].Value = v
	}
	return nil
}

// InsertAll moves fetched keys into the index. Keys deleted or retyped while
// being fetched are skipped. It is the only writer during a build.
func (p *KeyIndex) InsertAll(fetched <-chan []*common.Key) {
	for keyInfo := range fetched {
		for _, key := range keyInfo {
			if key.Tp == common.NoneKeyType || key.ItemCount == common.TypeChanged {
				common.Logger.Debugf("skip changed key: %v", key)
				continue
			}
			p.Insert(key)
		}
	}
}
