package key_index

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alibaba/RedisKeyTrie/client"
	"github.com/alibaba/RedisKeyTrie/common"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// ScanFromSourceRedis scans every physical node of the current db concurrently
// and sends the keys passing the filter to allKeys, which is closed on return.
// All nodes together issue at most Qps scan commands per second.
func (p *KeyIndex) ScanFromSourceRedis(ctx context.Context, allKeys chan<- []*common.Key) error {
	defer close(allKeys)

	qos := common.StartQoS(p.Qps)
	defer qos.Close()

	g, ctx := errgroup.WithContext(ctx)
	for idx := 0; idx < len(p.sourcePhysicalDBList); idx++ {
		index := idx
		g.Go(func() error {
			return p.scanOneNode(ctx, qos, index, allKeys)
		})
	}
	return g.Wait()
}

func (p *KeyIndex) newScanClient(index int) (client.RedisClient, error) {
	if !p.SourceHost.IsCluster() {
		return client.NewRedisClient(p.SourceHost, p.currentDB)
	}

	var singleHost client.RedisHost
	if err := copier.Copy(&singleHost, &p.SourceHost); err != nil {
		return client.RedisClient{}, fmt.Errorf("copy host[%v] failed[%v]", p.SourceHost, err)
	}
	// scan a single node of the cluster
	singleHost.Addr = []string{singleHost.Addr[index]}
	singleHost.DBType = common.TypeDB
	return client.NewRedisClient(singleHost, p.currentDB)
}

func (p *KeyIndex) scanOneNode(ctx context.Context, qos *common.Qos, index int, allKeys chan<- []*common.Key) error {
	sourceClient, err := p.newScanClient(index)
	if err != nil {
		return fmt.Errorf("create redis client with host[%v] db[%v] error[%v]", p.SourceHost, p.currentDB, err)
	}
	defer sourceClient.Close()

	common.Logger.Infof("build connection[%v]", sourceClient.String())

	cursor := 0
	for {
		if err := qos.Wait(ctx); err != nil {
			return err
		}

		var reply interface{}
		switch p.SourceHost.DBType {
		case common.TypeDB, common.TypeCluster:
			reply, err = sourceClient.Do("scan", cursor, "count", p.BatchCount)
		case common.TypeAliyunProxy:
			reply, err = sourceClient.Do("iscan", index, cursor, "count", p.BatchCount)
		case common.TypeTencentProxy:
			reply, err = sourceClient.Do("scan", cursor, "count", p.BatchCount, p.sourcePhysicalDBList[index])
		default:
			return fmt.Errorf("unknown redis db type[%v]", p.SourceHost.DBType)
		}
		if err != nil {
			return fmt.Errorf("scan %d count %d failed[%v]", cursor, p.BatchCount, err)
		}

		var keysInfo []*common.Key
		cursor, keysInfo, err = p.parseScanReply(reply)
		if err != nil {
			return err
		}

		select {
		case allKeys <- keysInfo:
		case <-ctx.Done():
			return ctx.Err()
		}

		if cursor == 0 {
			return nil
		}
	}
}

// parseScanReply splits a scan reply into the next cursor and the keys that pass the filter.
func (p *KeyIndex) parseScanReply(reply interface{}) (int, []*common.Key, error) {
	replyList, ok := reply.([]interface{})
	if !ok || len(replyList) != 2 {
		return 0, nil, fmt.Errorf("scan failed, result: %+v", reply)
	}

	bytes, ok := replyList[0].([]byte)
	if !ok {
		return 0, nil, fmt.Errorf("scan failed, result: %+v", reply)
	}
	cursor, err := strconv.Atoi(string(bytes))
	if err != nil {
		return 0, nil, fmt.Errorf("parse cursor[%s] failed[%v]", bytes, err)
	}

	keylist, ok := replyList[1].([]interface{})
	if !ok {
		return 0, nil, fmt.Errorf("scan failed, result: %+v", reply)
	}
	keysInfo := make([]*common.Key, 0, len(keylist))
	for _, value := range keylist {
		bytes, ok = value.([]byte)
		if !ok {
			return 0, nil, fmt.Errorf("scan failed, result: %+v", reply)
		}

		if !p.Filter.Pass(bytes) {
			continue
		}
		keysInfo = append(keysInfo, &common.Key{
			Key: bytes,
			Db:  p.currentDB,
			Tp:  common.EndKeyType,
		})
	}
	p.stat.Scan.Inc(len(keylist))
	p.stat.Filtered.Inc(len(keylist) - len(keysInfo))
	return cursor, keysInfo, nil
}
