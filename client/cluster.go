package client

import (
	"fmt"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"

	redigoCluster "github.com/vinllen/redis-go-cluster"
)

const (
	clusterKeepAlive = 16
	clusterAliveTime = 60 * time.Second
	clusterTimeout   = 5 * time.Second
)

// ClusterClient fetches key attributes from a redis cluster, routing every
// command of a batch to the node that owns the key.
type ClusterClient struct {
	redisHost RedisHost
	cluster   *redigoCluster.Cluster
}

func NewClusterClient(redisHost RedisHost) (*ClusterClient, error) {
	timeout := clusterTimeout
	if redisHost.TimeoutMs != 0 {
		timeout = time.Millisecond * time.Duration(redisHost.TimeoutMs)
	}

	cluster, err := redigoCluster.NewCluster(&redigoCluster.Options{
		StartNodes:   redisHost.Addr,
		ConnTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		KeepAlive:    clusterKeepAlive,
		AliveTime:    clusterAliveTime,
		Password:     redisHost.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create cluster client with host[%v] failed[%v]", redisHost, err)
	}
	return &ClusterClient{redisHost: redisHost, cluster: cluster}, nil
}

func (p *ClusterClient) String() string {
	return p.redisHost.String()
}

func (p *ClusterClient) Close() {
	if p.cluster != nil {
		p.cluster.Close()
		p.cluster = nil
	}
}

func (p *ClusterClient) batch(commands []command) ([]interface{}, error) {
	if len(commands) == 0 {
		return nil, nil
	}

	var err error
	for tryCount := 0; tryCount <= common.MaxRetryCount; tryCount++ {
		batch := p.cluster.NewBatch()
		for _, cmd := range commands {
			if err = batch.Put(cmd.name, cmd.args...); err != nil {
				return nil, fmt.Errorf("put command[%v] to batch failed[%v]", cmd.name, err)
			}
		}

		var replies []interface{}
		if replies, err = p.cluster.RunBatch(batch); err == nil {
			return replies, nil
		}
		common.Logger.Warnf("run batch on %v failed[%v], retry %d", p.redisHost, err, tryCount)
		time.Sleep(time.Second)
	}
	return nil, err
}

func (p *ClusterClient) PipeTypeCommand(keyInfo []*common.Key) ([]string, error) {
	commands := make([]command, len(keyInfo))
	for i, key := range keyInfo {
		commands[i] = command{name: "type", args: []interface{}{key.Key}}
	}
	replies, err := p.batch(commands)
	if err != nil {
		return nil, err
	}
	return typeReplies(replies)
}

func (p *ClusterClient) PipeLenCommand(keyInfo []*common.Key) ([]int64, error) {
	commands, index := lenCommands(keyInfo)
	replies, err := p.batch(commands)
	if err != nil {
		return nil, err
	}
	return lenReplies(keyInfo, index, replies)
}

func (p *ClusterClient) PipeValueCommand(keyInfo []*common.Key) ([][]byte, error) {
	commands, index := valueCommands(keyInfo)
	replies, err := p.batch(commands)
	if err != nil {
		return nil, err
	}
	return valueReplies(keyInfo, index, replies)
}
