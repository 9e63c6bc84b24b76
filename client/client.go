package client

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"

	"github.com/garyburd/redigo/redis"
)

type RedisHost struct {
	Addr         []string
	Password     string
	TimeoutMs    uint64
	Role         string // "source"
	Authtype     string // "auth" or "adminauth"
	DBType       int
	DBFilterList map[int]struct{} // nil means all dbs
}

func (p RedisHost) String() string {
	return fmt.Sprintf("%s redis addr: %s", p.Role, p.Addr)
}

func (p RedisHost) IsCluster() bool {
	return p.DBType == common.TypeCluster
}

// Fetcher reads key attributes in batches. RedisClient serves single nodes and
// proxies, ClusterClient serves redis cluster.
type Fetcher interface {
	PipeTypeCommand(keyInfo []*common.Key) ([]string, error)
	PipeLenCommand(keyInfo []*common.Key) ([]int64, error)
	PipeValueCommand(keyInfo []*common.Key) ([][]byte, error)
	Close()
}

type RedisClient struct {
	redisHost RedisHost
	db        int32
	conn      redis.Conn
}

func (p RedisClient) String() string {
	return p.redisHost.String()
}

func NewRedisClient(redisHost RedisHost, db int32) (RedisClient, error) {
	rc := RedisClient{
		redisHost: redisHost,
		db:        db,
	}

	// send ping command first
	ret, err := rc.Do("ping")
	if err == nil && ret.(string) != "PONG" {
		return RedisClient{}, fmt.Errorf("ping return invaild[%v]", ret)
	}
	return rc, err
}

func (p *RedisClient) CheckHandleNetError(err error) bool {
	if err == io.EOF { // peer closed
		if p.conn != nil {
			p.conn.Close()
			p.conn = nil
			// retry 1 second later
			time.Sleep(time.Second)
		}
		return true
	} else if _, ok := err.(net.Error); ok {
		if p.conn != nil {
			p.conn.Close()
			p.conn = nil
			time.Sleep(time.Second)
		}
		return true
	}
	return false
}

func (p *RedisClient) Connect() error {
	var err error
	if p.conn == nil {
		timeout := time.Millisecond * time.Duration(p.redisHost.TimeoutMs)
		p.conn, err = redis.Dial("tcp", p.redisHost.Addr[0],
			redis.DialConnectTimeout(timeout),
			redis.DialReadTimeout(timeout),
			redis.DialWriteTimeout(timeout))
		if err != nil {
			return err
		}
		if len(p.redisHost.Password) != 0 {
			_, err = p.conn.Do(p.redisHost.Authtype, p.redisHost.Password)
			if err != nil {
				return err
			}
		}
		_, err = p.conn.Do("select", p.db)
		if err != nil {
			return err
		}
	} // p.conn == nil
	return nil
}

func (p *RedisClient) Do(commandName string, args ...interface{}) (interface{}, error) {
	var err error
	var result interface{}
	for tryCount := 0; tryCount <= common.MaxRetryCount; tryCount++ {
		if p.conn == nil {
			err = p.Connect()
			if err != nil {
				if p.CheckHandleNetError(err) {
					continue
				}
				return nil, err
			}
		}

		result, err = p.conn.Do(commandName, args...)
		if err != nil {
			if p.CheckHandleNetError(err) {
				continue
			}
			return nil, err
		}
		return result, nil
	}
	return nil, err
}

func (p *RedisClient) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

type command struct {
	name string
	args []interface{}
}

/*
 * pipeline sends all commands, flushes once and receives the replies in order.
 * Error replies are kept in place as redis.Error so one bad key doesn't fail
 * the batch. The whole batch is resent after a network error.
 */
func (p *RedisClient) pipeline(commands []command) ([]interface{}, error) {
	var err error
	result := make([]interface{}, len(commands))
begin:
	for tryCount := 0; tryCount <= common.MaxRetryCount; tryCount++ {
		if p.conn == nil {
			err = p.Connect()
			if err != nil {
				if p.CheckHandleNetError(err) {
					continue
				}
				return nil, err
			}
		}

		for _, cmd := range commands {
			err = p.conn.Send(cmd.name, cmd.args...)
			if err != nil {
				if p.CheckHandleNetError(err) {
					continue begin
				}
				return nil, err
			}
		}
		err = p.conn.Flush()
		if err != nil {
			if p.CheckHandleNetError(err) {
				continue
			}
			return nil, err
		}

		for i := 0; i < len(commands); i++ {
			var reply interface{}
			reply, err = p.conn.Receive()
			if err != nil {
				if _, ok := err.(redis.Error); ok {
					result[i] = err
					continue
				}
				if p.CheckHandleNetError(err) {
					continue begin
				}
				return nil, err
			}
			result[i] = reply
		}
		return result, nil
	}
	return nil, err
}

func (p *RedisClient) PipeTypeCommand(keyInfo []*common.Key) ([]string, error) {
	commands := make([]command, len(keyInfo))
	for i, key := range keyInfo {
		commands[i] = command{name: "type", args: []interface{}{key.Key}}
	}
	replies, err := p.pipeline(commands)
	if err != nil {
		return nil, err
	}
	return typeReplies(replies)
}

func (p *RedisClient) PipeLenCommand(keyInfo []*common.Key) ([]int64, error) {
	commands, index := lenCommands(keyInfo)
	replies, err := p.pipeline(commands)
	if err != nil {
		return nil, err
	}
	return lenReplies(keyInfo, index, replies)
}

func (p *RedisClient) PipeValueCommand(keyInfo []*common.Key) ([][]byte, error) {
	commands, index := valueCommands(keyInfo)
	replies, err := p.pipeline(commands)
	if err != nil {
		return nil, err
	}
	return valueReplies(keyInfo, index, replies)
}

func typeReplies(replies []interface{}) ([]string, error) {
	result := make([]string, len(replies))
	for i, reply := range replies {
		switch v := reply.(type) {
		case string:
			result[i] = v
		case []byte:
			result[i] = string(v)
		case error:
			return nil, fmt.Errorf("fetch type failed[%v]", v)
		default:
			return nil, fmt.Errorf("unexpected type reply[%v]", reply)
		}
	}
	return result, nil
}

// lenCommands skips keys of unknown type, index maps each command back to its key.
func lenCommands(keyInfo []*common.Key) ([]command, []int) {
	commands := make([]command, 0, len(keyInfo))
	index := make([]int, 0, len(keyInfo))
	for i, key := range keyInfo {
		if key.Tp == nil || key.Tp == common.EndKeyType {
			continue
		}
		commands = append(commands, command{name: key.Tp.FetchLenCommand, args: []interface{}{key.Key}})
		index = append(index, i)
	}
	return commands, index
}

func lenReplies(keyInfo []*common.Key, index []int, replies []interface{}) ([]int64, error) {
	result := make([]int64, len(keyInfo))
	for i, reply := range replies {
		switch v := reply.(type) {
		case int64:
			result[index[i]] = v
		case error:
			// type changed after TYPE was fetched
			if strings.HasPrefix(v.Error(), "WRONGTYPE") {
				result[index[i]] = common.TypeChanged
				continue
			}
			return nil, fmt.Errorf("fetch len of key[%s] failed[%v]", keyInfo[index[i]].Key, v)
		default:
			return nil, fmt.Errorf("unexpected len reply[%v] of key[%s]", reply, keyInfo[index[i]].Key)
		}
	}
	return result, nil
}

// valueCommands only fetches string keys, other types keep their length as value.
func valueCommands(keyInfo []*common.Key) ([]command, []int) {
	commands := make([]command, 0, len(keyInfo))
	index := make([]int, 0, len(keyInfo))
	for i, key := range keyInfo {
		if key.Tp != common.StringKeyType {
			continue
		}
		commands = append(commands, command{name: "get", args: []interface{}{key.Key}})
		index = append(index, i)
	}
	return commands, index
}

func valueReplies(keyInfo []*common.Key, index []int, replies []interface{}) ([][]byte, error) {
	result := make([][]byte, len(keyInfo))
	for i, reply := range replies {
		switch v := reply.(type) {
		case nil:
			// expired in between
		case []byte:
			result[index[i]] = v
		case string:
			result[index[i]] = []byte(v)
		case error:
			if strings.HasPrefix(v.Error(), "WRONGTYPE") {
				continue
			}
			return nil, fmt.Errorf("fetch value of key[%s] failed[%v]", keyInfo[index[i]].Key, v)
		default:
			return nil, fmt.Errorf("unexpected value reply[%v] of key[%s]", reply, keyInfo[index[i]].Key)
		}
	}
	return result, nil
}
