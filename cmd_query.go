package main

import (
	"fmt"

	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/key_index"

	"github.com/jessevdk/go-flags"
)

func init() {
	parser.AddCommand("get", "Get one key", "Look up one key and print its type and length", &GetCmd{})
	parser.AddCommand("match", "Match keys by pattern",
		"Print every key matching the pattern, '.' matches any one character and '*' any remainder", &MatchCmd{})
	parser.AddCommand("prefix", "Longest key prefix", "Print the longest key that is a prefix of the string", &PrefixCmd{})
	parser.AddCommand("dump", "Dump keys", "Print every key of the db in order", &DumpCmd{})
}

var (
	_ flags.Commander = (*GetCmd)(nil)
	_ flags.Commander = (*MatchCmd)(nil)
	_ flags.Commander = (*PrefixCmd)(nil)
	_ flags.Commander = (*DumpCmd)(nil)
)

type DbOption struct {
	Db int32 `short:"n" long:"dbnum" value-name:"DB" default:"0" description:"logical db to query"`
}

type GetCmd struct {
	DbOption
	Key string `short:"k" long:"key" required:"true" description:"key to look up"`
}

type MatchCmd struct {
	DbOption
	Pattern string `long:"pattern" required:"true" description:"pattern to match"`
}

type PrefixCmd struct {
	DbOption
	Str string `long:"str" required:"true" description:"string whose longest key prefix is looked up"`
}

type DumpCmd struct {
	DbOption
}

// runQuery builds the index, runs query and prints and stores what it returns.
func runQuery(kind, input string, db int32, query func(*key_index.KeyIndex) []*common.Key) error {
	_, cancel, index, result, err := prepare()
	if err != nil {
		return err
	}
	defer cancel()
	defer result.Close()

	keys := query(index)
	for _, key := range keys {
		fmt.Println(formatKey(key))
	}
	common.Logger.Infof("%s query[%v] on db[%v] returns %d keys", kind, input, db, len(keys))
	return result.WriteAll(kind, input, db, keys)
}

func formatKey(key *common.Key) string {
	if key.Value != nil {
		return fmt.Sprintf("%s\t%s\t%d\t%s", key.Key, key.Tp.Name, key.ItemCount, key.Value)
	}
	return fmt.Sprintf("%s\t%s\t%d", key.Key, key.Tp.Name, key.ItemCount)
}

func single(key *common.Key, ok bool) []*common.Key {
	if !ok {
		return nil
	}
	return []*common.Key{key}
}

func (c *GetCmd) Execute(args []string) error {
	return runQuery("get", c.Key, c.Db, func(index *key_index.KeyIndex) []*common.Key {
		return single(index.Get(c.Db, c.Key))
	})
}

func (c *MatchCmd) Execute(args []string) error {
	return runQuery("match", c.Pattern, c.Db, func(index *key_index.KeyIndex) []*common.Key {
		return index.Match(c.Db, c.Pattern)
	})
}

func (c *PrefixCmd) Execute(args []string) error {
	return runQuery("prefix", c.Str, c.Db, func(index *key_index.KeyIndex) []*common.Key {
		return single(index.LongestPrefix(c.Db, c.Str))
	})
}

func (c *DumpCmd) Execute(args []string) error {
	return runQuery("dump", "", c.Db, func(index *key_index.KeyIndex) []*common.Key {
		return index.Dump(c.Db)
	})
}
