package main

import (
	"github.com/alibaba/RedisKeyTrie/server"

	"github.com/jessevdk/go-flags"
)

func init() {
	parser.AddCommand("serve", "Serve queries over http",
		"Build the index once, then answer get/match/prefix/dump queries over http until interrupted", &ServeCmd{})
}

var _ flags.Commander = (*ServeCmd)(nil)

type ServeCmd struct {
	Http string `long:"http" value-name:"ADDR" default:":8080" description:"address the http server listens on"`
}

func (c *ServeCmd) Execute(args []string) error {
	ctx, cancel, index, result, err := prepare()
	if err != nil {
		return err
	}
	defer cancel()
	defer result.Close()

	return server.NewServer(c.Http, index, result).Start(ctx)
}
