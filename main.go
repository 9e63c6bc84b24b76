package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alibaba/RedisKeyTrie/client"
	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/configure"
	"github.com/alibaba/RedisKeyTrie/key_index"
	"github.com/alibaba/RedisKeyTrie/store"

	"github.com/jessevdk/go-flags"
)

var VERSION = "$"

var parser = flags.NewParser(&conf.Opts, flags.Default)

func init() {
	parser.SubcommandsOptional = true
	parser.CommandHandler = handleCommand
}

func main() {
	_, err := parser.Parse()
	if conf.Opts.Version {
		fmt.Println(VERSION)
		os.Exit(0)
	}

	// errors are already printed to stderr by the parser
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if parser.Active == nil {
		fmt.Fprintf(os.Stderr, "no command specified, expect one of get/match/prefix/dump/serve\n")
		os.Exit(1)
	}
}

func handleCommand(cmd flags.Commander, args []string) error {
	if conf.Opts.Version {
		return nil
	}
	if conf.Opts.SourceAddr == "" {
		return fmt.Errorf("-s, --source not specified")
	}
	if len(args) != 0 {
		return fmt.Errorf("unexpected args %+v", args)
	}

	var err error
	common.Logger, err = common.InitLog(conf.Opts.LogFile, conf.Opts.LogLevel)
	if err != nil {
		return fmt.Errorf("init log failed: %v", err)
	}
	common.Logger.Info("init log success")
	defer common.Logger.Flush()

	if err = checkOptions(); err != nil {
		return common.Logger.Error(err)
	}
	if err = cmd.Execute(args); err != nil {
		return common.Logger.Error(err)
	}
	return nil
}

func checkOptions() error {
	if conf.Opts.BatchCount < 1 || conf.Opts.BatchCount > 10000 {
		return fmt.Errorf("invalid option batchcount %d, expect int 1<=batchcount<=10000", conf.Opts.BatchCount)
	}
	if conf.Opts.Parallel < 1 || conf.Opts.Parallel > 100 {
		return fmt.Errorf("invalid option parallel %d, expect 1<=parallel<=100", conf.Opts.Parallel)
	}
	if conf.Opts.Qps < 1 || conf.Opts.Qps > 5000000 {
		return fmt.Errorf("invalid option qps %d, expect 1<=qps<=5000000", conf.Opts.Qps)
	}
	if conf.Opts.SourceAuthType != "auth" && conf.Opts.SourceAuthType != "adminauth" {
		return fmt.Errorf("invalid sourceauthtype %s, expect auth/adminauth", conf.Opts.SourceAuthType)
	}
	if conf.Opts.ValueMode < common.KeyOutline || conf.Opts.ValueMode > common.FullValue {
		return fmt.Errorf("invalid value mode %d, expect 1<=valuemode<=3", conf.Opts.ValueMode)
	}
	if conf.Opts.SourceDBType < common.TypeDB || conf.Opts.SourceDBType > common.TypeTencentProxy {
		return fmt.Errorf("invalid sourcedbtype %d, expect 0<=sourcedbtype<=3", conf.Opts.SourceDBType)
	}
	return nil
}

func newParameter() (key_index.Parameter, error) {
	addr := strings.Split(conf.Opts.SourceAddr, common.Splitter)
	if conf.Opts.SourceDBType == common.TypeCluster {
		var err error
		addr, err = client.HandleAddress(conf.Opts.SourceAddr, conf.Opts.SourcePassword, conf.Opts.SourceAuthType)
		if err != nil {
			return key_index.Parameter{}, err
		}
	}

	dbFilterList, err := common.FilterDBList(conf.Opts.SourceDBFilterList)
	if err != nil {
		return key_index.Parameter{}, err
	}

	filter, err := common.NewKeyFilter(conf.Opts.FilterList)
	if err != nil {
		return key_index.Parameter{}, err
	}
	common.Logger.Infof("filter list: %v", filter)

	return key_index.Parameter{
		SourceHost: client.RedisHost{
			Addr:         addr,
			Password:     conf.Opts.SourcePassword,
			TimeoutMs:    conf.Opts.TimeoutMs,
			Role:         "source",
			Authtype:     conf.Opts.SourceAuthType,
			DBType:       conf.Opts.SourceDBType,
			DBFilterList: dbFilterList,
		},
		BatchCount:  conf.Opts.BatchCount,
		Parallel:    conf.Opts.Parallel,
		Qps:         conf.Opts.Qps,
		ValueMode:   conf.Opts.ValueMode,
		Filter:      filter,
		MetricPrint: conf.Opts.MetricPrint,
	}, nil
}

// prepare builds the index and opens the result store. The returned context
// is canceled on SIGINT or SIGTERM.
func prepare() (context.Context, context.CancelFunc, *key_index.KeyIndex, *store.Store, error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	param, err := newParameter()
	if err != nil {
		cancel()
		return nil, nil, nil, nil, err
	}

	index := key_index.NewKeyIndex(param)
	if err = index.Build(ctx); err != nil {
		cancel()
		return nil, nil, nil, nil, err
	}

	result, err := store.Open(conf.Opts.ResultDriver, conf.Opts.ResultDB, conf.Opts.ResultFile)
	if err != nil {
		cancel()
		return nil, nil, nil, nil, err
	}
	return ctx, cancel, index, result, nil
}
