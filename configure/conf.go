package conf

var Opts struct {
	SourceAddr         string `short:"s" long:"source" value-name:"SOURCE" description:"Set host:port of source redis. If db type is cluster, split by semicolon(;'), e.g., 10.1.1.1:1000;10.2.2.2:2000;10.3.3.3:3000. Only need to give a role in the master or slave."`
	SourcePassword     string `short:"p" long:"sourcepassword" value-name:"Password" description:"Set source redis password"`
	SourceAuthType     string `long:"sourceauthtype" value-name:"AUTH-TYPE" default:"auth" description:"useless for opensource redis, valid value:auth/adminauth"`
	SourceDBType       int    `long:"sourcedbtype" default:"0" description:"0: db, 1: cluster 2: aliyun proxy, 3: tencent proxy"`
	SourceDBFilterList string `long:"sourcedbfilterlist" default:"-1" description:"db white list that need to be indexed, -1 means fetch all, \"0;5;15\" means fetch db 0, 5, and 15"`
	TimeoutMs          uint64 `long:"timeout" value-name:"MS" default:"0" description:"connect/read/write timeout of source redis in milliseconds, 0 means no timeout"`
	FilterList         string `short:"f" long:"filterlist" value-name:"FILTER" default:"" description:"if the filter list isn't empty, only keys in list will be indexed. The input should be split by '|'. The end of the string is followed by a * to indicate a prefix match, otherwise it is a full match. e.g.: 'abc*|efg|m*' matches 'abc', 'abc1', 'efg', 'm', 'mxyz', but 'efgh', 'p' aren't'"`
	ValueMode          int    `short:"m" long:"valuemode" default:"2" description:"value kept in the index, 1: key type only, 2: key type and value length, 3: key type, value length and full value of string keys"`
	Qps                int    `short:"q" long:"qps" default:"15000" description:"max batch qps limit: e.g., if qps is 10, key_trie fetches 10 * $batch keys every second"`
	BatchCount         int    `long:"batchcount" value-name:"COUNT" default:"256" description:"the count of keys per scan/fetch batch, valid value [1, 10000]"`
	Parallel           int    `long:"parallel" value-name:"COUNT" default:"5" description:"concurrent goroutine number for fetching, valid value [1, 100]"`
	LogFile            string `long:"log" value-name:"FILE" description:"log file, if not specified, log is put to console"`
	LogLevel           string `long:"loglevel" value-name:"LEVEL" default:"info" description:"trace/debug/info/warn/error/critical/off"`
	ResultDriver       string `long:"resultdriver" value-name:"DRIVER" default:"sqlite3" description:"driver of the result db, sqlite3 or mysql"`
	ResultDB           string `short:"d" long:"db" value-name:"DSN" default:"result.db" description:"sqlite3 db file or mysql dsn to store query results. A sqlite3 file is removed and created again if exists."`
	ResultFile         string `long:"result" value-name:"FILE" description:"store all query results, format is 'db\tquery-kind\tkey\ttype'"`
	MetricPrint        bool   `long:"metric" value-name:"BOOL" description:"print metric in log"`
	Version            bool   `short:"v" long:"version"`
}
