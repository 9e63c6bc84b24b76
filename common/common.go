package common

const (
	MaxRetryCount     = 20 // client attribute
	StatRollFrequency = 2  // client attribute

	Splitter       = ";"
	FilterSplitter = "|"

	TypeChanged int64 = -1 // marks that type changed between TYPE and the value fetch

	TypeMaster = "master"
	TypeSlave  = "slave"
)

// db types
const (
	TypeDB           = 0 // db
	TypeCluster      = 1
	TypeAliyunProxy  = 2 // aliyun proxy
	TypeTencentProxy = 3 // tencent cloud proxy
)

// value modes
const (
	KeyOutline  = 1 // type only
	ValueLength = 2 // type and item count
	FullValue   = 3 // type, item count and string value
)
