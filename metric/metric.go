package metric

type Metric struct {
	DateTime    string       `json:"datetime"`
	Timestamp   int64        `json:"timestamp"`
	Db          int32        `json:"db"`
	DbKeys      int64        `json:"dbkeys"`
	Process     int64        `json:"process"`
	Finished    bool         `json:"has_finished"`
	KeyScan     *CounterStat `json:"key_scan"`
	KeyFiltered *CounterStat `json:"key_filtered"`
	KeyIndexed  *CounterStat `json:"key_indexed"`
	Queries     *CounterStat `json:"queries"`
	Matches     *CounterStat `json:"matches"`
}
