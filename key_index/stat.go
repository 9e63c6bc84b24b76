package key_index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alibaba/RedisKeyTrie/common"
	"github.com/alibaba/RedisKeyTrie/metric"
)

func (p *KeyIndex) PrintStat(db int32, finished bool) {
	var buf bytes.Buffer

	finishPercent := int64(100)
	if dbKeys := p.sourceDBNums[db]; dbKeys > 0 {
		// scan may return a key more than once
		finishPercent = int64(common.Min(int(p.stat.Scan.Total()*100/dbKeys), 100))
	}
	if !finished && finishPercent == 100 {
		finishPercent = 99
	}

	metricStat := &metric.Metric{
		DateTime:    time.Now().Format("2006-01-02T15:04:05Z"),
		Timestamp:   time.Now().Unix(),
		Db:          db,
		DbKeys:      p.sourceDBNums[db],
		Process:     finishPercent,
		Finished:    finished,
		KeyScan:     p.stat.Scan.Json(),
		KeyFiltered: p.stat.Filtered.Json(),
		KeyIndexed:  p.stat.Indexed.Json(),
		Queries:     p.stat.Queries.Json(),
		Matches:     p.stat.Matches.Json(),
	}

	if p.MetricPrint {
		metricstr, _ := json.Marshal(metricStat)
		common.Logger.Info(string(metricstr))
		return
	}

	fmt.Fprintf(&buf, "db:%d,dbkeys:%d,finish:%d%%,finished:%v\n", db,
		p.sourceDBNums[db], finishPercent, finished)
	fmt.Fprintf(&buf, "KeyScan:%v\n", &p.stat.Scan)
	fmt.Fprintf(&buf, "KeyFiltered:%v\n", &p.stat.Filtered)
	fmt.Fprintf(&buf, "KeyIndexed:%v\n", &p.stat.Indexed)
	common.Logger.Infof("stat:\n%s", buf.String())
}
