package metric

// Stat counts the keys flowing through one index build and the queries served.
type Stat struct {
	Scan     AtomicSpeedCounter // keys returned by scan
	Filtered AtomicSpeedCounter // keys dropped by the filter list
	Indexed  AtomicSpeedCounter // keys inserted into the trie
	Queries  AtomicSpeedCounter
	Matches  AtomicSpeedCounter // keys returned by queries
}

func (p *Stat) Rotate() {
	p.Scan.Rotate()
	p.Filtered.Rotate()
	p.Indexed.Rotate()
	p.Queries.Rotate()
	p.Matches.Rotate()
}

// Reset clears the build counters, query counters survive a rebuild.
func (p *Stat) Reset() {
	p.Scan.Reset()
	p.Filtered.Reset()
	p.Indexed.Reset()
}
