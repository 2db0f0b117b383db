package searcher

import "time"

// Metric captures one solve's diagnostic counters. The counters never affect
// the returned solution; pruning and memoization must only ever move them.
type Metric struct {
	Duration            time.Duration
	RecursiveCalls      int
	FeasibilityPrunings int
	UpperBoundPrunings  int
	MemoHits            int
	MemoMisses          int
	MemoSize            int
}

// TotalPrunings is the number of branches skipped for any reason.
func (m Metric) TotalPrunings() int {
	return m.FeasibilityPrunings + m.UpperBoundPrunings
}

// MemoHitRate is the fraction of memo lookups that hit, or 0 before any
// lookup happened.
func (m Metric) MemoHitRate() float64 {
	lookups := m.MemoHits + m.MemoMisses
	if lookups == 0 {
		return 0
	}
	return float64(m.MemoHits) / float64(lookups)
}

type Collector interface {
	Start()
	AddCall()
	AddFeasibilityPruning()
	AddUpperBoundPruning()
	AddMemoHit()
	AddMemoMiss()
	SetMemoSize(size int)
	Complete() Metric
}

// collector records counters for a single solve. One solve is a single
// goroutine's recursive descent, so plain counters suffice.
type collector struct {
	startTime           time.Time
	calls               int
	feasibilityPrunings int
	upperBoundPrunings  int
	memoHits            int
	memoMisses          int
	memoSize            int
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	*c = collector{startTime: time.Now()}
}

func (c *collector) AddCall()               { c.calls++ }
func (c *collector) AddFeasibilityPruning() { c.feasibilityPrunings++ }
func (c *collector) AddUpperBoundPruning()  { c.upperBoundPrunings++ }
func (c *collector) AddMemoHit()            { c.memoHits++ }
func (c *collector) AddMemoMiss()           { c.memoMisses++ }
func (c *collector) SetMemoSize(size int)   { c.memoSize = size }

func (c *collector) Complete() Metric {
	return Metric{
		Duration:            time.Since(c.startTime),
		RecursiveCalls:      c.calls,
		FeasibilityPrunings: c.feasibilityPrunings,
		UpperBoundPrunings:  c.upperBoundPrunings,
		MemoHits:            c.memoHits,
		MemoMisses:          c.memoMisses,
		MemoSize:            c.memoSize,
	}
}

type noopCollector struct{}

func NewNoopCollector() Collector {
	return &noopCollector{}
}

func (noopCollector) Start()                 {}
func (noopCollector) AddCall()               {}
func (noopCollector) AddFeasibilityPruning() {}
func (noopCollector) AddUpperBoundPruning()  {}
func (noopCollector) AddMemoHit()            {}
func (noopCollector) AddMemoMiss()           {}
func (noopCollector) SetMemoSize(size int)   {}
func (noopCollector) Complete() Metric       { return Metric{} }
