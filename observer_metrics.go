package psort

import (
	"github.com/ygrebnov/psort/forkjoin"
	"github.com/ygrebnov/psort/metrics"
)

// Instrument names recorded by MetricsObserver.
const (
	MetricSortsTotal       = "psort_sorts_total"
	MetricSortErrorsTotal  = "psort_sort_errors_total"
	MetricSortsInflight    = "psort_sorts_inflight"
	MetricElementsTotal    = "psort_elements_sorted_total"
	MetricMergeRoundsTotal = "psort_merge_rounds_total"
	MetricMergeTasksTotal  = "psort_merge_tasks_total"
	MetricSegmentsTotal    = "psort_segments_total"
	MetricSortDuration     = "psort_sort_duration_seconds"
	MetricRoundDuration    = "psort_round_duration_seconds"
)

// MetricsObserver records progress events as metrics instruments.
type MetricsObserver struct {
	sorts     metrics.Counter
	failures  metrics.Counter
	inflight  metrics.UpDownCounter
	elements  metrics.Counter
	rounds    metrics.Counter
	tasks     metrics.Counter
	segments  metrics.Counter
	sortTime  metrics.Histogram
	roundTime metrics.Histogram
}

// NewMetricsObserver creates the instruments in p.
func NewMetricsObserver(p metrics.Provider) *MetricsObserver {
	return &MetricsObserver{
		sorts:     p.Counter(MetricSortsTotal, metrics.WithDescription("sort calls started"), metrics.WithUnit("1")),
		failures:  p.Counter(MetricSortErrorsTotal, metrics.WithDescription("sort calls that returned an error"), metrics.WithUnit("1")),
		inflight:  p.UpDownCounter(MetricSortsInflight, metrics.WithDescription("sort calls in progress"), metrics.WithUnit("1")),
		elements:  p.Counter(MetricElementsTotal, metrics.WithDescription("elements passed to successful sorts"), metrics.WithUnit("1")),
		rounds:    p.Counter(MetricMergeRoundsTotal, metrics.WithDescription("merge rounds completed"), metrics.WithUnit("1")),
		tasks:     p.Counter(MetricMergeTasksTotal, metrics.WithDescription("merge tasks completed"), metrics.WithUnit("1")),
		segments:  p.Counter(MetricSegmentsTotal, metrics.WithDescription("fork-join segments started"), metrics.WithUnit("1")),
		sortTime:  p.Histogram(MetricSortDuration, metrics.WithDescription("sort wall time"), metrics.WithUnit("seconds")),
		roundTime: p.Histogram(MetricRoundDuration, metrics.WithDescription("local sort and merge round wall time"), metrics.WithUnit("seconds")),
	}
}

func (m *MetricsObserver) SortStarted(SortStats) {
	m.sorts.Add(1)
	m.inflight.Add(1)
}

func (m *MetricsObserver) SegmentStarted(forkjoin.Segment) { m.segments.Add(1) }

func (m *MetricsObserver) RoundFinished(r RoundStats) {
	m.roundTime.Record(r.Elapsed.Seconds())
	if r.Round == 0 || r.Err != nil {
		return
	}
	m.rounds.Add(1)
	m.tasks.Add(int64(len(r.Tasks)))
}

func (m *MetricsObserver) SortFinished(s SortStats) {
	m.inflight.Add(-1)
	m.sortTime.Record(s.Elapsed.Seconds())
	if s.Err != nil {
		m.failures.Add(1)
		return
	}
	m.elements.Add(int64(s.N))
}
