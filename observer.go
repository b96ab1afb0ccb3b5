package psort

import (
	"time"

	"github.com/ygrebnov/psort/forkjoin"
)

// SortStats describes one SortFunc call. Elapsed and Err are only set when the
// sort has finished.
type SortStats struct {
	N        int
	Threads  int
	Rounds   int
	Strategy string
	Elapsed  time.Duration
	Err      error
}

// RoundStats describes one finished phase of a sort. Round 0 is the local
// sort; merge rounds are numbered from 1.
type RoundStats struct {
	Round int
	// Segments is the number of sorted runs the round started from.
	Segments int
	// Tasks lists the merges of a merge round; it is nil for the local sort.
	Tasks []MergeTask
	// ToScratch is true when the round wrote into the scratch buffer.
	ToScratch bool
	Elapsed   time.Duration
	Err       error
}

// Observer receives progress events from sorts and merges.
// SegmentStarted is called from many goroutines at once; all methods must be
// safe for concurrent use. Embed NopObserver to implement only some methods.
type Observer interface {
	SortStarted(SortStats)
	SegmentStarted(forkjoin.Segment)
	RoundFinished(RoundStats)
	SortFinished(SortStats)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) SortStarted(SortStats)           {}
func (NopObserver) SegmentStarted(forkjoin.Segment) {}
func (NopObserver) RoundFinished(RoundStats)        {}
func (NopObserver) SortFinished(SortStats)          {}

// Observers returns an Observer that forwards every event to each of obs in
// order. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	list := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		switch o.(type) {
		case nil, NopObserver:
			continue
		}
		list = append(list, o)
	}
	switch len(list) {
	case 0:
		return NopObserver{}
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) SortStarted(s SortStats) {
	for _, o := range m {
		o.SortStarted(s)
	}
}

func (m multiObserver) SegmentStarted(s forkjoin.Segment) {
	for _, o := range m {
		o.SegmentStarted(s)
	}
}

func (m multiObserver) RoundFinished(r RoundStats) {
	for _, o := range m {
		o.RoundFinished(r)
	}
}

func (m multiObserver) SortFinished(s SortStats) {
	for _, o := range m {
		o.SortFinished(s)
	}
}

// segmentHook returns the fork-join options that report segments to o.
// A NopObserver installs no hook at all.
func segmentHook(o Observer) []forkjoin.Option {
	if _, ok := o.(NopObserver); ok {
		return nil
	}
	return []forkjoin.Option{forkjoin.WithHook(o.SegmentStarted)}
}
