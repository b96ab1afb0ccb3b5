package psort

import (
	"go.uber.org/zap"

	"github.com/ygrebnov/psort/forkjoin"
)

// ZapObserver writes progress events to a zap logger.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver returns an observer logging to l under the "psort" name.
func NewZapObserver(l *zap.Logger) *ZapObserver {
	return &ZapObserver{log: l.Named(Namespace)}
}

func (z *ZapObserver) SortStarted(s SortStats) {
	z.log.Debug("sort started",
		zap.Int("n", s.N),
		zap.Int("threads", s.Threads),
		zap.Int("rounds", s.Rounds),
		zap.String("strategy", s.Strategy))
}

func (z *ZapObserver) SegmentStarted(s forkjoin.Segment) {
	z.log.Debug("segment started",
		zap.Int("segment", s.Index),
		zap.Int("lo", s.Lo),
		zap.Int("hi", s.Hi),
		zap.Bool("inline", s.Inline))
}

func (z *ZapObserver) RoundFinished(r RoundStats) {
	fields := []zap.Field{
		zap.Int("round", r.Round),
		zap.Int("segments", r.Segments),
		zap.Int("tasks", len(r.Tasks)),
		zap.Bool("toScratch", r.ToScratch),
		zap.Duration("elapsed", r.Elapsed),
	}
	if r.Err != nil {
		z.log.Error("round failed", append(fields, zap.Error(r.Err))...)
		return
	}
	z.log.Debug("round finished", fields...)
}

func (z *ZapObserver) SortFinished(s SortStats) {
	fields := []zap.Field{
		zap.Int("n", s.N),
		zap.Int("threads", s.Threads),
		zap.Duration("elapsed", s.Elapsed),
	}
	if s.Err != nil {
		z.log.Error("sort failed", append(fields, zap.Error(s.Err))...)
		return
	}
	z.log.Debug("sort finished", fields...)
}
