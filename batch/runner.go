// Package batch 把 session 分片到多个 goroutine 上并发生成候选。
//
// Generator 与离线表在一个批次内只读，worker 之间无需加锁；
// 失败的 session 要么中止整个批次，要么（SkipFailed）记日志后跳过，不做重试。
package batch

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xiaoye-hua/otto-kaggle/candidate"
	"github.com/xiaoye-hua/otto-kaggle/core"
)

// Runner 是批处理执行器。
type Runner struct {
	Generator *candidate.Generator

	// Workers 最大并发数，<= 0 时使用 GOMAXPROCS
	Workers int

	// SkipFailed 为 true 时失败的 session 记 warn 日志，结果位置为 nil；
	// 否则第一个错误会取消整个批次
	SkipFailed bool

	Logger zerolog.Logger
}

// Stats 是一次批处理的统计。
type Stats struct {
	Total   int
	Failed  int
	Skipped []int64 // 被跳过的 session ID
}

// RunClicks 为每个 session 生成点击候选，结果与 sessions 按下标对齐。
func (r *Runner) RunClicks(ctx context.Context, sessions []*core.Session) ([]*candidate.ClickResult, Stats, error) {
	out := make([]*candidate.ClickResult, len(sessions))
	stats, err := r.run(ctx, "clicks", sessions, func(ctx context.Context, i int, s *core.Session) error {
		res, err := r.Generator.SuggestClicks(ctx, s)
		if err != nil {
			return err
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// RunBuys 为每个 session 生成加购/下单候选及特征。
func (r *Runner) RunBuys(ctx context.Context, sessions []*core.Session) ([]*candidate.BuyResult, Stats, error) {
	out := make([]*candidate.BuyResult, len(sessions))
	stats, err := r.run(ctx, "buys", sessions, func(ctx context.Context, i int, s *core.Session) error {
		res, err := r.Generator.BuyFeatures(ctx, s)
		if err != nil {
			return err
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func (r *Runner) run(
	ctx context.Context,
	mode string,
	sessions []*core.Session,
	fn func(ctx context.Context, i int, s *core.Session) error,
) (Stats, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := r.Logger.With().Str("mode", mode).Logger()

	skipped := make([]bool, len(sessions))
	var failed atomic.Int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, s := range sessions {
		i, s := i, s
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			err := fn(egCtx, i, s)
			if err == nil {
				return nil
			}
			failed.Add(1)
			if !r.SkipFailed || !core.IsDomainError(err) {
				return err
			}
			skipped[i] = true
			log.Warn().Err(err).Int64("session", sessionID(s)).Msg("skip session")
			return nil
		})
	}
	err := eg.Wait()

	stats := Stats{Total: len(sessions), Failed: int(failed.Load())}
	for i, skip := range skipped {
		if skip {
			stats.Skipped = append(stats.Skipped, sessionID(sessions[i]))
		}
	}
	if err != nil {
		log.Error().Err(err).Int("sessions", len(sessions)).Msg("batch aborted")
		return stats, err
	}
	log.Info().Int("sessions", stats.Total).Int("skipped", len(stats.Skipped)).Msg("batch done")
	return stats, nil
}

func sessionID(s *core.Session) int64 {
	if s == nil {
		return 0
	}
	return s.ID
}
