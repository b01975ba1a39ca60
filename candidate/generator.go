// Package candidate 为单个 session 生成定长候选列表并附带特征，是召回阶段的核心。
//
// 两种模式：
//   - SuggestClicks：点击候选。历史足够长时直接按近因×类型权重排序；否则历史 + 点击协同访问 + 热门点击兜底。
//   - BuyFeatures：加购/下单候选。总是走历史 + 两个协同访问矩阵 + 热门下单兜底，并输出三列特征。
//
// Generator 构造后只读，可被多个 goroutine 并发使用。
package candidate

import (
	"context"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/feature"
	"github.com/xiaoye-hua/otto-kaggle/rank"
	"github.com/xiaoye-hua/otto-kaggle/recall"
	"github.com/xiaoye-hua/otto-kaggle/rerank"
)

// Tables 是一个批次内共享的只读离线表。
type Tables struct {
	Clicks  *recall.CovisitMatrix // 点击-点击
	Buys    *recall.CovisitMatrix // 加购/下单
	Buy2Buy *recall.CovisitMatrix // 购买-购买

	TopClicks *recall.PopularList
	TopOrders *recall.PopularList
}

// Generator 持有注入的配置与离线表，不依赖任何全局状态。
type Generator struct {
	cfg    core.Configuration
	tables Tables
}

// NewGenerator 校验配置并构造 Generator；配置会被深拷贝。
func NewGenerator(cfg core.Configuration, tables Tables) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg.Clone(), tables: tables}, nil
}

// Config 返回配置副本。
func (g *Generator) Config() core.Configuration { return g.cfg.Clone() }

// ClickResult 是点击模式的输出。
//
// Shortcut 为 true 时（历史去重后 >= RecNum）只返回按分数排序的 AIDs，Scores 为 nil；
// 否则 Scores 与 AIDs 等长，历史与补齐位置均为 0。
type ClickResult struct {
	AIDs     []int64
	Scores   []float64
	Sources  []string
	Shortcut bool
}

// BuyResult 是加购/下单模式的输出，三列特征与 AIDs 按下标对齐。
type BuyResult struct {
	AIDs            []int64
	TypeWeights     []float64 // 近因 × 类型权重累加分
	CartOrderCounts []int     // 在 buys 协同访问候选池中的出现次数
	BuyBuyCounts    []int     // 在 buy2buy 协同访问候选池中的出现次数
	Sources         []string
}

// SuggestClicks 生成点击候选。
func (g *Generator) SuggestClicks(ctx context.Context, s *core.Session) (*ClickResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.cfg.CheckSession(s); err != nil {
		return nil, err
	}
	n := g.cfg.RecNum
	unique := recall.UniqueAIDs(s.Events)

	if len(unique) >= n {
		scores, err := rank.TypeWeighted(s, g.cfg.ClickCurve, &g.cfg)
		if err != nil {
			return nil, err
		}
		aids := scores.MostCommon(n)
		sources := make([]string, len(aids))
		for i := range sources {
			sources[i] = rerank.SourceWeight
		}
		return &ClickResult{AIDs: aids, Sources: sources, Shortcut: true}, nil
	}

	pool := recall.Expand(unique, g.tables.Clicks)
	ranked, _ := rank.RankByFrequency(pool, rank.SetOf(unique), n)
	merged := rerank.Merge(unique, ranked, g.tables.TopClicks.Head(n), n, g.cfg.DedupFallback)

	scores := feature.Zeros(n)
	if len(merged.AIDs) != n || !feature.Aligned(len(merged.AIDs), len(scores)) {
		return nil, core.InvariantErrorf(core.ModuleCandidate,
			"candidate: session %d: click candidates %d vs scores %d, want %d",
			s.ID, len(merged.AIDs), len(scores), n)
	}
	return &ClickResult{AIDs: merged.AIDs, Scores: scores, Sources: merged.Sources}, nil
}

// BuyFeatures 生成加购/下单候选及特征。没有长历史捷径，总是完整执行。
func (g *Generator) BuyFeatures(ctx context.Context, s *core.Session) (*BuyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.cfg.CheckSession(s); err != nil {
		return nil, err
	}
	n := g.cfg.RecNum
	unique := recall.UniqueAIDs(s.Events)
	buys := recall.UniqueBuys(s.Events)

	// 所有事件都参与累加，不只是购买事件
	typeWeights, err := rank.TypeWeighted(s, g.cfg.BuyCurve, &g.cfg)
	if err != nil {
		return nil, err
	}

	poolA := recall.Expand(unique, g.tables.Buys)
	poolB := recall.Expand(buys, g.tables.Buy2Buy)
	countsA := rank.CountOf(poolA)
	countsB := rank.CountOf(poolB)

	combined := make([]int64, 0, len(poolA)+len(poolB))
	combined = append(combined, poolA...)
	combined = append(combined, poolB...)
	ranked, _ := rank.RankByFrequency(combined, rank.SetOf(unique), n)
	merged := rerank.Merge(unique, ranked, g.tables.TopOrders.Head(n), n, g.cfg.DedupFallback)

	res := &BuyResult{
		AIDs:            merged.AIDs,
		TypeWeights:     feature.Annotate(merged.AIDs, typeWeights.Get),
		CartOrderCounts: feature.Annotate(merged.AIDs, countsA.Get),
		BuyBuyCounts:    feature.Annotate(merged.AIDs, countsB.Get),
		Sources:         merged.Sources,
	}
	if len(res.AIDs) != n || !feature.Aligned(n, len(res.TypeWeights), len(res.CartOrderCounts), len(res.BuyBuyCounts)) {
		return nil, core.InvariantErrorf(core.ModuleCandidate,
			"candidate: session %d: buy candidates %d, want %d", s.ID, len(res.AIDs), n)
	}
	return res, nil
}

