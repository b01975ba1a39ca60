package candidate

import (
	"context"
	"fmt"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
	"github.com/xiaoye-hua/otto-kaggle/pkg/dsl"
	"github.com/xiaoye-hua/otto-kaggle/pkg/utils"
)

// ClickNode 把 SuggestClicks 包装成召回 Node：忽略输入 items，按 rctx.Session 生成候选。
// 捷径分支没有分数，items 上不写 type_weight 特征，Meta["shortcut"] 为 true。
type ClickNode struct {
	Generator *Generator
}

func (n *ClickNode) Name() string        { return "recall.clicks" }
func (n *ClickNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *ClickNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, core.InputErrorf(core.ModuleCandidate, "candidate: nil recommend context")
	}
	res, err := n.Generator.SuggestClicks(ctx, rctx.Session)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Item, len(res.AIDs))
	for i, aid := range res.AIDs {
		it := core.NewItem(aid)
		if res.Scores != nil {
			it.Score = res.Scores[i]
			it.Features[core.FeatureTypeWeight] = res.Scores[i]
		}
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: res.Sources[i], Source: "recall"})
		it.PutLabel(utils.LabelRecallMode, utils.Label{Value: "clicks", Source: "recall"})
		it.Meta[core.MetaSessionID] = rctx.SessionID()
		it.Meta[core.MetaShortcut] = res.Shortcut
		out[i] = it
	}
	return out, nil
}

// BuyNode 把 BuyFeatures 包装成召回 Node，三列特征写入 Item.Features。
type BuyNode struct {
	Generator *Generator
}

func (n *BuyNode) Name() string        { return "recall.buys" }
func (n *BuyNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *BuyNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		return nil, core.InputErrorf(core.ModuleCandidate, "candidate: nil recommend context")
	}
	res, err := n.Generator.BuyFeatures(ctx, rctx.Session)
	if err != nil {
		return nil, err
	}
	out := make([]*core.Item, len(res.AIDs))
	for i, aid := range res.AIDs {
		it := core.NewItem(aid)
		it.Score = res.TypeWeights[i]
		it.Features[core.FeatureTypeWeight] = res.TypeWeights[i]
		it.Features[core.FeatureCartOrderNum] = float64(res.CartOrderCounts[i])
		it.Features[core.FeatureBuyBuyNum] = float64(res.BuyBuyCounts[i])
		it.PutLabel(utils.LabelRecallSource, utils.Label{Value: res.Sources[i], Source: "recall"})
		it.PutLabel(utils.LabelRecallMode, utils.Label{Value: "buys", Source: "recall"})
		it.Meta[core.MetaSessionID] = rctx.SessionID()
		out[i] = it
	}
	return out, nil
}

// RouteNode 用 CEL 表达式在两个 Node 之间选择，例如按场景选择点击或下单召回：
//
//	&RouteNode{Expr: mustCompile(`rctx.scene == "clicks"`), Then: clickNode, Else: buyNode}
type RouteNode struct {
	Expr *dsl.Expr
	Then pipeline.Node
	Else pipeline.Node
}

// NewRouteNode 编译表达式并构造 RouteNode。
func NewRouteNode(expr string, then, els pipeline.Node) (*RouteNode, error) {
	if then == nil || els == nil {
		return nil, fmt.Errorf("route: both branches are required")
	}
	e, err := dsl.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", expr, err)
	}
	return &RouteNode{Expr: e, Then: then, Else: els}, nil
}

func (n *RouteNode) Name() string        { return "route" }
func (n *RouteNode) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *RouteNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	ok, err := n.Expr.Eval(rctx)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", n.Expr, err)
	}
	next := n.Else
	if ok {
		next = n.Then
	}
	if rctx != nil {
		rctx.PutLabel(utils.LabelRoute, utils.Label{Value: next.Name(), Source: "route"})
	}
	return next.Process(ctx, rctx, items)
}
