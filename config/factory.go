package config

import (
	"fmt"

	"github.com/xiaoye-hua/otto-kaggle/candidate"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
	"github.com/xiaoye-hua/otto-kaggle/pkg/conv"
)

func init() {
	Register("recall.clicks", BuildClickNode)
	Register("recall.buys", BuildBuyNode)
	Register("route", BuildRouteNode)
}

func BuildClickNode(env Env, _ map[string]any) (pipeline.Node, error) {
	if env.Generator == nil {
		return nil, fmt.Errorf("recall.clicks: generator not configured")
	}
	return &candidate.ClickNode{Generator: env.Generator}, nil
}

func BuildBuyNode(env Env, _ map[string]any) (pipeline.Node, error) {
	if env.Generator == nil {
		return nil, fmt.Errorf("recall.buys: generator not configured")
	}
	return &candidate.BuyNode{Generator: env.Generator}, nil
}

// BuildRouteNode 构建 route 节点。then / else 既可以是类型名，也可以是 {type, config}：
//
//	- type: route
//	  config:
//	    expr: 'rctx.scene == "clicks" || rctx.n_buys == 0'
//	    then: recall.clicks
//	    else: {type: recall.buys}
func BuildRouteNode(env Env, cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet(cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("route: expr not found")
	}
	then, err := buildBranch(env, cfg["then"])
	if err != nil {
		return nil, fmt.Errorf("route then: %w", err)
	}
	els, err := buildBranch(env, cfg["else"])
	if err != nil {
		return nil, fmt.Errorf("route else: %w", err)
	}
	return candidate.NewRouteNode(expr, then, els)
}

func buildBranch(env Env, v any) (pipeline.Node, error) {
	if env.Factory == nil {
		return nil, fmt.Errorf("factory not configured")
	}
	switch b := v.(type) {
	case string:
		return env.Factory.Build(b, nil)
	case map[string]any:
		typeName := conv.ConfigGet(b, "type", "")
		if typeName == "" {
			return nil, fmt.Errorf("branch type not found")
		}
		sub, _ := conv.TypeAssert[map[string]any](b["config"])
		return env.Factory.Build(typeName, sub)
	default:
		return nil, fmt.Errorf("branch must be a node type or {type, config}, got %T", v)
	}
}
