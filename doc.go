// Package otto 为电商 session 生成定长候选列表与排序特征（clicks / carts / orders 三个目标）。
//
// 设计要点：
// - Session-first: 候选只由 session 内事件与离线表（协同访问矩阵、热门列表）决定，无全局状态
// - 定长输出: 历史 → 协同访问 → 热门兜底，保证每个 session 恰好 RecNum 个候选
// - Pipeline 可编排: candidate.ClickNode / BuyNode / RouteNode 可通过 YAML 组装
//
// 典型用法：
//
//	cfg, _ := config.Load("app.yaml")
//	app, _ := cfg.Build(ctx, nil)
//	defer app.Close()
//	res, _ := app.Generator.SuggestClicks(ctx, session)
package otto

import (
	"github.com/xiaoye-hua/otto-kaggle/candidate"
	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
)

// 轻量 facade：便于直接 import 根包使用核心抽象。
type (
	Session       = core.Session
	Event         = core.Event
	EventType     = core.EventType
	Configuration = core.Configuration

	Generator   = candidate.Generator
	Tables      = candidate.Tables
	ClickResult = candidate.ClickResult
	BuyResult   = candidate.BuyResult

	Pipeline = pipeline.Pipeline
	Node     = pipeline.Node
	Kind     = pipeline.Kind
)

const (
	EventClick = core.EventClick
	EventCart  = core.EventCart
	EventOrder = core.EventOrder

	KindRecall      = pipeline.KindRecall
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

// NewGenerator 等价于 candidate.NewGenerator。
func NewGenerator(cfg Configuration, tables Tables) (*Generator, error) {
	return candidate.NewGenerator(cfg, tables)
}
