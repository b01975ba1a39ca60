package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/xiaoye-hua/otto-kaggle/candidate"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
)

// NodeBuilder 根据 config 构建 Node。与 pipeline.NodeBuilder 不同，它能拿到 Generator
// 与 factory 本身（route 这类组合节点需要递归构建子节点）。
type NodeBuilder func(env Env, cfg map[string]any) (pipeline.Node, error)

// Env 是构建 Node 时可用的运行时依赖。
type Env struct {
	Generator *candidate.Generator
	Factory   *pipeline.NodeFactory
}

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
// 内置的 recall.clicks、recall.buys、route 在本包 init 中注册，同名注册会覆盖。
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultFactory 返回绑定了 g 的 NodeFactory，包含所有通过 Register 注册的 Node 类型。
func DefaultFactory(g *candidate.Generator) *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	env := Env{Generator: g, Factory: f}
	for typeName, builder := range defaultBuilders {
		b := builder
		f.Register(typeName, func(cfg map[string]any) (pipeline.Node, error) {
			return b(env, cfg)
		})
	}
	return f
}

// ValidatePipelineConfig 校验 pipeline 配置中所有 node 类型均已注册；若有未支持类型则返回包含已支持列表的错误。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	for _, nc := range cfg.Pipeline.Nodes {
		if _, ok := defaultBuilders[nc.Type]; !ok {
			types := make([]string, 0, len(defaultBuilders))
			for t := range defaultBuilders {
				types = append(types, t)
			}
			sort.Strings(types)
			return fmt.Errorf("unsupported node type %q (supported: %v)", nc.Type, types)
		}
	}
	return nil
}
