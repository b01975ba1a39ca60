// Package config 负责应用级 YAML 配置：候选生成参数、Store、离线表 key、批处理与日志，
// 以及把配置装配成 Generator / Pipeline。
//
//	rec_num: 20
//	type_weights: {clicks: 1, carts: 6, orders: 3}
//	curves:
//	  clicks: {start: 0.1, end: 1, base: 2}
//	  buys:   {start: 0.5, end: 1, base: 2}
//	store: {type: redis, addr: 127.0.0.1:6379}
//	tables: {clicks: "covisit:clicks", top_orders: "top:orders"}
//	batch: {workers: 8, skip_failed: true}
//	log: {level: info, format: console}
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pkg/logging"
	"github.com/xiaoye-hua/otto-kaggle/store"
)

// AppConfig 是 YAML 配置文件的结构。
type AppConfig struct {
	RecNum        int                `yaml:"rec_num"`
	TypeWeights   map[string]float64 `yaml:"type_weights"` // 事件名 -> 乘数
	Curves        Curves             `yaml:"curves"`
	DedupFallback bool               `yaml:"dedup_fallback"`

	Store  store.Options  `yaml:"store"`
	Tables TableKeys      `yaml:"tables"`
	Batch  BatchConfig    `yaml:"batch"`
	Log    logging.Config `yaml:"log"`

	// Pipeline 可选，pipeline YAML/JSON 文件路径
	Pipeline string `yaml:"pipeline"`
}

type Curves struct {
	Clicks core.Curve `yaml:"clicks"`
	Buys   core.Curve `yaml:"buys"`
}

// TableKeys 是各离线表在 Store 中的 key。
type TableKeys struct {
	Clicks    string `yaml:"clicks"`
	Buys      string `yaml:"buys"`
	Buy2Buy   string `yaml:"buy2buy"`
	TopClicks string `yaml:"top_clicks"`
	TopOrders string `yaml:"top_orders"`

	// TopN 热门列表读取长度，<= 0 读全部
	TopN int `yaml:"top_n"`
}

type BatchConfig struct {
	Workers    int  `yaml:"workers"`
	SkipFailed bool `yaml:"skip_failed"`
}

// Default 返回默认配置，Load 在其之上覆盖文件中出现的字段。
func Default() *AppConfig {
	def := core.DefaultConfiguration()
	weights := make(map[string]float64, len(def.TypeWeights))
	for t, w := range def.TypeWeights {
		weights[t.String()] = w
	}
	return &AppConfig{
		RecNum:      def.RecNum,
		TypeWeights: weights,
		Curves:      Curves{Clicks: def.ClickCurve, Buys: def.BuyCurve},
		Store:       store.Options{Type: "memory"},
		Tables: TableKeys{
			Clicks:    "covisit:clicks",
			Buys:      "covisit:buys",
			Buy2Buy:   "covisit:buy2buy",
			TopClicks: "top:clicks",
			TopOrders: "top:orders",
			TopN:      100,
		},
		Log: logging.Config{Level: "info"},
	}
}

// Load 读取并校验 YAML 配置文件。
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse 解析并校验 YAML 内容。
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	defaults := cfg.TypeWeights
	// yaml.v3 会往已有 map 里合并，type_weights 需要整体替换
	cfg.TypeWeights = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &core.DomainError{
			Module:  core.ModuleConfig,
			Code:    core.ErrorCodeConfig,
			Message: "config: parse yaml",
			Err:     err,
		}
	}
	if cfg.TypeWeights == nil {
		cfg.TypeWeights = defaults
	}
	if _, err := cfg.Configuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Configuration 把事件名索引的权重转为 core.Configuration 并校验。
func (c *AppConfig) Configuration() (core.Configuration, error) {
	weights := make(map[core.EventType]float64, len(c.TypeWeights))
	for name, w := range c.TypeWeights {
		t, err := core.ParseEventType(name)
		if err != nil {
			return core.Configuration{}, core.ConfigErrorf(core.ModuleConfig, "config: type_weights: %v", err)
		}
		if _, dup := weights[t]; dup {
			return core.Configuration{}, core.ConfigErrorf(core.ModuleConfig, "config: type_weights: duplicate entry for %s", t)
		}
		weights[t] = w
	}
	out := core.Configuration{
		RecNum:        c.RecNum,
		TypeWeights:   weights,
		ClickCurve:    c.Curves.Clicks,
		BuyCurve:      c.Curves.Buys,
		DedupFallback: c.DedupFallback,
	}
	if err := out.Validate(); err != nil {
		return core.Configuration{}, err
	}
	// 热门兜底至少要能补齐一整个候选列表
	if c.Tables.TopN > 0 && c.Tables.TopN < c.RecNum {
		return core.Configuration{}, core.ConfigErrorf(core.ModuleConfig,
			"config: tables.top_n (%d) must be >= rec_num (%d)", c.Tables.TopN, c.RecNum)
	}
	return out, nil
}
