package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xiaoye-hua/otto-kaggle/batch"
	"github.com/xiaoye-hua/otto-kaggle/candidate"
	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
	"github.com/xiaoye-hua/otto-kaggle/pkg/logging"
	"github.com/xiaoye-hua/otto-kaggle/recall"
	"github.com/xiaoye-hua/otto-kaggle/store"
)

// LoadTables 并发读取五张离线表，任一张缺失或解析失败即返回错误。
func LoadTables(ctx context.Context, s core.Store, keys TableKeys, log zerolog.Logger) (candidate.Tables, error) {
	var t candidate.Tables
	start := time.Now()

	eg, egCtx := errgroup.WithContext(ctx)
	matrix := func(dst **recall.CovisitMatrix, name, key string) {
		eg.Go(func() error {
			m, err := recall.LoadCovisitMatrix(egCtx, s, name, key)
			if err != nil {
				return err
			}
			log.Debug().Str("table", name).Str("key", key).Int("rows", m.Len()).Msg("covisit matrix loaded")
			*dst = m
			return nil
		})
	}
	popular := func(dst **recall.PopularList, name, key string) {
		eg.Go(func() error {
			p, err := recall.LoadPopularList(egCtx, s, name, key, keys.TopN)
			if err != nil {
				return err
			}
			log.Debug().Str("table", name).Str("key", key).Int("len", p.Len()).Msg("popular list loaded")
			*dst = p
			return nil
		})
	}
	matrix(&t.Clicks, "clicks", keys.Clicks)
	matrix(&t.Buys, "buys", keys.Buys)
	matrix(&t.Buy2Buy, "buy2buy", keys.Buy2Buy)
	popular(&t.TopClicks, "top_clicks", keys.TopClicks)
	popular(&t.TopOrders, "top_orders", keys.TopOrders)

	if err := eg.Wait(); err != nil {
		log.Error().Err(err).Str("store", s.Name()).Msg("load tables failed")
		return candidate.Tables{}, err
	}
	log.Info().Str("store", s.Name()).Dur("took", time.Since(start)).Msg("tables loaded")
	return t, nil
}

// App 是按配置装配好的运行时组件。
type App struct {
	Config    *AppConfig
	Store     core.KeyValueStore
	Generator *candidate.Generator
	Runner    *batch.Runner
	Logger    zerolog.Logger
}

// Build 按 c.Store 打开 Store，再调用 BuildWith。
// log 为 nil 时按 c.Log 新建 logger。
func (c *AppConfig) Build(ctx context.Context, log *zerolog.Logger) (*App, error) {
	if _, err := c.Configuration(); err != nil {
		return nil, err
	}
	kv, err := store.Open(ctx, c.Store)
	if err != nil {
		return nil, err
	}
	app, err := c.BuildWith(ctx, kv, log)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return app, nil
}

// BuildWith 从已打开的 kv 加载离线表并构造 Generator 与批处理 Runner。
// 返回的 App 持有 kv，App.Close 会关闭它。
func (c *AppConfig) BuildWith(ctx context.Context, kv core.KeyValueStore, log *zerolog.Logger) (*App, error) {
	logger := newLogger(c, log)

	cfg, err := c.Configuration()
	if err != nil {
		return nil, err
	}
	tables, err := LoadTables(ctx, kv, c.Tables, logger)
	if err != nil {
		return nil, err
	}
	if err := checkFallback(tables, cfg.RecNum); err != nil {
		logger.Error().Err(err).Msg("popular list too short")
		return nil, err
	}
	g, err := candidate.NewGenerator(cfg, tables)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int("rec_num", cfg.RecNum).
		Bool("dedup_fallback", cfg.DedupFallback).
		Str("store", kv.Name()).
		Msg("generator ready")

	return &App{
		Config:    c,
		Store:     kv,
		Generator: g,
		Runner: &batch.Runner{
			Generator:  g,
			Workers:    c.Batch.Workers,
			SkipFailed: c.Batch.SkipFailed,
			Logger:     logger.With().Str("component", "batch").Logger(),
		},
		Logger: logger,
	}, nil
}

// Pipeline 按 c.Pipeline 指向的文件构建 Pipeline；未配置时返回 nil。
func (a *App) Pipeline() (*pipeline.Pipeline, error) {
	if a.Config.Pipeline == "" {
		return nil, nil
	}
	pc, err := pipeline.LoadFromFile(a.Config.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("load pipeline %s: %w", a.Config.Pipeline, err)
	}
	if err := ValidatePipelineConfig(pc); err != nil {
		return nil, err
	}
	return pc.BuildPipeline(DefaultFactory(a.Generator))
}

// Close 释放 Store。
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// checkFallback 保证热门列表能补齐 recNum 个候选，否则短 session 会在生成时失败。
func checkFallback(t candidate.Tables, recNum int) error {
	for _, p := range []*recall.PopularList{t.TopClicks, t.TopOrders} {
		if p.Len() < recNum {
			return core.ConfigErrorf(core.ModuleConfig,
				"config: popular list %s has %d aids, need at least rec_num (%d)", p.Name(), p.Len(), recNum)
		}
	}
	return nil
}

func newLogger(c *AppConfig, log *zerolog.Logger) zerolog.Logger {
	if log != nil {
		return *log
	}
	return logging.New(c.Log)
}
