// Package store 提供 core.Store / core.KeyValueStore 的实现：MemoryStore 与 RedisStore。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
package store

import (
	"context"
	"fmt"

	"github.com/xiaoye-hua/otto-kaggle/core"
)

// Options 描述如何打开一个 Store，通常来自 YAML 配置的 store 段。
type Options struct {
	Type     string `yaml:"type"` // memory / redis
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Open 按 Options 打开 Store。
func Open(ctx context.Context, opts Options) (core.KeyValueStore, error) {
	switch opts.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		rs, err := NewRedisStore(ctx, opts.Addr, opts.Password, opts.DB)
		if err != nil {
			return nil, fmt.Errorf("store: open redis %s: %w", opts.Addr, err)
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("store: unknown type %q", opts.Type)
	}
}
