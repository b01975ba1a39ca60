package recall

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/xiaoye-hua/otto-kaggle/core"
)

// 离线表在 Store 中的布局：
//   - 协同访问矩阵：Hash，key 如 "covisit:clicks"，field 为 aid，value 为近邻 aid 的 JSON 数组；
//     Store 不支持 Hash 或 key 存的不是 Hash 时退化为单个 key，value 为 {"aid": [...]} 的 JSON 对象。
//   - 热门列表：有序集合（ZRange 降序），或单个 key 存 JSON 数组。
//
// 表在一个批次开始时加载一次，之后只读。

// LoadCovisitMatrix 从 Store 读取名为 name 的协同访问矩阵。
func LoadCovisitMatrix(ctx context.Context, s core.Store, name, key string) (*CovisitMatrix, error) {
	neighbors := make(map[int64][]int64)

	if kv, ok := s.(core.KeyValueStore); ok {
		// key 存的是 JSON 而不是 Hash 时退回到 Get
		fields, err := kv.HGetAll(ctx, key)
		if err != nil && !core.IsStoreNotSupported(err) {
			return nil, fmt.Errorf("load covisit %s: %w", key, err)
		}
		for field, raw := range fields {
			aid, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("load covisit %s: bad aid %q: %w", key, field, err)
			}
			var list []int64
			if err := json.Unmarshal(raw, &list); err != nil {
				return nil, fmt.Errorf("load covisit %s: aid %d: %w", key, aid, err)
			}
			neighbors[aid] = list
		}
		if len(neighbors) > 0 {
			return NewCovisitMatrix(name, neighbors), nil
		}
	}

	data, err := s.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, &core.DomainError{
				Module:  core.ModuleRecall,
				Code:    core.ErrorCodeNotFound,
				Message: "recall: covisit matrix " + key + " not found",
				Err:     err,
			}
		}
		return nil, fmt.Errorf("load covisit %s: %w", key, err)
	}
	var byKey map[string][]int64
	if err := json.Unmarshal(data, &byKey); err != nil {
		return nil, fmt.Errorf("load covisit %s: %w", key, err)
	}
	for field, list := range byKey {
		aid, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("load covisit %s: bad aid %q: %w", key, field, err)
		}
		neighbors[aid] = list
	}
	return NewCovisitMatrix(name, neighbors), nil
}

// SaveCovisitMatrix 以 Hash 布局写入矩阵（Store 不支持 Hash 时写单个 JSON 对象）。
func SaveCovisitMatrix(ctx context.Context, s core.Store, key string, neighbors map[int64][]int64) error {
	if kv, ok := s.(core.KeyValueStore); ok {
		for aid, list := range neighbors {
			raw, err := json.Marshal(list)
			if err != nil {
				return err
			}
			if err := kv.HSet(ctx, key, strconv.FormatInt(aid, 10), raw); err != nil {
				return fmt.Errorf("save covisit %s: %w", key, err)
			}
		}
		return nil
	}
	byKey := make(map[string][]int64, len(neighbors))
	for aid, list := range neighbors {
		byKey[strconv.FormatInt(aid, 10)] = list
	}
	raw, err := json.Marshal(byKey)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

// LoadPopularList 读取热门列表的前 topN 个（topN <= 0 表示全部）。
// 优先使用有序集合，读不到时回退到 JSON 数组。
func LoadPopularList(ctx context.Context, s core.Store, name, key string, topN int) (*PopularList, error) {
	var ids []int64

	if kv, ok := s.(core.KeyValueStore); ok {
		stop := int64(topN) - 1
		if topN <= 0 {
			stop = -1
		}
		members, err := kv.ZRange(ctx, key, 0, stop)
		if err != nil && !core.IsStoreNotSupported(err) {
			return nil, fmt.Errorf("load popular %s: %w", key, err)
		}
		ids = make([]int64, 0, len(members))
		for _, m := range members {
			id, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("load popular %s: bad aid %q: %w", key, m, err)
			}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		data, err := s.Get(ctx, key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return nil, &core.DomainError{
					Module:  core.ModuleRecall,
					Code:    core.ErrorCodeNotFound,
					Message: "recall: popular list " + key + " not found",
					Err:     err,
				}
			}
			return nil, fmt.Errorf("load popular %s: %w", key, err)
		}
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, fmt.Errorf("load popular %s: %w", key, err)
		}
		if topN > 0 && len(ids) > topN {
			ids = ids[:topN]
		}
	}
	return NewPopularList(name, ids), nil
}

// SavePopularList 按顺序写入热门列表；有序集合的分数为 len(ids)-i，保证降序读取时顺序不变。
func SavePopularList(ctx context.Context, s core.Store, key string, ids []int64) error {
	if kv, ok := s.(core.KeyValueStore); ok {
		for i, id := range ids {
			if err := kv.ZAdd(ctx, key, float64(len(ids)-i), strconv.FormatInt(id, 10)); err != nil {
				return fmt.Errorf("save popular %s: %w", key, err)
			}
		}
		return nil
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
