package recall

import "github.com/xiaoye-hua/otto-kaggle/core"

// UniqueAIDs 对 session 的历史行为去重：倒序遍历，每个 aid 只保留第一次出现，
// 结果按最近一次出现排序（最新在前）。
func UniqueAIDs(events []core.Event) []int64 {
	return uniqueReversed(events, func(core.Event) bool { return true })
}

// UniqueBuys 只看加购/下单事件，规则同 UniqueAIDs。
func UniqueBuys(events []core.Event) []int64 {
	return uniqueReversed(events, func(e core.Event) bool { return e.Type.IsBuy() })
}

func uniqueReversed(events []core.Event, keep func(core.Event) bool) []int64 {
	seen := make(map[int64]struct{}, len(events))
	out := make([]int64, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if !keep(e) {
			continue
		}
		if _, ok := seen[e.AID]; ok {
			continue
		}
		seen[e.AID] = struct{}{}
		out = append(out, e.AID)
	}
	return out
}
