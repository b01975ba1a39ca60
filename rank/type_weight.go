package rank

import "github.com/xiaoye-hua/otto-kaggle/core"

// TypeWeighted 在整个 session 上按时间顺序累加 score[aid] += recency(i) × multiplier(type)。
// 重复出现的 aid 与加购/下单行为都会抬高分数；缺少乘数的事件类型直接报 CONFIG_ERROR。
func TypeWeighted(s *core.Session, curve core.Curve, cfg *core.Configuration) (*Counter[float64], error) {
	weights, err := RecencyWeights(s.Len(), curve)
	if err != nil {
		return nil, err
	}
	scores := NewCounter[float64]()
	for i, e := range s.Events {
		m, err := cfg.Multiplier(e.Type)
		if err != nil {
			return nil, err
		}
		scores.Add(e.AID, weights[i]*m)
	}
	return scores, nil
}
