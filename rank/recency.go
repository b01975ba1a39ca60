package rank

import (
	"math"

	"github.com/xiaoye-hua/otto-kaggle/core"
)

// RecencyWeights 为长度为 n 的 session 生成 n 个按时间顺序严格递增的权重：
//
//	weight(i) = base^(start + i·(end−start)/(n−1)) − 1
//
// 即对数等距的曲线减 1，最近的事件权重最大。n == 1 时只取起点 base^start − 1。
// n < 1 时返回 INVALID_INPUT，而不是产出 NaN。
func RecencyWeights(n int, c core.Curve) ([]float64, error) {
	if n < 1 {
		return nil, core.InputErrorf(core.ModuleRank, "rank: recency weights need at least one event, got %d", n)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	weights := make([]float64, n)
	if n == 1 {
		weights[0] = math.Pow(c.Base, c.Start) - 1
		return weights, nil
	}
	step := (c.End - c.Start) / float64(n-1)
	for i := range weights {
		weights[i] = math.Pow(c.Base, c.Start+float64(i)*step) - 1
	}
	return weights, nil
}
