// Package feature 为候选 aid 生成与之按下标对齐的数值特征，供下游排序模型使用。
package feature

// Annotate 对每个 aid 调用 lookup（不存在的 aid 应返回 0），结果与 aids 等长、按下标对齐。
func Annotate[V int | float64](aids []int64, lookup func(aid int64) V) []V {
	out := make([]V, len(aids))
	for i, aid := range aids {
		out[i] = lookup(aid)
	}
	return out
}

// Zeros 返回长度为 n 的零值特征，用于没有真实分数的占位。
func Zeros(n int) []float64 {
	if n < 0 {
		n = 0
	}
	return make([]float64, n)
}

// Aligned 检查所有特征数组与 n 等长。
func Aligned(n int, lens ...int) bool {
	for _, l := range lens {
		if l != n {
			return false
		}
	}
	return true
}
