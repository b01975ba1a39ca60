package rank

import "sort"

// Counter 是按首次插入顺序记忆 key 的计数器。
// MostCommon 按 (−value, 首次插入位置) 排序，同分时先出现的 aid 排在前面。
type Counter[V int | float64] struct {
	index map[int64]int
	keys  []int64
	vals  []V
}

func NewCounter[V int | float64]() *Counter[V] {
	return &Counter[V]{index: make(map[int64]int)}
}

// CountOf 对 aids 逐个计数 +1。
func CountOf(aids []int64) *Counter[int] {
	c := NewCounter[int]()
	for _, aid := range aids {
		c.Add(aid, 1)
	}
	return c
}

// Add 给 aid 累加 v；aid 第一次出现时记录其插入位置。
func (c *Counter[V]) Add(aid int64, v V) {
	if i, ok := c.index[aid]; ok {
		c.vals[i] += v
		return
	}
	c.index[aid] = len(c.keys)
	c.keys = append(c.keys, aid)
	c.vals = append(c.vals, v)
}

// Get 返回 aid 的值，不存在时为 0。
func (c *Counter[V]) Get(aid int64) V {
	if i, ok := c.index[aid]; ok {
		return c.vals[i]
	}
	return 0
}

// Has 判断 aid 是否被计数过。
func (c *Counter[V]) Has(aid int64) bool {
	_, ok := c.index[aid]
	return ok
}

func (c *Counter[V]) Len() int { return len(c.keys) }

// MostCommon 返回值最大的前 n 个 aid；n <= 0 或 n 超过 Len 时返回全部。
func (c *Counter[V]) MostCommon(n int) []int64 {
	order := make([]int, len(c.keys))
	for i := range order {
		order[i] = i
	}
	// order 本身是插入顺序，稳定排序即可保证同分按首次出现排序
	sort.SliceStable(order, func(a, b int) bool {
		return c.vals[order[a]] > c.vals[order[b]]
	})
	if n <= 0 || n > len(order) {
		n = len(order)
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = c.keys[order[i]]
	}
	return out
}
