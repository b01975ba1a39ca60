package recall

// CovisitMatrix 是离线计算好的协同访问矩阵：aid -> 按相关度排序的近邻列表（最多 K 个）。
// 构造后只读，可在多个 goroutine 之间共享。
//
// 常用的三个实例：
//   - clicks：点击-点击
//   - buys：加购/下单
//   - buy2buy：购买-购买
type CovisitMatrix struct {
	name      string
	neighbors map[int64][]int64
}

// NewCovisitMatrix 复制 neighbors 构造矩阵，调用方之后修改原 map 不影响矩阵。
func NewCovisitMatrix(name string, neighbors map[int64][]int64) *CovisitMatrix {
	m := &CovisitMatrix{
		name:      name,
		neighbors: make(map[int64][]int64, len(neighbors)),
	}
	for aid, list := range neighbors {
		m.neighbors[aid] = append([]int64(nil), list...)
	}
	return m
}

func (m *CovisitMatrix) Name() string { return m.name }

// Len 返回矩阵中的 key 数。
func (m *CovisitMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.neighbors)
}

// Neighbors 返回 aid 的近邻列表；返回的切片只读。
func (m *CovisitMatrix) Neighbors(aid int64) ([]int64, bool) {
	if m == nil {
		return nil, false
	}
	list, ok := m.neighbors[aid]
	return list, ok
}

// Expand 按 aids 的顺序拼接每个 aid 的近邻列表，得到带重复的候选池；
// 不在矩阵中的 aid 不贡献任何候选。
func Expand(aids []int64, m *CovisitMatrix) []int64 {
	var pool []int64
	for _, aid := range aids {
		if list, ok := m.Neighbors(aid); ok {
			pool = append(pool, list...)
		}
	}
	return pool
}
