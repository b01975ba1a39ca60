package recall

// PopularList 是全局热门 aid 列表（top clicks / top orders），
// 只在候选不足时作为兜底从头部开始补齐。构造后只读。
type PopularList struct {
	name string
	ids  []int64
}

func NewPopularList(name string, ids []int64) *PopularList {
	return &PopularList{name: name, ids: append([]int64(nil), ids...)}
}

func (p *PopularList) Name() string { return p.name }

func (p *PopularList) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ids)
}

// Head 返回前 n 个 aid 的副本，n 超过长度时返回全部。
func (p *PopularList) Head(n int) []int64 {
	if p == nil || n <= 0 {
		return nil
	}
	if n > len(p.ids) {
		n = len(p.ids)
	}
	return append([]int64(nil), p.ids[:n]...)
}

// IDs 返回完整列表的副本。
func (p *PopularList) IDs() []int64 {
	return p.Head(p.Len())
}
