package rank

// RankByFrequency 对候选池按出现次数降序排名（同频按首次出现顺序），
// 取前 limit 个后再剔除 exclude 中的 aid。
//
// 注意 limit 作用在剔除之前：若前 limit 名里有被剔除的 aid，结果会少于 limit 个，
// 缺口由后续的热门兜底补齐。返回的 Counter 供特征计算使用。
func RankByFrequency(pool []int64, exclude map[int64]struct{}, limit int) ([]int64, *Counter[int]) {
	counts := CountOf(pool)
	if limit <= 0 {
		return nil, counts
	}
	top := counts.MostCommon(limit)
	out := top[:0]
	for _, aid := range top {
		if _, skip := exclude[aid]; skip {
			continue
		}
		out = append(out, aid)
	}
	return out, counts
}

// SetOf 把 aid 列表转为集合，用于 exclude。
func SetOf(aids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(aids))
	for _, aid := range aids {
		set[aid] = struct{}{}
	}
	return set
}
