package rerank

// 候选来源，写入 recall_source label。
const (
	SourceHistory = "history"
	SourceCovisit = "covisit"
	SourcePopular = "popular"
	SourceWeight  = "type_weight"
)

// Merged 是合并后的定长候选及其逐位来源。
type Merged struct {
	AIDs    []int64
	Sources []string
}

// Merge 把去重后的历史、协同访问候选与热门兜底拼成长度为 n 的列表：
//
//  1. 历史 aid（最新在前）全部保留；历史超过 n 时只保留最近的 n 个
//  2. 追加 ranked 的前 n−len(history) 个
//  3. 仍不足时从 fallback 头部补齐
//
// dedupFallback 为 false 时第 3 步不检查重复（与线上行为一致）；
// fallback 不够长时结果会短于 n，由调用方做长度校验。
func Merge(history, ranked, fallback []int64, n int, dedupFallback bool) Merged {
	out := Merged{
		AIDs:    make([]int64, 0, n),
		Sources: make([]string, 0, n),
	}
	add := func(aid int64, src string) {
		out.AIDs = append(out.AIDs, aid)
		out.Sources = append(out.Sources, src)
	}

	for _, aid := range history {
		if len(out.AIDs) == n {
			break
		}
		add(aid, SourceHistory)
	}
	for _, aid := range ranked {
		if len(out.AIDs) == n {
			break
		}
		add(aid, SourceCovisit)
	}

	var chosen map[int64]struct{}
	if dedupFallback {
		chosen = make(map[int64]struct{}, n)
		for _, aid := range out.AIDs {
			chosen[aid] = struct{}{}
		}
	}
	for _, aid := range fallback {
		if len(out.AIDs) == n {
			break
		}
		if chosen != nil {
			if _, dup := chosen[aid]; dup {
				continue
			}
			chosen[aid] = struct{}{}
		}
		add(aid, SourcePopular)
	}
	return out
}
