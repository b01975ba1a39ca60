package utils

// Label 是推荐链路中的一等公民：可解释、可追踪、可透传。
// 本项目里主要用来记录候选来自哪一路：history / covisit / popular。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / rerank / route ...
}

// 常用 label key
const (
	LabelRecallSource = "recall_source"
	LabelRecallMode   = "recall_mode"
	LabelRoute        = "route"
)

// MergeLabel 用于合并同名 Label：Value 以 '|' 累积，Source 以 ',' 累积。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
