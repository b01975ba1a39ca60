package core

import "github.com/xiaoye-hua/otto-kaggle/pkg/utils"

// RecommendContext 承载 session/场景/请求参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// Session 当前待生成候选的 session，只读
	Session *Session

	// Scene 场景：clicks / carts / orders，可驱动 RouteNode 选择召回模式
	Scene string

	// Labels 是 session 级标签
	Labels map[string]utils.Label

	// Params 请求级上下文参数
	Params map[string]any
}

// SessionID 返回 session ID，session 为空时返回 0。
func (rctx *RecommendContext) SessionID() int64 {
	if rctx == nil || rctx.Session == nil {
		return 0
	}
	return rctx.Session.ID
}

// PutLabel 写入 session 级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取 session 级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
