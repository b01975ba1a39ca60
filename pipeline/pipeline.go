package pipeline

import (
	"context"
	"fmt"

	"github.com/xiaoye-hua/otto-kaggle/core"
)

// Pipeline 把候选生成拆成可组合的 Node 链：召回（历史/协同访问/热门）→ 特征后处理。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行每个 Node；任何一个 Node 出错都直接中止，不做重试。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
