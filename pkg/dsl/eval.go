package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/xiaoye-hua/otto-kaggle/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("rctx", cel.DynType),
			cel.Variable("label", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是编译好的布尔表达式，编译一次后可并发 Eval。
//
// 表达式语法（CEL 标准语法），可访问的变量：
//   - rctx.scene / rctx.session_id / rctx.params
//   - rctx.n_events / rctx.n_unique / rctx.n_buys：session 事件数、去重 aid 数、加购下单事件数
//   - label.<key>：session 级 label 的 value
//
// 示例：
//   - `rctx.scene == "clicks"`
//   - `rctx.n_buys > 0 && rctx.scene != "clicks"`
//   - `label.segment == "heavy"`
type Expr struct {
	src string
	prg cel.Program
}

// Compile 编译表达式，要求返回 bool。
func Compile(expr string) (*Expr, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Expr{src: expr, prg: prg}, nil
}

func (e *Expr) String() string { return e.src }

// Eval 在 rctx 上执行表达式。
func (e *Expr) Eval(rctx *core.RecommendContext) (bool, error) {
	out, _, err := e.prg.Eval(buildInput(rctx))
	if err != nil {
		// 访问不存在的 key 会报错，应先用 has() 判断
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(rctx *core.RecommendContext) map[string]any {
	if rctx == nil {
		rctx = &core.RecommendContext{}
	}
	var nEvents, nBuys int64
	unique := make(map[int64]struct{})
	if rctx.Session != nil {
		nEvents = int64(len(rctx.Session.Events))
		for _, ev := range rctx.Session.Events {
			unique[ev.AID] = struct{}{}
			if ev.Type.IsBuy() {
				nBuys++
			}
		}
	}
	params := rctx.Params
	if params == nil {
		params = map[string]any{}
	}

	labels := make(map[string]any, len(rctx.Labels))
	for k, v := range rctx.Labels {
		labels[k] = v.Value
	}

	return map[string]any{
		"rctx": map[string]any{
			"scene":      rctx.Scene,
			"session_id": rctx.SessionID(),
			"params":     params,
			"n_events":   nEvents,
			"n_unique":   int64(len(unique)),
			"n_buys":     nBuys,
		},
		"label": labels,
	}
}

// Eval 是一次性编译并执行的便捷函数。
func Eval(expr string, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	e, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return e.Eval(rctx)
}
