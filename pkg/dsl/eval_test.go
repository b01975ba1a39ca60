package dsl

import (
	"testing"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pkg/utils"
)

func TestEval(t *testing.T) {
	rctx := &core.RecommendContext{
		Scene: "orders",
		Session: &core.Session{ID: 12, Events: []core.Event{
			{AID: 1, Type: core.EventClick},
			{AID: 1, Type: core.EventCart},
			{AID: 2, Type: core.EventClick},
		}},
		Params: map[string]any{"ab_bucket": "b"},
	}
	rctx.PutLabel("segment", utils.Label{Value: "heavy", Source: "profile"})

	tests := []struct {
		expr    string
		want    bool
		wantErr bool
	}{
		{expr: "", want: true},
		{expr: `rctx.scene == "orders"`, want: true},
		{expr: `rctx.scene == "clicks"`, want: false},
		{expr: `rctx.n_events == 3 && rctx.n_unique == 2 && rctx.n_buys == 1`, want: true},
		{expr: `rctx.session_id == 12`, want: true},
		{expr: `rctx.params.ab_bucket == "b"`, want: true},
		{expr: `label.segment == "heavy"`, want: true},
		{expr: `has(label.missing)`, want: false},
		{expr: `rctx.scene`, wantErr: true},
		{expr: `rctx.scene ==`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Eval(tt.expr, rctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Eval(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompiledExprNilContext(t *testing.T) {
	e, err := Compile(`rctx.n_events == 0`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	got, err := e.Eval(nil)
	if err != nil || !got {
		t.Errorf("Eval(nil) = %v, %v; want true", got, err)
	}
	if e.String() != `rctx.n_events == 0` {
		t.Errorf("String() = %q", e.String())
	}
}
