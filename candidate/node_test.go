package candidate

import (
	"context"
	"testing"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
	"github.com/xiaoye-hua/otto-kaggle/recall"
)

func testGeneratorForNodes(t *testing.T) *Generator {
	t.Helper()
	tables := buyTables()
	tables.Clicks = recall.NewCovisitMatrix("clicks", map[int64][]int64{5: {7, 8}, 6: {8, 9}})
	tables.TopClicks = recall.NewPopularList("top_clicks", []int64{100, 101, 102, 103})
	return newTestGenerator(t, 5, tables)
}

func TestRouteNodePipeline(t *testing.T) {
	g := testGeneratorForNodes(t)
	route, err := NewRouteNode(`rctx.scene == "clicks"`, &ClickNode{Generator: g}, &BuyNode{Generator: g})
	if err != nil {
		t.Fatalf("NewRouteNode() error = %v", err)
	}
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{route}}

	tests := []struct {
		name      string
		scene     string
		wantRoute string
		wantIDs   []int64
		wantBuy   bool
	}{
		{name: "clicks scene", scene: "clicks", wantRoute: "recall.clicks", wantIDs: []int64{6, 5, 8, 9, 7}},
		{name: "orders scene", scene: "orders", wantRoute: "recall.buys", wantIDs: []int64{6, 5, 500, 501, 502}, wantBuy: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := clicks(5, 6)
			session.ID = 42
			rctx := &core.RecommendContext{Scene: tt.scene, Session: session}
			items, err := p.Run(context.Background(), rctx, nil)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("len(items) = %d, want %d", len(items), len(tt.wantIDs))
			}
			for i, it := range items {
				if it.ID != tt.wantIDs[i] {
					t.Errorf("items[%d].ID = %d, want %d", i, it.ID, tt.wantIDs[i])
				}
				_, hasCounts := it.Features[core.FeatureCartOrderNum]
				if hasCounts != tt.wantBuy {
					t.Errorf("items[%d] has cart_order_num = %v, want %v", i, hasCounts, tt.wantBuy)
				}
			}
			if lbl, ok := rctx.GetLabel("route"); !ok || lbl.Value != tt.wantRoute {
				t.Errorf("route label = %+v, want %s", lbl, tt.wantRoute)
			}
			if sid, _ := items[0].Meta[core.MetaSessionID].(int64); sid != 42 {
				t.Errorf("items[0] session_id = %v, want 42", items[0].Meta[core.MetaSessionID])
			}
			if _, has := items[0].Meta[core.MetaShortcut]; has == tt.wantBuy {
				t.Errorf("items[0] shortcut meta present = %v, want %v", has, !tt.wantBuy)
			}
			if items[0].Labels["recall_source"].Value != "history" {
				t.Errorf("items[0] recall_source = %+v", items[0].Labels["recall_source"])
			}
		})
	}
}

func TestClickNodeShortcutHasNoScores(t *testing.T) {
	g := testGeneratorForNodes(t)
	node := &ClickNode{Generator: g}
	items, err := node.Process(context.Background(), &core.RecommendContext{Session: clicks(1, 2, 3, 4, 5, 6)}, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	for _, it := range items {
		if _, ok := it.Features[core.FeatureTypeWeight]; ok {
			t.Errorf("item %d has type_weight in the weighted branch", it.ID)
		}
		if it.Meta[core.MetaShortcut] != true {
			t.Errorf("item %d shortcut meta = %v, want true", it.ID, it.Meta[core.MetaShortcut])
		}
	}
}

func TestNodesPropagateErrors(t *testing.T) {
	g := testGeneratorForNodes(t)
	ctx := context.Background()
	if _, err := (&ClickNode{Generator: g}).Process(ctx, nil, nil); !core.IsInputError(err) {
		t.Errorf("nil rctx error = %v, want INVALID_INPUT", err)
	}
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{&BuyNode{Generator: g}}}
	if _, err := p.Run(ctx, &core.RecommendContext{Session: &core.Session{}}, nil); !core.IsInputError(err) {
		t.Errorf("empty session error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewRouteNode(`rctx.scene ==`, &ClickNode{}, &BuyNode{}); err == nil {
		t.Error("NewRouteNode(bad expr) expected error")
	}
	if _, err := NewRouteNode(`true`, nil, &BuyNode{}); err == nil {
		t.Error("NewRouteNode(nil branch) expected error")
	}
}
