package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xiaoye-hua/otto-kaggle/core"
	"github.com/xiaoye-hua/otto-kaggle/pipeline"
	"github.com/xiaoye-hua/otto-kaggle/pkg/logging"
	"github.com/xiaoye-hua/otto-kaggle/recall"
	"github.com/xiaoye-hua/otto-kaggle/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "app.yaml", `
rec_num: 4
type_weights: {click: 1, carts: 5, orders: 2}
curves:
  clicks: {start: 0.2, end: 1, base: 2}
dedup_fallback: true
tables: {top_n: 10}
batch: {workers: 3, skip_failed: true}
log: {level: debug, format: console}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Batch.Workers != 3 || !cfg.Batch.SkipFailed || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Tables.Clicks != "covisit:clicks" || cfg.Tables.TopN != 10 {
		t.Errorf("tables = %+v, want defaults kept", cfg.Tables)
	}

	c, err := cfg.Configuration()
	if err != nil {
		t.Fatalf("Configuration() error = %v", err)
	}
	want := map[core.EventType]float64{core.EventClick: 1, core.EventCart: 5, core.EventOrder: 2}
	if !reflect.DeepEqual(c.TypeWeights, want) {
		t.Errorf("TypeWeights = %v, want %v", c.TypeWeights, want)
	}
	if c.RecNum != 4 || !c.DedupFallback || c.ClickCurve.Start != 0.2 || c.BuyCurve != core.BuyCurve {
		t.Errorf("Configuration = %+v", c)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad yaml", yaml: "rec_num: [1"},
		{name: "zero rec_num", yaml: "rec_num: 0"},
		{name: "unknown event type", yaml: "type_weights: {views: 1}"},
		{name: "duplicate event type", yaml: "type_weights: {click: 1, clicks: 2}"},
		{name: "top_n below rec_num", yaml: "rec_num: 6\ntables: {top_n: 2}\nbatch: {skip_failed: true}"},
		{name: "flat curve", yaml: "curves: {buys: {start: 1, end: 1, base: 2}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !core.IsConfigError(err) {
				t.Errorf("Parse() error = %v, want CONFIG_ERROR", err)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func seedStore(t *testing.T, keys TableKeys) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	matrices := map[string]map[int64][]int64{
		keys.Clicks:  {5: {7, 8}, 6: {8, 9}},
		keys.Buys:    {5: {11}},
		keys.Buy2Buy: {11: {12}},
	}
	for key, m := range matrices {
		if err := recall.SaveCovisitMatrix(ctx, s, key, m); err != nil {
			t.Fatalf("SaveCovisitMatrix(%s) error = %v", key, err)
		}
	}
	if err := recall.SavePopularList(ctx, s, keys.TopClicks, []int64{100, 101, 102, 103}); err != nil {
		t.Fatal(err)
	}
	if err := recall.SavePopularList(ctx, s, keys.TopOrders, []int64{200, 201, 202, 203}); err != nil {
		t.Fatal(err)
	}
	return s
}

func clickSession(aids ...int64) *core.Session {
	s := &core.Session{ID: 1}
	for _, aid := range aids {
		s.Events = append(s.Events, core.Event{AID: aid, Type: core.EventClick})
	}
	return s
}

func TestBuildWith(t *testing.T) {
	cfg, err := Parse([]byte("rec_num: 4"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	log := logging.Nop()
	app, err := cfg.BuildWith(context.Background(), seedStore(t, cfg.Tables), &log)
	if err != nil {
		t.Fatalf("BuildWith() error = %v", err)
	}
	defer app.Close()

	res, err := app.Generator.SuggestClicks(context.Background(), clickSession(5, 6))
	if err != nil {
		t.Fatalf("SuggestClicks() error = %v", err)
	}
	if want := []int64{6, 5, 8, 9}; !reflect.DeepEqual(res.AIDs, want) {
		t.Errorf("AIDs = %v, want %v", res.AIDs, want)
	}

	out, _, err := app.Runner.RunBuys(context.Background(), []*core.Session{clickSession(5, 6)})
	if err != nil {
		t.Fatalf("RunBuys() error = %v", err)
	}
	if len(out) != 1 || len(out[0].AIDs) != 4 {
		t.Errorf("RunBuys() = %+v", out)
	}

	if p, err := app.Pipeline(); p != nil || err != nil {
		t.Errorf("Pipeline() without file = %v, %v", p, err)
	}
}

func TestBuildMissingTable(t *testing.T) {
	cfg := Default()
	log := logging.Nop()
	if _, err := cfg.Build(context.Background(), &log); !core.IsNotFound(err) {
		t.Errorf("Build() on empty store error = %v, want NOT_FOUND", err)
	}
}

func TestBuildRejectsShortPopularList(t *testing.T) {
	// 热门列表只有 4 个，rec_num 为 6 时短 session 无法补齐
	cfg, err := Parse([]byte("rec_num: 6\nbatch: {skip_failed: true}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	log := logging.Nop()
	app, err := cfg.BuildWith(context.Background(), seedStore(t, cfg.Tables), &log)
	if !core.IsConfigError(err) {
		t.Fatalf("BuildWith() error = %v, want CONFIG_ERROR", err)
	}
	if app != nil {
		t.Errorf("BuildWith() app = %+v, want nil", app)
	}
}

func TestPipelineFromFile(t *testing.T) {
	path := writeFile(t, "pipeline.yaml", `
pipeline:
  name: session_candidates
  nodes:
    - type: route
      config:
        expr: 'rctx.scene == "clicks"'
        then: recall.clicks
        else: {type: recall.buys}
`)
	cfg, _ := Parse([]byte("rec_num: 4"))
	cfg.Pipeline = path
	log := logging.Nop()
	app, err := cfg.BuildWith(context.Background(), seedStore(t, cfg.Tables), &log)
	if err != nil {
		t.Fatalf("BuildWith() error = %v", err)
	}
	defer app.Close()

	p, err := app.Pipeline()
	if err != nil {
		t.Fatalf("Pipeline() error = %v", err)
	}
	rctx := &core.RecommendContext{Scene: "clicks", Session: clickSession(5, 6)}
	items, err := p.Run(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	if want := []int64{6, 5, 8, 9}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestValidatePipelineConfig(t *testing.T) {
	var pc pipeline.Config
	pc.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "recall.clicks"}, {Type: "rank.lr"}}
	if err := ValidatePipelineConfig(&pc); err == nil {
		t.Error("ValidatePipelineConfig() expected error for rank.lr")
	}
	pc.Pipeline.Nodes = pc.Pipeline.Nodes[:1]
	if err := ValidatePipelineConfig(&pc); err != nil {
		t.Errorf("ValidatePipelineConfig() error = %v", err)
	}

	types := SupportedTypes()
	for _, want := range []string{"recall.buys", "recall.clicks", "route"} {
		found := false
		for _, typ := range types {
			found = found || typ == want
		}
		if !found {
			t.Errorf("SupportedTypes() = %v, missing %s", types, want)
		}
	}

	f := DefaultFactory(nil)
	if _, err := f.Build("recall.clicks", nil); err == nil {
		t.Error("Build(recall.clicks) without generator expected error")
	}
	if _, err := f.Build("route", map[string]any{"expr": "true", "then": 1, "else": "recall.buys"}); err == nil {
		t.Error("Build(route) with bad branch expected error")
	}
}
