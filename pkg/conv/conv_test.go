package conv

import "testing"

func TestConfigGet(t *testing.T) {
	m := map[string]any{"expr": "true", "then": "recall.clicks", "n": 3}

	if got := ConfigGet(m, "expr", ""); got != "true" {
		t.Errorf("ConfigGet(expr) = %q", got)
	}
	if got := ConfigGet(m, "n", ""); got != "" {
		t.Errorf("ConfigGet(n) with wrong type = %q, want default", got)
	}
	if got := ConfigGet(m, "missing", "x"); got != "x" {
		t.Errorf("ConfigGet(missing) = %q, want x", got)
	}
	if got := ConfigGet[int](nil, "n", 7); got != 7 {
		t.Errorf("ConfigGet(nil map) = %d, want 7", got)
	}
}

func TestTypeAssert(t *testing.T) {
	if sub, ok := TypeAssert[map[string]any](map[string]any{"a": 1}); !ok || sub["a"] != 1 {
		t.Errorf("TypeAssert(map) = %v, %v", sub, ok)
	}
	if _, ok := TypeAssert[map[string]any](nil); ok {
		t.Error("TypeAssert(nil) ok = true")
	}
}
