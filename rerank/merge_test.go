package rerank

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name        string
		history     []int64
		ranked      []int64
		fallback    []int64
		n           int
		dedup       bool
		wantAIDs    []int64
		wantSources []string
	}{
		{
			name:        "history plus covisit fills exactly",
			history:     []int64{6, 5},
			ranked:      []int64{8, 9, 7},
			fallback:    []int64{100, 101},
			n:           5,
			wantAIDs:    []int64{6, 5, 8, 9, 7},
			wantSources: []string{"history", "history", "covisit", "covisit", "covisit"},
		},
		{
			name:        "ranked truncated to remaining slots",
			history:     []int64{1, 2},
			ranked:      []int64{3, 4, 5},
			n:           3,
			wantAIDs:    []int64{1, 2, 3},
			wantSources: []string{"history", "history", "covisit"},
		},
		{
			name:        "popular fallback fills one slot",
			history:     []int64{1, 2},
			fallback:    []int64{100, 101},
			n:           3,
			wantAIDs:    []int64{1, 2, 100},
			wantSources: []string{"history", "history", "popular"},
		},
		{
			name:        "fallback duplicates kept by default",
			history:     []int64{100},
			fallback:    []int64{100, 101},
			n:           2,
			wantAIDs:    []int64{100, 100},
			wantSources: []string{"history", "popular"},
		},
		{
			name:        "fallback duplicates skipped when enabled",
			history:     []int64{100},
			fallback:    []int64{100, 101},
			n:           2,
			dedup:       true,
			wantAIDs:    []int64{100, 101},
			wantSources: []string{"history", "popular"},
		},
		{
			name:        "long history cut to most recent",
			history:     []int64{9, 8, 7, 6},
			ranked:      []int64{1},
			n:           2,
			wantAIDs:    []int64{9, 8},
			wantSources: []string{"history", "history"},
		},
		{
			name:        "short fallback leaves gap",
			history:     []int64{1},
			fallback:    []int64{2},
			n:           3,
			wantAIDs:    []int64{1, 2},
			wantSources: []string{"history", "popular"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.history, tt.ranked, tt.fallback, tt.n, tt.dedup)
			if !reflect.DeepEqual(got.AIDs, tt.wantAIDs) {
				t.Errorf("AIDs = %v, want %v", got.AIDs, tt.wantAIDs)
			}
			if !reflect.DeepEqual(got.Sources, tt.wantSources) {
				t.Errorf("Sources = %v, want %v", got.Sources, tt.wantSources)
			}
		})
	}
}
