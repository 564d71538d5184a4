package match

import "testing"

func TestRankEmptyQueryKeepsOrder(t *testing.T) {
	ranked := Rank([]string{"alpha", "beta", "gamma"}, "")
	if len(ranked) != 3 {
		t.Fatalf("expected all candidates, got %d", len(ranked))
	}
	for i, r := range ranked {
		if r.Index != i {
			t.Fatalf("expected original order, got %v", ranked)
		}
	}
}

func TestRankOrdersByDistance(t *testing.T) {
	candidates := []string{"internal/viewport/scroll.go", "view.go", "README.md"}
	ranked := Rank(candidates, "view")
	if len(ranked) < 2 {
		t.Fatalf("expected at least two matches, got %v", ranked)
	}
	if ranked[0].Index != 1 {
		t.Fatalf("expected the tightest match first, got %v", ranked)
	}
}

func TestRankExcludesNonMatches(t *testing.T) {
	ranked := Rank([]string{"main.go", "util_bc.go"}, "_bc")
	if len(ranked) != 1 || ranked[0].Index != 1 {
		t.Fatalf("expected only index 1 to match, got %v", ranked)
	}
}

func TestRankNoMatches(t *testing.T) {
	if ranked := Rank([]string{"alpha"}, "zzz"); len(ranked) != 0 {
		t.Fatalf("expected no matches, got %v", ranked)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	indices := Filter([]string{"cmd/run.go", "doc.md", "cmd/root.go"}, "cmd")
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Fatalf("expected [0 2], got %v", indices)
	}
}

func TestBestIndexPrefersExactThenPrefix(t *testing.T) {
	candidates := []string{"reload-index", "index", "indexer"}
	if ix := BestIndex(candidates, "index"); ix != 1 {
		t.Fatalf("expected exact match at 1, got %d", ix)
	}
	if ix := BestIndex(candidates, "inde"); ix != 1 {
		t.Fatalf("expected first prefix match at 1, got %d", ix)
	}
}

func TestBestIndexEmpty(t *testing.T) {
	if ix := BestIndex(nil, "x"); ix != -1 {
		t.Fatalf("expected -1 for empty candidates, got %d", ix)
	}
	if ix := BestIndex([]string{"a"}, ""); ix != 0 {
		t.Fatalf("expected 0 for empty query, got %d", ix)
	}
}
