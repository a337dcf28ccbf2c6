package pairs

import (
	"testing"

	"github.com/soundprediction/relex/pkg/types"
)

func mentions(n int) []types.ArgumentMention {
	args := make([]types.ArgumentMention, n)
	for i := range args {
		args[i] = types.ArgumentMention{Span: types.Span{Begin: i * 10, End: i*10 + 5}}
	}
	return args
}

func TestGenerateSingleDirection(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 8} {
		args := mentions(n)
		got := Generate(args, false)

		want := n * (n - 1) / 2
		if len(got) != want {
			t.Errorf("n=%d: got %d pairs, want %d", n, len(got), want)
			continue
		}

		// Every pair must have the earlier mention first, and no duplicates.
		seen := make(map[[2]int]bool)
		for _, p := range got {
			if p.Arg1.Begin >= p.Arg2.Begin {
				t.Errorf("n=%d: pair (%d,%d) not in sentence order", n, p.Arg1.Begin, p.Arg2.Begin)
			}
			key := [2]int{p.Arg1.Begin, p.Arg2.Begin}
			if seen[key] {
				t.Errorf("n=%d: duplicate pair %v", n, key)
			}
			seen[key] = true
		}
	}
}

func TestGenerateBothDirections(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5} {
		args := mentions(n)
		got := Generate(args, true)

		want := n * (n - 1)
		if len(got) != want {
			t.Errorf("n=%d: got %d pairs, want %d", n, len(got), want)
			continue
		}

		seen := make(map[[2]int]bool)
		for _, p := range got {
			if p.Arg1 == p.Arg2 {
				t.Errorf("n=%d: self-pair emitted", n)
			}
			seen[[2]int{p.Arg1.Begin, p.Arg2.Begin}] = true
		}

		// Every ordered pair must be covered.
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if !seen[[2]int{i * 10, j * 10}] {
					t.Errorf("n=%d: ordered pair (%d,%d) missing", n, i, j)
				}
			}
		}
	}
}

func TestGenerateOrderIsDeterministic(t *testing.T) {
	args := mentions(4)

	first := Generate(args, false)
	second := Generate(args, false)
	if len(first) != len(second) {
		t.Fatal("pair counts differ between runs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pair %d differs between runs", i)
		}
	}

	// The single-direction enumeration is row-major over (i, j).
	want := [][2]int{{0, 10}, {0, 20}, {0, 30}, {10, 20}, {10, 30}, {20, 30}}
	for i, p := range first {
		if p.Arg1.Begin != want[i][0] || p.Arg2.Begin != want[i][1] {
			t.Errorf("pair %d = (%d,%d), want %v", i, p.Arg1.Begin, p.Arg2.Begin, want[i])
		}
	}
}
