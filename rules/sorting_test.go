package rules

import (
	"testing"
	"time"
)

func ids(items []MenuItem) []uint {
	out := make([]uint, len(items))
	for i, m := range items {
		out[i] = m.ID
	}
	return out
}

func TestSortMenus(t *testing.T) {
	cfg := DefaultRuleConfig()
	now := time.Date(2026, time.May, 15, 9, 0, 0, 0, time.UTC) // breakfast time

	dinner := menu(1, CategoryDinner, 10) // unavailable at 9
	dinner.Popularity = 99

	popular := menu(2, CategoryBeverage, 10)
	popular.Popularity = 90

	cheap := menu(3, CategoryBeverage, 10)
	cheap.Popularity = 85
	cheap.Cost = dec("2") // higher margin

	plain := menu(4, CategoryBeverage, 10)
	plain.Popularity = 85

	twin := menu(5, CategoryBeverage, 10)
	twin.Popularity = 85

	in := []MenuItem{dinner, plain, twin, popular, cheap}
	got := ids(SortMenus(in, cfg, now))
	// 90 is a higher band than 85; inside a band margin decides, then id
	want := []uint{2, 3, 4, 5, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	if in[0].ID != 1 {
		t.Fatal("input slice was reordered")
	}

	again := ids(SortMenus(in, cfg, now))
	for i := range got {
		if got[i] != again[i] {
			t.Fatal("sort is not deterministic")
		}
	}
}

func TestSortMenusPopularityGap(t *testing.T) {
	cfg := DefaultRuleConfig()
	now := time.Date(2026, time.May, 15, 9, 0, 0, 0, time.UTC)

	low := menu(1, CategoryBeverage, 10)
	low.Popularity = 50
	low.Cost = dec("1")
	high := menu(2, CategoryBeverage, 10)
	high.Popularity = 70

	got := ids(SortMenus([]MenuItem{low, high}, cfg, now))
	if got[0] != 2 {
		t.Fatalf("higher popularity band should win over margin: %v", got)
	}
}

func TestSortMenusIgnoresInputOrder(t *testing.T) {
	cfg := DefaultRuleConfig()
	now := time.Date(2026, time.May, 15, 9, 0, 0, 0, time.UTC)

	var items []MenuItem
	for i, pop := range []int{50, 58, 66, 71, 12} {
		m := menu(uint(i+1), CategoryBeverage, 10)
		m.Popularity = pop
		items = append(items, m)
	}
	want := []uint{4, 3, 1, 2, 5}

	perms := [][]int{{0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}, {0, 2, 1, 4, 3}, {2, 0, 4, 1, 3}, {3, 4, 0, 2, 1}}
	for _, perm := range perms {
		in := make([]MenuItem, len(perm))
		for i, j := range perm {
			in[i] = items[j]
		}
		got := ids(SortMenus(in, cfg, now))
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("input %v sorted to %v, want %v", perm, got, want)
			}
		}
	}
}
