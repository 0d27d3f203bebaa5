package rules

import (
	"sort"
	"time"
)

// popularityBand groups popularity scores; only a different band decides
// ordering on its own. Bands keep the comparison transitive.
const popularityBand = 10

// SortMenus returns a copy of items in business-priority order: available
// items first, then higher popularity band, then higher base margin.
// Remaining ties fall back to id so the order is deterministic.
func SortMenus(items []MenuItem, cfg RuleConfig, now time.Time) []MenuItem {
	out := make([]MenuItem, len(items))
	copy(out, items)

	avail := make(map[uint]bool, len(out))
	for _, m := range out {
		avail[m.ID] = IsMenuAvailable(m, cfg, now)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if avail[a.ID] != avail[b.ID] {
			return avail[a.ID]
		}
		if ba, bb := a.Popularity/popularityBand, b.Popularity/popularityBand; ba != bb {
			return ba > bb
		}
		ma, mb := baseMargin(a), baseMargin(b)
		if ma != mb {
			return ma > mb
		}
		return a.ID < b.ID
	})
	return out
}
