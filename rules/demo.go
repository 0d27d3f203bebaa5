package rules

import "github.com/shopspring/decimal"

// MenuGaps flags which optional menu fields were absent in the stored record.
type MenuGaps struct {
	StockLevel   bool
	Cost         bool
	Popularity   bool
	Category     bool
	CreatedBy    bool
	ActiveOrders bool
	Seasonal     bool
	Season       bool
}

var (
	demoCategories = [...]Category{CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryBeverage}
	demoSeasons    = [...]Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}
)

// EnrichMenu fills the flagged gaps with values derived from the id. It is
// seed data for demo environments only and must not run against real data.
// Items with an even id are attributed to callerID.
func EnrichMenu(m MenuItem, gaps MenuGaps, callerID uint) MenuItem {
	id := int(m.ID)
	if gaps.StockLevel {
		m.StockLevel = (id*7)%20 + 1
	}
	if gaps.Cost {
		ratio := decimal.NewFromFloat(0.3).Add(decimal.NewFromInt(int64(id % 10)).Div(decimal.NewFromInt(20)))
		m.Cost = m.BasePrice.Mul(ratio)
	}
	if gaps.Popularity {
		m.Popularity = 50 + (id*13)%50
	}
	if gaps.Category {
		m.Category = demoCategories[id%4]
	}
	if gaps.CreatedBy && id%2 == 0 {
		m.CreatedBy = callerID
	}
	if gaps.ActiveOrders {
		m.ActiveOrders = id % 5
	}
	if gaps.Seasonal {
		m.Seasonal = id%5 == 0
	}
	if gaps.Season {
		m.Season = demoSeasons[id%4]
	}
	return m
}
