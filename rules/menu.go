package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryBeverage  Category = "beverage"
)

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// lunch service never opens before this hour, whatever the cutoff says.
const lunchOpensAt = 11

const (
	liquidationStockLevel = 15
	popularMenuThreshold  = 80
)

var liquidationFactor = decimal.RequireFromString("0.9")

// MenuItem is the rule-layer view of a menu record. Derived values (status,
// price, margin) are never stored on it.
type MenuItem struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	Cost         decimal.Decimal `json:"cost"`
	StockLevel   int             `json:"stockLevel"`
	Category     Category        `json:"category"`
	Seasonal     bool            `json:"seasonal"`
	Season       Season          `json:"season"`
	Popularity   int             `json:"popularity"`
	ActiveOrders int             `json:"activeOrders"`
	CreatedBy    uint            `json:"createdBy"`
}

type MenuStatusCode string

const (
	MenuAvailable  MenuStatusCode = "available"
	MenuOutOfStock MenuStatusCode = "out_of_stock"
	MenuLowStock   MenuStatusCode = "low_stock"
	MenuSeasonal   MenuStatusCode = "seasonal"
)

// StatusView is what the dashboard renders for a status: label, color and
// icon key.
type StatusView struct {
	Code  string `json:"status"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type MarginCheck struct {
	Valid        bool            `json:"valid"`
	Margin       float64         `json:"margin"`
	MinimumPrice decimal.Decimal `json:"minimumPrice"`
	Message      string          `json:"message,omitempty"`
}

type MenuClassification struct {
	Status       StatusView      `json:"status"`
	DynamicPrice decimal.Decimal `json:"dynamicPrice"`
	IsAvailable  bool            `json:"isAvailable"`
	Margin       MarginCheck     `json:"marginCheck"`
}

// InSeason reports whether month falls in the season's fixed three-month
// band. Unknown seasons are never in season.
func InSeason(s Season, month time.Month) bool {
	switch s {
	case SeasonSpring:
		return month >= time.March && month <= time.May
	case SeasonSummer:
		return month >= time.June && month <= time.August
	case SeasonFall:
		return month >= time.September && month <= time.November
	case SeasonWinter:
		return month == time.December || month == time.January || month == time.February
	}
	return false
}

// IsMenuAvailable checks the category serving window and the seasonal band.
func IsMenuAvailable(m MenuItem, cfg RuleConfig, now time.Time) bool {
	hour := now.Hour()
	switch m.Category {
	case CategoryBreakfast:
		if hour > cfg.BreakfastCutoff {
			return false
		}
	case CategoryLunch:
		if hour < lunchOpensAt || hour > cfg.LunchCutoff {
			return false
		}
	case CategoryDinner:
		if hour < cfg.DinnerStart {
			return false
		}
	}
	if m.Seasonal && !InSeason(m.Season, now.Month()) {
		return false
	}
	return true
}

// MenuStatus evaluates in fixed priority order; the first match wins.
func MenuStatus(m MenuItem, cfg RuleConfig, now time.Time) StatusView {
	switch {
	case m.StockLevel == 0:
		return StatusView{Code: string(MenuOutOfStock), Label: "Out of stock", Color: "error", Icon: "inventory"}
	case m.StockLevel <= cfg.LowStockThreshold:
		return StatusView{
			Code:  string(MenuLowStock),
			Label: fmt.Sprintf("Low stock (%d)", m.StockLevel),
			Color: "warning",
			Icon:  "warning",
		}
	case !IsMenuAvailable(m, cfg, now):
		return StatusView{Code: string(MenuSeasonal), Label: "Unavailable", Color: "default", Icon: "schedule"}
	}
	return StatusView{Code: string(MenuAvailable), Label: "Available", Color: "success", Icon: "restaurant"}
}

// InHappyHour is inclusive at both ends of the configured hour window.
func InHappyHour(cfg RuleConfig, now time.Time) bool {
	h := now.Hour()
	return h >= cfg.HappyHourStart && h <= cfg.HappyHourEnd
}

// DynamicPrice applies the happy-hour discount and the liquidation discount
// independently; when both apply they compose multiplicatively.
func DynamicPrice(m MenuItem, cfg RuleConfig, now time.Time) decimal.Decimal {
	price := m.BasePrice
	if InHappyHour(cfg, now) {
		price = price.Mul(decimal.NewFromInt(1).Sub(decimal.NewFromFloat(cfg.HappyHourDiscount)))
	}
	if m.StockLevel > liquidationStockLevel {
		price = price.Mul(liquidationFactor)
	}
	return price
}

// CheckMargin is advisory only. A non-positive price never passes.
func CheckMargin(m MenuItem, price decimal.Decimal, cfg RuleConfig) MarginCheck {
	minMargin := decimal.NewFromFloat(cfg.MinProfitMargin)
	check := MarginCheck{
		MinimumPrice: m.Cost.Mul(decimal.NewFromInt(1).Add(minMargin)),
	}
	if !price.IsPositive() {
		check.Message = "price must be positive to have a margin"
		return check
	}
	margin := price.Sub(m.Cost).Div(price)
	check.Margin = margin.InexactFloat64()
	check.Valid = margin.GreaterThanOrEqual(minMargin)
	if !check.Valid {
		check.Message = fmt.Sprintf("margin too low (%.1f%%), minimum %.0f%%",
			check.Margin*100, cfg.MinProfitMargin*100)
	}
	return check
}

// ClassifyMenu derives every display field of a menu. Status and price are
// computed independently of each other; the margin is checked on the base
// price.
func ClassifyMenu(m MenuItem, cfg RuleConfig, now time.Time) MenuClassification {
	return MenuClassification{
		Status:       MenuStatus(m, cfg, now),
		DynamicPrice: DynamicPrice(m, cfg, now),
		IsAvailable:  IsMenuAvailable(m, cfg, now),
		Margin:       CheckMargin(m, m.BasePrice, cfg),
	}
}

// DeletionCheck separates blocking errors from warnings that need a
// confirmation.
type DeletionCheck struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Err resolves the check into the error taxonomy. Warnings are dropped once
// the caller has confirmed.
func (d DeletionCheck) Err(confirmed bool) error {
	if len(d.Errors) > 0 {
		return &ValidationError{Issues: d.Errors}
	}
	if len(d.Warnings) > 0 && !confirmed {
		return &AdvisoryError{Warnings: d.Warnings}
	}
	return nil
}

// ValidateDeletion inspects m against the rest of the catalogue. catalogue
// may include m itself.
func ValidateDeletion(m MenuItem, catalogue []MenuItem) DeletionCheck {
	var d DeletionCheck
	if m.ActiveOrders > 0 {
		d.Errors = append(d.Errors, fmt.Sprintf("menu has %d active orders", m.ActiveOrders))
	}
	if m.Popularity > popularMenuThreshold {
		d.Warnings = append(d.Warnings, "this is a very popular menu")
	}
	others := 0
	for _, o := range catalogue {
		if o.Category == m.Category && o.ID != m.ID {
			others++
		}
	}
	if others == 0 {
		d.Warnings = append(d.Warnings, "this is the last menu in its category")
	}
	return d
}

type MenuMetrics struct {
	Total     int     `json:"totalMenus"`
	Available int     `json:"availableMenus"`
	LowStock  int     `json:"lowStockMenus"`
	AvgMargin float64 `json:"avgMargin"`
}

// SummarizeMenus computes the dashboard metrics. AvgMargin is a percentage
// over items with a positive base price.
func SummarizeMenus(items []MenuItem, cfg RuleConfig, now time.Time) MenuMetrics {
	mm := MenuMetrics{Total: len(items)}
	var sum float64
	priced := 0
	for _, m := range items {
		if IsMenuAvailable(m, cfg, now) && m.StockLevel > 0 {
			mm.Available++
		}
		if m.StockLevel <= cfg.LowStockThreshold {
			mm.LowStock++
		}
		if m.BasePrice.IsPositive() {
			sum += baseMargin(m)
			priced++
		}
	}
	if priced > 0 {
		mm.AvgMargin = sum / float64(priced) * 100
	}
	return mm
}

func baseMargin(m MenuItem) float64 {
	if !m.BasePrice.IsPositive() {
		return 0
	}
	return m.BasePrice.Sub(m.Cost).Div(m.BasePrice).InexactFloat64()
}
