package rules

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time as minutes past midnight. It encodes as
// "HH:MM".
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS"; seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()) }

func (t TimeOfDay) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RuleConfig holds every tunable threshold used by the engines. It is
// treated as an immutable value once published through a Store.
type RuleConfig struct {
	HappyHourStart    int     `json:"happyHourStart"`
	HappyHourEnd      int     `json:"happyHourEnd"`
	HappyHourDiscount float64 `json:"happyHourDiscount"`

	BreakfastCutoff int `json:"breakfastCutoff"`
	LunchCutoff     int `json:"lunchCutoff"`
	DinnerStart     int `json:"dinnerStart"`

	MinProfitMargin   float64 `json:"minProfitMargin"`
	LowStockThreshold int     `json:"lowStockThreshold"`

	CancellationDeadlineHours float64 `json:"cancellationDeadlineHours"`
	UpcomingThresholdHours    float64 `json:"upcomingThresholdHours"`
	NoShowThresholdMinutes    float64 `json:"noShowThresholdMinutes"`
	MaxGuestsPerReservation   int     `json:"maxGuestsPerReservation"`

	OperatingOpen   TimeOfDay `json:"operatingOpen"`
	OperatingClose  TimeOfDay `json:"operatingClose"`
	LastReservation TimeOfDay `json:"operatingLastReservation"`
}

// DefaultRuleConfig returns the thresholds the dashboard shipped with.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		HappyHourStart:            15,
		HappyHourEnd:              18,
		HappyHourDiscount:         0.15,
		BreakfastCutoff:           11,
		LunchCutoff:               16,
		DinnerStart:               18,
		MinProfitMargin:           0.30,
		LowStockThreshold:         5,
		CancellationDeadlineHours: 24,
		UpcomingThresholdHours:    2,
		NoShowThresholdMinutes:    30,
		MaxGuestsPerReservation:   20,
		OperatingOpen:             MustTimeOfDay("11:00"),
		OperatingClose:            MustTimeOfDay("22:00"),
		LastReservation:           MustTimeOfDay("21:00"),
	}
}

func validHour(h int) bool { return h >= 0 && h <= 23 }

// Validate checks field ranges. All problems are reported together.
func (c RuleConfig) Validate() error {
	var issues []string
	for name, h := range map[string]int{
		"happyHourStart":  c.HappyHourStart,
		"happyHourEnd":    c.HappyHourEnd,
		"breakfastCutoff": c.BreakfastCutoff,
		"lunchCutoff":     c.LunchCutoff,
		"dinnerStart":     c.DinnerStart,
	} {
		if !validHour(h) {
			issues = append(issues, fmt.Sprintf("%s must be an hour in [0,23], got %d", name, h))
		}
	}
	if c.HappyHourDiscount < 0 || c.HappyHourDiscount > 1 {
		issues = append(issues, "happyHourDiscount must be within [0,1]")
	}
	if c.MinProfitMargin < 0 || c.MinProfitMargin > 1 {
		issues = append(issues, "minProfitMargin must be within [0,1]")
	}
	if c.LowStockThreshold < 0 {
		issues = append(issues, "lowStockThreshold must not be negative")
	}
	if c.CancellationDeadlineHours < 0 || c.UpcomingThresholdHours < 0 || c.NoShowThresholdMinutes < 0 {
		issues = append(issues, "reservation thresholds must not be negative")
	}
	if c.MaxGuestsPerReservation <= 0 {
		issues = append(issues, "maxGuestsPerReservation must be positive")
	}
	if c.OperatingOpen > c.LastReservation || c.LastReservation > c.OperatingClose {
		issues = append(issues, "operating hours must satisfy open <= last reservation <= close")
	}
	if len(issues) > 0 {
		// map iteration above is unordered
		sort.Strings(issues)
		return &ValidationError{Issues: issues}
	}
	return nil
}
