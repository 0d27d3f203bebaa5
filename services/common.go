package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catering/rules"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uint
	Role   rules.Role
}

// RuleEnv bundles what every rule evaluation needs: the live thresholds, the
// clock and the permission table.
type RuleEnv struct {
	Store *rules.Store
	Clock rules.Clock
	Eval  rules.Evaluator
	Log   zerolog.Logger
}

// snapshot pins one config and one instant for a whole request so that every
// record in a list is judged against the same values.
func (e *RuleEnv) snapshot() (rules.RuleConfig, time.Time) {
	return e.Store.Current(), e.Clock.Now()
}

func (e *RuleEnv) decide(c Caller, action rules.Action, res rules.Resource, now time.Time) rules.Decision {
	return e.Eval.Decide(rules.Request{
		Action:   action,
		Role:     c.Role,
		Resource: res,
		CallerID: c.UserID,
		Now:      now,
	})
}

// fetchFailed logs a read failure and wraps it as rules.ErrDataFetch.
func (e *RuleEnv) fetchFailed(what string, err error) error {
	e.Log.Warn().Err(err).Str("resource", what).Msg("fetch failed")
	return fmt.Errorf("%w: %s", rules.ErrDataFetch, what)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// parseDate accepts a calendar date or a full timestamp. Calendar dates are
// midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
