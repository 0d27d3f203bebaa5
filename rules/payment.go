package rules

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	consolidationDays  = 7
	duplicateAmountGap = 10
)

var highValueAmount = decimal.NewFromInt(1000)

type Payment struct {
	ID            uint            `json:"id"`
	ReservationID uint            `json:"reservationId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

type AgeBucket string

const (
	BucketScheduled    AgeBucket = "scheduled"
	BucketRecent       AgeBucket = "recent"
	BucketProcessed    AgeBucket = "processed"
	BucketConsolidated AgeBucket = "consolidated"
)

var bucketViews = map[AgeBucket]StatusView{
	BucketScheduled:    {Code: string(BucketScheduled), Label: "Scheduled", Color: "info", Icon: "pending"},
	BucketRecent:       {Code: string(BucketRecent), Label: "Recent", Color: "success", Icon: "check_circle"},
	BucketProcessed:    {Code: string(BucketProcessed), Label: "Processed", Color: "success", Icon: "security_update_good"},
	BucketConsolidated: {Code: string(BucketConsolidated), Label: "Consolidated", Color: "primary", Icon: "account_balance"},
}

func (b AgeBucket) View() StatusView { return bucketViews[b] }

// DaysSince is floor((now - date) / 24h). Future dates give negative values.
func DaysSince(date, now time.Time) int {
	return int(math.Floor(float64(now.Sub(date)) / float64(24*time.Hour)))
}

func PaymentAgeBucket(p Payment, now time.Time) AgeBucket {
	if p.Date.After(now) {
		return BucketScheduled
	}
	switch d := DaysSince(p.Date, now); {
	case d == 0:
		return BucketRecent
	case d <= consolidationDays:
		return BucketProcessed
	}
	return BucketConsolidated
}

// CanEditPayment: superadmin always; admin while the payment is at most
// seven days old (including scheduled ones); nobody else once consolidated.
func CanEditPayment(p Payment, role Role, now time.Time) Decision {
	days := DaysSince(p.Date, now)
	if role == RoleSuperAdmin {
		return allow("superadmin: full access")
	}
	if role == RoleAdmin && days <= consolidationDays {
		return allow("recent payment, editing allowed")
	}
	if days > consolidationDays {
		return deny("consolidated payment cannot be edited after 7 days")
	}
	if p.Date.After(now) && !role.In(RoleAdmin, RoleSuperAdmin) {
		return deny("insufficient permissions to edit scheduled payments")
	}
	return deny("insufficient permissions")
}

// CanDeletePayment runs its checks in order and returns the first failure:
// consolidated age, then high value, then the role default.
func CanDeletePayment(p Payment, role Role, now time.Time) Decision {
	if DaysSince(p.Date, now) > consolidationDays && role != RoleSuperAdmin {
		return deny("only superadmin can delete consolidated payments")
	}
	if p.Amount.GreaterThan(highValueAmount) && role != RoleSuperAdmin {
		return deny("only superadmin can delete payments above 1000")
	}
	if role.In(RoleAdmin, RoleSuperAdmin) {
		return allow("administrative permissions")
	}
	return deny("insufficient permissions")
}

type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ClientNameFunc resolves the client name behind a reservation. An empty
// result means unknown.
type ClientNameFunc func(reservationID uint) string

// PaymentAlerts flags high-value, possibly duplicated and future-dated
// payments. Duplicates are a heuristic: same calendar date, same resolved
// client name and an amount within 10. Payments whose client is unknown
// are never reported as duplicates.
func PaymentAlerts(p Payment, peers []Payment, clientName ClientNameFunc, now time.Time) []Alert {
	var alerts []Alert
	if p.Amount.GreaterThan(highValueAmount) {
		alerts = append(alerts, Alert{Type: "high_value", Message: "high value payment", Severity: "warning"})
	}

	if name := clientName(p.ReservationID); name != "" && hasDuplicate(p, peers, name, clientName) {
		alerts = append(alerts, Alert{Type: "duplicate", Message: "possible duplicate", Severity: "error"})
	}

	if p.Date.After(now) {
		alerts = append(alerts, Alert{Type: "future", Message: "scheduled payment", Severity: "info"})
	}
	return alerts
}

func hasDuplicate(p Payment, peers []Payment, name string, clientName ClientNameFunc) bool {
	gap := decimal.NewFromInt(duplicateAmountGap)
	for _, o := range peers {
		if o.ID == p.ID || !sameDate(o.Date, p.Date) {
			continue
		}
		if clientName(o.ReservationID) != name {
			continue
		}
		if o.Amount.Sub(p.Amount).Abs().LessThan(gap) {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
