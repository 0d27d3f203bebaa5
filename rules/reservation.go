package rules

import (
	"fmt"
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationPending   ReservationStatus = "pending"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
	ReservationCompleted ReservationStatus = "completed"
)

var reservationViews = map[ReservationStatus]StatusView{
	ReservationConfirmed: {Code: string(ReservationConfirmed), Label: "Confirmed", Color: "success", Icon: "check_circle"},
	ReservationPending:   {Code: string(ReservationPending), Label: "Pending", Color: "warning", Icon: "schedule"},
	ReservationCancelled: {Code: string(ReservationCancelled), Label: "Cancelled", Color: "error", Icon: "cancel"},
	ReservationNoShow:    {Code: string(ReservationNoShow), Label: "No show", Color: "error", Icon: "warning"},
	ReservationCompleted: {Code: string(ReservationCompleted), Label: "Completed", Color: "info", Icon: "check_circle"},
}

func (s ReservationStatus) View() StatusView { return reservationViews[s] }

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	_, ok := reservationViews[s]
	return ok
}

// Reservation is the rule-layer view of a booking. Date carries only the
// calendar day; Time is the scheduled time of day. An empty Status means the
// status is computed.
type Reservation struct {
	ID         uint              `json:"id"`
	ClientID   uint              `json:"clientId"`
	MenuID     uint              `json:"menuId"`
	Date       time.Time         `json:"date"`
	Time       TimeOfDay         `json:"time"`
	GuestCount int               `json:"guestCount"`
	Status     ReservationStatus `json:"status,omitempty"`
}

// ScheduledAt combines Date and Time in loc.
func (r Reservation) ScheduledAt(loc *time.Location) time.Time {
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, r.Time.Hour(), r.Time.Minute(), 0, 0, loc)
}

func hoursUntil(r Reservation, now time.Time) float64 {
	return r.ScheduledAt(now.Location()).Sub(now).Hours()
}

// ClassifyReservation returns the explicit status when one is set. Otherwise
// a booking more than the no-show tolerance in the past is a no-show, a
// future one is confirmed, and one inside the tolerance is pending.
func ClassifyReservation(r Reservation, cfg RuleConfig, now time.Time) ReservationStatus {
	if r.Status != "" {
		return r.Status
	}
	at := r.ScheduledAt(now.Location())
	if now.Sub(at).Minutes() > cfg.NoShowThresholdMinutes {
		return ReservationNoShow
	}
	if at.After(now) {
		return ReservationConfirmed
	}
	return ReservationPending
}

func CanCancelReservation(r Reservation, cfg RuleConfig, now time.Time) bool {
	switch ClassifyReservation(r, cfg, now) {
	case ReservationCancelled, ReservationCompleted:
		return false
	}
	return hoursUntil(r, now) >= cfg.CancellationDeadlineHours
}

func IsUpcomingReservation(r Reservation, cfg RuleConfig, now time.Time) bool {
	h := hoursUntil(r, now)
	return h > 0 && h <= cfg.UpcomingThresholdHours
}

// ValidateReservation runs every schedule check and returns all issues found.
func ValidateReservation(r Reservation, cfg RuleConfig) []string {
	var issues []string
	if r.GuestCount > cfg.MaxGuestsPerReservation {
		issues = append(issues, fmt.Sprintf("exceeds maximum capacity (%d guests)", cfg.MaxGuestsPerReservation))
	}
	if r.Time < cfg.OperatingOpen || r.Time > cfg.LastReservation {
		issues = append(issues, fmt.Sprintf("outside reservation hours (%s - %s)", cfg.OperatingOpen, cfg.LastReservation))
	}
	return issues
}

// ReservationAlerts summarizes a list for the dashboard banner.
func ReservationAlerts(rs []Reservation, cfg RuleConfig, now time.Time) []Alert {
	var alerts []Alert
	upcoming, noShows := 0, 0
	for _, r := range rs {
		if IsUpcomingReservation(r, cfg, now) {
			upcoming++
		}
		if ClassifyReservation(r, cfg, now) == ReservationNoShow && sameDate(r.Date, now) {
			noShows++
		}
	}
	if upcoming > 0 {
		alerts = append(alerts, Alert{
			Type:     "upcoming",
			Message:  fmt.Sprintf("%d reservation(s) in the next %g hours", upcoming, cfg.UpcomingThresholdHours),
			Severity: "info",
		})
	}
	if noShows > 0 {
		alerts = append(alerts, Alert{
			Type:     "no_show",
			Message:  fmt.Sprintf("%d reservation(s) did not show up today", noShows),
			Severity: "warning",
		})
	}
	return alerts
}
