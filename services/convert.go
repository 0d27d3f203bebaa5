package services

import (
	"catering/entity"
	"catering/rules"
)

// menuItem converts a stored menu into the rule view and reports which
// optional fields were missing.
func menuItem(m entity.Menu) (rules.MenuItem, rules.MenuGaps) {
	item := rules.MenuItem{
		ID:          m.ID,
		Name:        m.MenuName,
		Description: m.Description,
		BasePrice:   m.Price,
		Category:    rules.Category(m.Category),
		Season:      rules.Season(m.Season),
	}
	var gaps rules.MenuGaps
	if m.Cost.Valid {
		item.Cost = m.Cost.Decimal
	} else {
		gaps.Cost = true
	}
	if m.StockLevel != nil {
		item.StockLevel = *m.StockLevel
	} else {
		gaps.StockLevel = true
	}
	if m.Popularity != nil {
		item.Popularity = *m.Popularity
	} else {
		gaps.Popularity = true
	}
	if m.ActiveOrders != nil {
		item.ActiveOrders = *m.ActiveOrders
	} else {
		gaps.ActiveOrders = true
	}
	if m.Seasonal != nil {
		item.Seasonal = *m.Seasonal
	} else {
		gaps.Seasonal = true
	}
	if m.CreatedByID != nil {
		item.CreatedBy = *m.CreatedByID
	} else {
		gaps.CreatedBy = true
	}
	gaps.Category = m.Category == ""
	gaps.Season = m.Season == ""
	return item, gaps
}

func paymentOf(p entity.Payment) rules.Payment {
	return rules.Payment{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Date:          p.PaymentDate,
	}
}

// reservationOf never fails: a malformed stored time reads as midnight.
func reservationOf(r entity.Reservation) rules.Reservation {
	tod, _ := rules.ParseTimeOfDay(r.ReservationTime)
	return rules.Reservation{
		ID:         r.ID,
		ClientID:   r.ClientID,
		MenuID:     r.MenuID,
		Date:       r.ReservationDate,
		Time:       tod,
		GuestCount: r.GuestCount,
		Status:     rules.ReservationStatus(r.Status),
	}
}

func clientOwner(c entity.Client) uint {
	if c.UserID == nil {
		return 0
	}
	return *c.UserID
}
