package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"catering/entity"
	"catering/repository"
	"catering/rules"

	"github.com/shopspring/decimal"
)

type PaymentService struct {
	Repo         *repository.PaymentRepository
	Reservations *repository.ReservationRepository
	Env          *RuleEnv
}

func NewPaymentService(repo *repository.PaymentRepository, reservations *repository.ReservationRepository, env *RuleEnv) *PaymentService {
	return &PaymentService{Repo: repo, Reservations: reservations, Env: env}
}

type PaymentView struct {
	rules.Payment
	ClientName string           `json:"clientName"`
	Status     rules.StatusView `json:"status"`
	Alerts     []rules.Alert    `json:"alerts"`
	CanEdit    rules.Decision   `json:"canEdit"`
	CanDelete  rules.Decision   `json:"canDelete"`
}

// PaymentFilter mirrors the payment list controls. Amount is one of
// low (<100), medium (<500) or high.
type PaymentFilter struct {
	Query  string
	Status string
	Amount string
	Sort   string
}

type PaymentInput struct {
	ReservationID uint            `json:"reservationId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate" binding:"required"`
}

var (
	amountMedium = decimal.NewFromInt(100)
	amountHigh   = decimal.NewFromInt(500)
)

func (in PaymentInput) parse() (decimal.Decimal, time.Time, error) {
	var issues []string
	if !in.Amount.IsPositive() {
		issues = append(issues, "amount must be positive")
	}
	date, err := parseDate(in.PaymentDate)
	if err != nil {
		issues = append(issues, err.Error())
	}
	if len(issues) > 0 {
		return decimal.Decimal{}, time.Time{}, &rules.ValidationError{Issues: issues}
	}
	return in.Amount, date, nil
}

func clientNameOf(p entity.Payment) string {
	return p.Reservation.Client.FullName()
}

func (s *PaymentService) decorate(ps []entity.Payment, now time.Time, caller Caller) []PaymentView {
	names := make(map[uint]string, len(ps))
	peers := make([]rules.Payment, len(ps))
	for i, p := range ps {
		names[p.ReservationID] = clientNameOf(p)
		peers[i] = paymentOf(p)
	}
	resolve := func(reservationID uint) string { return names[reservationID] }

	out := make([]PaymentView, len(ps))
	for i, p := range peers {
		out[i] = PaymentView{
			Payment:    p,
			ClientName: names[p.ReservationID],
			Status:     rules.PaymentAgeBucket(p, now).View(),
			Alerts:     rules.PaymentAlerts(p, peers, resolve, now),
			CanEdit:    rules.CanEditPayment(p, caller.Role, now),
			CanDelete:  rules.CanDeletePayment(p, caller.Role, now),
		}
	}
	return out
}

func (f PaymentFilter) match(v PaymentView) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !containsFold(v.ClientName, q) &&
			!strings.Contains(v.Amount.String(), q) &&
			!strings.Contains(v.Date.Format("2006-01-02"), q) {
			return false
		}
	}
	if f.Status != "" && v.Status.Code != f.Status {
		return false
	}
	switch f.Amount {
	case "low":
		return v.Amount.LessThan(amountMedium)
	case "medium":
		return v.Amount.GreaterThanOrEqual(amountMedium) && v.Amount.LessThan(amountHigh)
	case "high":
		return v.Amount.GreaterThanOrEqual(amountHigh)
	}
	return true
}

func sortPayments(vs []PaymentView, by string) {
	less := func(a, b PaymentView) bool { return a.Date.After(b.Date) }
	switch by {
	case "oldest":
		less = func(a, b PaymentView) bool { return a.Date.Before(b.Date) }
	case "amount_high":
		less = func(a, b PaymentView) bool { return a.Amount.GreaterThan(b.Amount) }
	case "amount_low":
		less = func(a, b PaymentView) bool { return a.Amount.LessThan(b.Amount) }
	case "client_name":
		less = func(a, b PaymentView) bool { return strings.ToLower(a.ClientName) < strings.ToLower(b.ClientName) }
	}
	sort.SliceStable(vs, func(i, j int) bool {
		if less(vs[i], vs[j]) {
			return true
		}
		if less(vs[j], vs[i]) {
			return false
		}
		return vs[i].ID < vs[j].ID
	})
}

func (s *PaymentService) List(caller Caller, f PaymentFilter) ([]PaymentView, error) {
	_, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindPayment}, now).Err(); err != nil {
		return nil, err
	}
	ps, err := s.Repo.FindAll()
	if err != nil {
		return nil, s.Env.fetchFailed("payments", err)
	}
	all := s.decorate(ps, now, caller)
	out := make([]PaymentView, 0, len(all))
	for _, v := range all {
		if f.match(v) {
			out = append(out, v)
		}
	}
	sortPayments(out, f.Sort)
	return out, nil
}

// Get decorates a single payment. Duplicate detection still compares it
// against every stored payment.
func (s *PaymentService) Get(caller Caller, id uint) (PaymentView, error) {
	_, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindPayment}, now).Err(); err != nil {
		return PaymentView{}, err
	}
	ps, err := s.Repo.FindAll()
	if err != nil {
		return PaymentView{}, s.Env.fetchFailed("payments", err)
	}
	for _, v := range s.decorate(ps, now, caller) {
		if v.ID == id {
			return v, nil
		}
	}
	return PaymentView{}, ErrNotFound
}

func (s *PaymentService) checkReservation(id uint) error {
	if _, err := s.Reservations.FindByID(id); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &rules.ValidationError{Issues: []string{"reservation does not exist"}}
		}
		return err
	}
	return nil
}

func (s *PaymentService) Create(caller Caller, in PaymentInput) (PaymentView, error) {
	_, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionCreate, rules.Resource{Kind: rules.KindPayment}, now).Err(); err != nil {
		return PaymentView{}, err
	}
	amount, date, err := in.parse()
	if err != nil {
		return PaymentView{}, err
	}
	if err := s.checkReservation(in.ReservationID); err != nil {
		return PaymentView{}, err
	}
	p := entity.Payment{ReservationID: in.ReservationID, Amount: amount, PaymentDate: date}
	if err := s.Repo.Create(&p); err != nil {
		return PaymentView{}, err
	}
	return s.Get(caller, p.ID)
}

// Update is gated on the stored payment: a consolidated payment cannot be
// moved back into the editable window by changing its date.
func (s *PaymentService) Update(caller Caller, id uint, in PaymentInput) (PaymentView, error) {
	_, now := s.Env.snapshot()
	cur, err := s.Repo.FindByID(id)
	if err != nil {
		return PaymentView{}, notFound(err)
	}
	if err := rules.CanEditPayment(paymentOf(*cur), caller.Role, now).Err(); err != nil {
		return PaymentView{}, err
	}
	amount, date, err := in.parse()
	if err != nil {
		return PaymentView{}, err
	}
	updates := map[string]any{"amount": amount, "payment_date": date}
	if in.ReservationID != 0 && in.ReservationID != cur.ReservationID {
		if err := s.checkReservation(in.ReservationID); err != nil {
			return PaymentView{}, err
		}
		updates["reservation_id"] = in.ReservationID
	}
	if err := s.Repo.Update(id, updates); err != nil {
		return PaymentView{}, err
	}
	return s.Get(caller, id)
}

func (s *PaymentService) Delete(caller Caller, id uint) error {
	_, now := s.Env.snapshot()
	cur, err := s.Repo.FindByID(id)
	if err != nil {
		return notFound(err)
	}
	if err := rules.CanDeletePayment(paymentOf(*cur), caller.Role, now).Err(); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Env.Log.Info().Uint("paymentId", id).Uint("by", caller.UserID).Msg("payment deleted")
	return nil
}
