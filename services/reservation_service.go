package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"catering/entity"
	"catering/repository"
	"catering/rules"
)

type ReservationService struct {
	Repo    *repository.ReservationRepository
	Clients *repository.ClientRepository
	Menus   *repository.MenuRepository
	Env     *RuleEnv
}

func NewReservationService(
	repo *repository.ReservationRepository,
	clients *repository.ClientRepository,
	menus *repository.MenuRepository,
	env *RuleEnv,
) *ReservationService {
	return &ReservationService{Repo: repo, Clients: clients, Menus: menus, Env: env}
}

type ReservationView struct {
	rules.Reservation
	ClientName     string                  `json:"clientName"`
	ComputedStatus rules.ReservationStatus `json:"computedStatus"`
	Display        rules.StatusView        `json:"display"`
	CanCancel      bool                    `json:"canCancel"`
	IsUpcoming     bool                    `json:"isUpcoming"`
	Issues         []string                `json:"issues,omitempty"`
}

type ReservationList struct {
	Items  []ReservationView `json:"items"`
	Alerts []rules.Alert     `json:"alerts"`
}

// ReservationFilter: Status matches the computed status; Date is one of
// today, upcoming or past relative to the current calendar day.
type ReservationFilter struct {
	Status string
	Date   string
}

type ReservationInput struct {
	ClientID        uint   `json:"clientId" binding:"required"`
	MenuID          uint   `json:"menuId" binding:"required"`
	ReservationDate string `json:"reservationDate" binding:"required"`
	ReservationTime string `json:"reservationTime" binding:"required"`
	GuestCount      int    `json:"guestCount"`
}

var ErrCancelDeadline = errors.New("cancellation deadline has passed")

// parse checks field formats and every schedule rule, reporting all issues.
func (in ReservationInput) parse(cfg rules.RuleConfig) (rules.Reservation, error) {
	var issues []string
	r := rules.Reservation{ClientID: in.ClientID, MenuID: in.MenuID, GuestCount: in.GuestCount}
	date, err := parseDate(in.ReservationDate)
	if err != nil {
		issues = append(issues, err.Error())
	}
	y, m, d := date.Date()
	r.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if r.Time, err = rules.ParseTimeOfDay(in.ReservationTime); err != nil {
		issues = append(issues, err.Error())
	}
	if in.GuestCount < 1 {
		issues = append(issues, "at least one guest is required")
	}
	if len(issues) == 0 {
		issues = rules.ValidateReservation(r, cfg)
	}
	if len(issues) > 0 {
		return r, &rules.ValidationError{Issues: issues}
	}
	return r, nil
}

func (s *ReservationService) view(e entity.Reservation, cfg rules.RuleConfig, now time.Time) ReservationView {
	r := reservationOf(e)
	st := rules.ClassifyReservation(r, cfg, now)
	return ReservationView{
		Reservation:    r,
		ClientName:     e.Client.FullName(),
		ComputedStatus: st,
		Display:        st.View(),
		CanCancel:      rules.CanCancelReservation(r, cfg, now),
		IsUpcoming:     rules.IsUpcomingReservation(r, cfg, now),
		Issues:         rules.ValidateReservation(r, cfg),
	}
}

func (s *ReservationService) resource(e entity.Reservation) rules.Resource {
	return rules.Resource{Kind: rules.KindReservation, OwnerID: clientOwner(e.Client)}
}

// load fetches one reservation and enforces that clients only see their own.
func (s *ReservationService) load(caller Caller, id uint) (*entity.Reservation, error) {
	e, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	if !caller.Role.AtLeast(rules.RoleAdmin) && clientOwner(e.Client) != caller.UserID {
		return nil, &rules.PermissionError{Reason: "not your reservation"}
	}
	return e, nil
}

func (s *ReservationService) List(caller Caller, f ReservationFilter) (ReservationList, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindReservation}, now).Err(); err != nil {
		return ReservationList{}, err
	}
	var (
		rs  []entity.Reservation
		err error
	)
	if caller.Role.AtLeast(rules.RoleAdmin) {
		rs, err = s.Repo.FindAll()
	} else {
		rs, err = s.Repo.FindByUser(caller.UserID)
	}
	if err != nil {
		return ReservationList{}, s.Env.fetchFailed("reservations", err)
	}

	ty, tm, td := now.Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	all := make([]rules.Reservation, 0, len(rs))
	items := make([]ReservationView, 0, len(rs))
	for _, e := range rs {
		v := s.view(e, cfg, now)
		all = append(all, v.Reservation)
		if f.Status != "" && string(v.ComputedStatus) != f.Status {
			continue
		}
		y, m, d := v.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		switch f.Date {
		case "today":
			if !day.Equal(today) {
				continue
			}
		case "upcoming":
			if !day.After(today) {
				continue
			}
		case "past":
			if !day.Before(today) {
				continue
			}
		}
		items = append(items, v)
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ScheduledAt(time.UTC), items[j].ScheduledAt(time.UTC)
		if !a.Equal(b) {
			return a.After(b)
		}
		return items[i].ID < items[j].ID
	})
	return ReservationList{Items: items, Alerts: rules.ReservationAlerts(all, cfg, now)}, nil
}

func (s *ReservationService) Get(caller Caller, id uint) (ReservationView, error) {
	cfg, now := s.Env.snapshot()
	e, err := s.load(caller, id)
	if err != nil {
		return ReservationView{}, err
	}
	return s.view(*e, cfg, now), nil
}

func (s *ReservationService) Create(caller Caller, in ReservationInput) (ReservationView, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionCreate, rules.Resource{Kind: rules.KindReservation}, now).Err(); err != nil {
		return ReservationView{}, err
	}
	r, err := in.parse(cfg)
	if err != nil {
		return ReservationView{}, err
	}
	if err := s.checkRefs(caller, r); err != nil {
		return ReservationView{}, err
	}
	e := entity.Reservation{
		ClientID:        r.ClientID,
		MenuID:          r.MenuID,
		ReservationDate: r.Date,
		ReservationTime: r.Time.String(),
		GuestCount:      r.GuestCount,
	}
	if err := s.Repo.Create(&e); err != nil {
		return ReservationView{}, err
	}
	return s.Get(caller, e.ID)
}

// checkRefs verifies the client and menu exist, and that a client books for
// themselves.
func (s *ReservationService) checkRefs(caller Caller, r rules.Reservation) error {
	c, err := s.Clients.FindByID(r.ClientID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &rules.ValidationError{Issues: []string{"client does not exist"}}
		}
		return err
	}
	if !caller.Role.AtLeast(rules.RoleAdmin) && clientOwner(*c) != caller.UserID {
		return &rules.PermissionError{Reason: "clients can only book for themselves"}
	}
	if _, err := s.Menus.FindByID(r.MenuID); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &rules.ValidationError{Issues: []string{"menu does not exist"}}
		}
		return err
	}
	return nil
}

func (s *ReservationService) Update(caller Caller, id uint, in ReservationInput) (ReservationView, error) {
	cfg, now := s.Env.snapshot()
	e, err := s.load(caller, id)
	if err != nil {
		return ReservationView{}, err
	}
	if err := s.Env.decide(caller, rules.ActionEdit, s.resource(*e), now).Err(); err != nil {
		return ReservationView{}, err
	}
	r, err := in.parse(cfg)
	if err != nil {
		return ReservationView{}, err
	}
	if err := s.checkRefs(caller, r); err != nil {
		return ReservationView{}, err
	}
	err = s.Repo.Update(id, map[string]any{
		"client_id":        r.ClientID,
		"menu_id":          r.MenuID,
		"reservation_date": r.Date,
		"reservation_time": r.Time.String(),
		"guest_count":      r.GuestCount,
	})
	if err != nil {
		return ReservationView{}, err
	}
	return s.Get(caller, id)
}

// SetStatus stores an explicit status, which then overrides the computed one.
func (s *ReservationService) SetStatus(caller Caller, id uint, status rules.ReservationStatus) (ReservationView, error) {
	_, now := s.Env.snapshot()
	e, err := s.load(caller, id)
	if err != nil {
		return ReservationView{}, err
	}
	if err := s.Env.decide(caller, rules.ActionEdit, s.resource(*e), now).Err(); err != nil {
		return ReservationView{}, err
	}
	if !status.Valid() {
		return ReservationView{}, &rules.ValidationError{Issues: []string{fmt.Sprintf("unknown status %q", status)}}
	}
	if err := s.Repo.UpdateStatus(id, string(status)); err != nil {
		return ReservationView{}, err
	}
	return s.Get(caller, id)
}

func (s *ReservationService) Cancel(caller Caller, id uint) (ReservationView, error) {
	cfg, now := s.Env.snapshot()
	e, err := s.load(caller, id)
	if err != nil {
		return ReservationView{}, err
	}
	if err := s.Env.decide(caller, rules.ActionCancel, s.resource(*e), now).Err(); err != nil {
		return ReservationView{}, err
	}
	if !rules.CanCancelReservation(reservationOf(*e), cfg, now) {
		return ReservationView{}, &rules.ValidationError{Issues: []string{
			fmt.Sprintf("%s (%g hours before)", ErrCancelDeadline, cfg.CancellationDeadlineHours),
		}}
	}
	if err := s.Repo.UpdateStatus(id, string(rules.ReservationCancelled)); err != nil {
		return ReservationView{}, err
	}
	s.Env.Log.Info().Uint("reservationId", id).Uint("by", caller.UserID).Msg("reservation cancelled")
	return s.Get(caller, id)
}

func (s *ReservationService) Delete(caller Caller, id uint) error {
	_, now := s.Env.snapshot()
	e, err := s.load(caller, id)
	if err != nil {
		return err
	}
	if err := s.Env.decide(caller, rules.ActionDelete, s.resource(*e), now).Err(); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
