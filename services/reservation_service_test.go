package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"catering/entity"
	"catering/repository"
	"catering/rules"
)

func newReservationService(f *fixture) *ReservationService {
	return NewReservationService(
		repository.NewReservationRepository(f.db),
		repository.NewClientRepository(f.db),
		repository.NewMenuRepository(f.db),
		f.env,
	)
}

func TestReservationCapacityAndDeadline(t *testing.T) {
	f := newFixture(t)
	svc := newReservationService(f)
	in := ReservationInput{ClientID: f.own.ID, MenuID: f.dinner.ID, ReservationDate: "2026-10-18", ReservationTime: "15:00", GuestCount: 25}

	_, err := svc.Create(clientCaller, in)
	var verr *rules.ValidationError
	if !errors.As(err, &verr) || len(verr.Issues) != 1 || !strings.Contains(verr.Issues[0], "capacity") {
		t.Fatalf("25 guests: %v", err)
	}

	in.GuestCount = 4
	v, err := svc.Create(clientCaller, in)
	if err != nil {
		t.Fatal(err)
	}
	if v.ComputedStatus != rules.ReservationConfirmed || v.CanCancel || v.ClientName != "Ana Ruiz" {
		t.Fatalf("%+v", v)
	}

	_, err = svc.Cancel(clientCaller, v.ID)
	if !errors.As(err, &verr) || verr.Issues[0] != "cancellation deadline has passed (24 hours before)" {
		t.Fatalf("cancel inside deadline: %v", err)
	}

	cfg := f.env.Store.Current()
	cfg.CancellationDeadlineHours = 3
	if err := f.env.Store.Save(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	v, err = svc.Cancel(clientCaller, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if v.ComputedStatus != rules.ReservationCancelled || v.CanCancel {
		t.Fatalf("%+v", v)
	}
}

func TestReservationInputIssues(t *testing.T) {
	f := newFixture(t)
	svc := newReservationService(f)
	var verr *rules.ValidationError

	bad := ReservationInput{ClientID: f.own.ID, MenuID: f.dinner.ID, ReservationDate: "18/10", ReservationTime: "7pm"}
	if _, err := svc.Create(adminCaller, bad); !errors.As(err, &verr) || len(verr.Issues) != 3 {
		t.Fatalf("format issues: %v", err)
	}

	late := ReservationInput{ClientID: f.own.ID, MenuID: f.dinner.ID, ReservationDate: "2026-10-20", ReservationTime: "23:00", GuestCount: 30}
	if _, err := svc.Create(adminCaller, late); !errors.As(err, &verr) || len(verr.Issues) != 2 {
		t.Fatalf("schedule issues: %v", err)
	}

	noMenu := ReservationInput{ClientID: f.own.ID, MenuID: 999, ReservationDate: "2026-10-20", ReservationTime: "19:00", GuestCount: 2}
	if _, err := svc.Create(adminCaller, noMenu); !rules.IsValidation(err) {
		t.Fatalf("unknown menu: %v", err)
	}
	noMenu.MenuID, noMenu.ClientID = f.dinner.ID, 999
	if _, err := svc.Create(adminCaller, noMenu); !rules.IsValidation(err) {
		t.Fatalf("unknown client: %v", err)
	}
}

func TestReservationOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newReservationService(f)
	forOther := ReservationInput{ClientID: f.other.ID, MenuID: f.dinner.ID, ReservationDate: "2026-10-25", ReservationTime: "19:00", GuestCount: 2}

	if _, err := svc.Create(clientCaller, forOther); !rules.IsPermission(err) {
		t.Fatalf("client booking for someone else: %v", err)
	}
	v, err := svc.Create(adminCaller, forOther)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(clientCaller, v.ID); !rules.IsPermission(err) {
		t.Fatalf("client reading another booking: %v", err)
	}

	mine := forOther
	mine.ClientID = f.own.ID
	own, err := svc.Create(clientCaller, mine)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Cancel(strangerCall, own.ID); !rules.IsPermission(err) {
		t.Fatalf("stranger cancel: %v", err)
	}
	if err := svc.Delete(clientCaller, own.ID); !rules.IsPermission(err) {
		t.Fatalf("client delete: %v", err)
	}
	if _, err := svc.SetStatus(clientCaller, own.ID, rules.ReservationCompleted); !rules.IsPermission(err) {
		t.Fatalf("client status change: %v", err)
	}

	done, err := svc.SetStatus(adminCaller, own.ID, rules.ReservationCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if done.ComputedStatus != rules.ReservationCompleted || done.CanCancel {
		t.Fatalf("%+v", done)
	}
	if _, err := svc.SetStatus(adminCaller, own.ID, "lost"); !rules.IsValidation(err) {
		t.Fatalf("unknown status: %v", err)
	}
	if err := svc.Delete(adminCaller, own.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(adminCaller, own.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted reservation: %v", err)
	}
}

func TestReservationListAlertsAndFilters(t *testing.T) {
	f := newFixture(t)
	svc := newReservationService(f)
	late := entity.Reservation{ClientID: f.own.ID, MenuID: f.dinner.ID, ReservationDate: day(0), ReservationTime: "11:00", GuestCount: 2}
	soon := entity.Reservation{ClientID: f.other.ID, MenuID: f.dinner.ID, ReservationDate: day(0), ReservationTime: "13:00", GuestCount: 2}
	later := entity.Reservation{ClientID: f.own.ID, MenuID: f.dinner.ID, ReservationDate: day(2), ReservationTime: "19:00", GuestCount: 6}
	done := entity.Reservation{ClientID: f.other.ID, MenuID: f.dinner.ID, ReservationDate: day(-3), ReservationTime: "19:00", GuestCount: 6, Status: "completed"}
	for _, r := range []*entity.Reservation{&late, &soon, &later, &done} {
		mustCreate(t, f.db, r)
	}

	list, err := svc.List(adminCaller, ReservationFilter{})
	if err != nil {
		t.Fatal(err)
	}
	got := make([]uint, len(list.Items))
	for i, v := range list.Items {
		got[i] = v.ID
	}
	if !sameIDs(got, []uint{later.ID, soon.ID, late.ID, done.ID}) {
		t.Fatalf("order %v", got)
	}
	if alertTypes(list.Alerts) != "upcoming,no_show" {
		t.Fatalf("alerts %+v", list.Alerts)
	}
	if !list.Items[1].IsUpcoming || list.Items[2].ComputedStatus != rules.ReservationNoShow {
		t.Fatalf("%+v", list.Items)
	}

	cases := []struct {
		caller Caller
		filter ReservationFilter
		want   int
	}{
		{adminCaller, ReservationFilter{Date: "today"}, 2},
		{adminCaller, ReservationFilter{Date: "upcoming"}, 1},
		{adminCaller, ReservationFilter{Date: "past"}, 1},
		{adminCaller, ReservationFilter{Status: "confirmed"}, 2},
		{clientCaller, ReservationFilter{}, 2},
		{strangerCall, ReservationFilter{}, 0},
	}
	for _, tc := range cases {
		l, err := svc.List(tc.caller, tc.filter)
		if err != nil {
			t.Fatal(err)
		}
		if len(l.Items) != tc.want {
			t.Errorf("%+v as %d: got %d items", tc.filter, tc.caller.UserID, len(l.Items))
		}
	}
}
