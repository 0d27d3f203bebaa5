package services

import (
	"errors"
	"testing"

	"catering/entity"
	"catering/repository"
	"catering/rules"
)

func menuIDs(vs []MenuView) []uint {
	out := make([]uint, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func sameIDs(got, want []uint) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMenuListOrdersFiltersAndDecorates(t *testing.T) {
	f := newFixture(t) // menu 1: dinner, popular, unavailable at noon
	lunch := storedMenu("Lunch Box", rules.CategoryLunch, 10, 50, "20", "5", 1)
	lemonade := storedMenu("Lemonade", rules.CategoryBeverage, 0, 70, "5", "1", 1)
	salad := storedMenu("Own Salad", rules.CategoryLunch, 3, 55, "10", "8", clientCaller.UserID)
	for _, m := range []*entity.Menu{&lunch, &lemonade, &salad} {
		mustCreate(t, f.db, m)
	}
	svc := NewMenuService(repository.NewMenuRepository(f.db), f.env, false)

	all, err := svc.List(clientCaller, MenuFilter{ShowOutOfStock: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint{lemonade.ID, lunch.ID, salad.ID, f.dinner.ID}
	if got := menuIDs(all); !sameIDs(got, want) {
		t.Fatalf("order %v, want %v", got, want)
	}

	byID := map[uint]MenuView{}
	for _, v := range all {
		byID[v.ID] = v
	}
	if v := byID[salad.ID]; !v.CanEdit || v.CanDelete || v.Status.Code != "low_stock" || v.Margin.Valid {
		t.Fatalf("own salad %+v", v)
	}
	if v := byID[lunch.ID]; v.CanEdit || !v.DynamicPrice.Equal(money("20")) || !v.Margin.Valid {
		t.Fatalf("lunch %+v", v)
	}
	if byID[f.dinner.ID].IsAvailable || byID[f.dinner.ID].Status.Code != "seasonal" {
		t.Fatalf("dinner at noon %+v", byID[f.dinner.ID])
	}

	cases := []struct {
		name   string
		filter MenuFilter
		want   []uint
	}{
		{"hide out of stock", MenuFilter{}, []uint{lunch.ID, salad.ID, f.dinner.ID}},
		{"only available", MenuFilter{OnlyAvailable: true, ShowOutOfStock: true}, []uint{lemonade.ID, lunch.ID, salad.ID}},
		{"status", MenuFilter{Status: "low_stock", ShowOutOfStock: true}, []uint{salad.ID}},
		{"query", MenuFilter{Query: "SALAD", ShowOutOfStock: true}, []uint{salad.ID}},
		{"category", MenuFilter{Category: "lunch", ShowOutOfStock: true}, []uint{lunch.ID, salad.ID}},
	}
	for _, tc := range cases {
		got, err := svc.List(clientCaller, tc.filter)
		if err != nil {
			t.Fatal(err)
		}
		if !sameIDs(menuIDs(got), tc.want) {
			t.Errorf("%s: got %v want %v", tc.name, menuIDs(got), tc.want)
		}
	}
}

func TestMenuDemoModeFillsGaps(t *testing.T) {
	f := newFixture(t) // id 1 is fully populated
	bare1 := entity.Menu{MenuName: "Brunch", Price: money("20")}
	bare2 := entity.Menu{MenuName: "Tapas", Price: money("20")}
	mustCreate(t, f.db, &bare1)
	mustCreate(t, f.db, &bare2)
	repo := repository.NewMenuRepository(f.db)

	demo := NewMenuService(repo, f.env, true)
	v, err := demo.Get(clientCaller, bare1.ID) // id 2
	if err != nil {
		t.Fatal(err)
	}
	if v.Category != rules.CategoryDinner || v.StockLevel != 15 || v.CreatedBy != clientCaller.UserID || !v.CanEdit {
		t.Fatalf("enriched %+v", v.MenuItem)
	}
	if !v.Cost.Equal(money("8")) {
		t.Fatalf("cost %s", v.Cost)
	}

	// a real value is never overwritten
	steak, err := demo.Get(clientCaller, f.dinner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if steak.Popularity != 95 || steak.StockLevel != 10 || steak.CreatedBy != 1 {
		t.Fatalf("populated menu changed %+v", steak.MenuItem)
	}

	plain := NewMenuService(repo, f.env, false)
	v, err = plain.Get(clientCaller, bare2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if v.StockLevel != 0 || v.Status.Code != "out_of_stock" || v.CanEdit {
		t.Fatalf("without demo mode gaps stay empty: %+v", v)
	}
}

func TestMenuDeleteChecks(t *testing.T) {
	f := newFixture(t)
	busy := storedMenu("Busy Lunch", rules.CategoryLunch, 10, 40, "12", "4", 1)
	busy.ActiveOrders = intp(2)
	other := storedMenu("Quiet Lunch", rules.CategoryLunch, 10, 40, "12", "4", 1)
	juice := storedMenu("Juice Bar", rules.CategoryBeverage, 10, 90, "6", "2", 1)
	for _, m := range []*entity.Menu{&busy, &other, &juice} {
		mustCreate(t, f.db, m)
	}
	svc := NewMenuService(repository.NewMenuRepository(f.db), f.env, false)

	if err := svc.Delete(adminCaller, busy.ID, true); !rules.IsValidation(err) {
		t.Fatalf("active orders: %v", err)
	}
	if err := svc.Delete(clientCaller, other.ID, false); !rules.IsPermission(err) {
		t.Fatalf("client delete: %v", err)
	}

	err := svc.Delete(adminCaller, juice.ID, false)
	var adv *rules.AdvisoryError
	if !errors.As(err, &adv) || len(adv.Warnings) != 2 {
		t.Fatalf("popular and last beverage: %v", err)
	}
	if err := svc.Delete(adminCaller, juice.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(adminCaller, juice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted menu still readable: %v", err)
	}
	if err := svc.Delete(adminCaller, 999, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing menu: %v", err)
	}
}

func TestMenuCreateUpdateAndMetrics(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(repository.NewMenuRepository(f.db), f.env, false)

	_, err := svc.Create(adminCaller, MenuInput{MenuName: "Free", Category: "brunch"})
	var verr *rules.ValidationError
	if !errors.As(err, &verr) || len(verr.Issues) != 2 {
		t.Fatalf("expected price and category issues, got %v", err)
	}

	cost := money("9")
	in := MenuInput{
		MenuName: "Soup", Price: money("10"), Cost: &cost,
		StockLevel: intp(20), Category: "lunch", Popularity: intp(30),
	}
	if _, err := svc.Create(clientCaller, in); !rules.IsPermission(err) {
		t.Fatalf("client create: %v", err)
	}
	v, err := svc.Create(adminCaller, in)
	if err != nil {
		t.Fatal(err)
	}
	if v.CreatedBy != adminCaller.UserID || !v.CanEdit || !v.CanDelete {
		t.Fatalf("creator should own the menu: %+v", v)
	}
	if v.Margin.Valid || !v.DynamicPrice.Equal(money("9")) {
		t.Fatalf("low margin should be reported, liquidation applied: %+v", v.MenuClassification)
	}

	if _, err := svc.Update(clientCaller, v.ID, MenuInput{MenuName: "Mine now", Price: money("11")}); !rules.IsPermission(err) {
		t.Fatalf("client edit of an admin menu: %v", err)
	}
	up, err := svc.Update(superCaller, v.ID, MenuInput{MenuName: "Soup of the day", Price: money("15")})
	if err != nil {
		t.Fatal(err)
	}
	if up.Name != "Soup of the day" || up.StockLevel != 20 {
		t.Fatalf("update lost fields: %+v", up.MenuItem)
	}

	if _, err := svc.Metrics(clientCaller); !rules.IsPermission(err) {
		t.Fatalf("client metrics: %v", err)
	}
	m, err := svc.Metrics(adminCaller)
	if err != nil {
		t.Fatal(err)
	}
	if m.Total != 2 || m.Available != 1 {
		t.Fatalf("metrics %+v", m)
	}
}

func TestMenuOwnerClientCanEditButNotDelete(t *testing.T) {
	f := newFixture(t)
	salad := storedMenu("Own Salad", rules.CategoryLunch, 3, 55, "10", "8", clientCaller.UserID)
	mustCreate(t, f.db, &salad)
	svc := NewMenuService(repository.NewMenuRepository(f.db), f.env, false)

	if _, err := svc.Update(clientCaller, salad.ID, MenuInput{MenuName: "Green Salad", Price: money("11")}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(strangerCall, salad.ID, MenuInput{MenuName: "Stolen", Price: money("11")}); !rules.IsPermission(err) {
		t.Fatalf("stranger edit: %v", err)
	}
	if err := svc.Delete(clientCaller, salad.ID, true); !rules.IsPermission(err) {
		t.Fatalf("client deleting own menu: %v", err)
	}
	if err := svc.Delete(adminCaller, salad.ID, true); err != nil {
		t.Fatal(err)
	}
}

func TestMenuFetchFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewMenuService(repository.NewMenuRepository(f.db), f.env, false)
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()
	if _, err := svc.List(adminCaller, MenuFilter{}); !errors.Is(err, rules.ErrDataFetch) {
		t.Fatalf("got %v", err)
	}
}
