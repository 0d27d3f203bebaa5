package services

import (
	"strings"
	"testing"
	"time"

	"catering/configs"
	"catering/entity"
	"catering/repository"
	"catering/rules"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sunday noon: lunch is being served, dinner is not, no happy hour.
var testNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

var (
	adminCaller  = Caller{UserID: 1, Role: rules.RoleAdmin}
	superCaller  = Caller{UserID: 2, Role: rules.RoleSuperAdmin}
	clientCaller = Caller{UserID: 3, Role: rules.RoleClient}
	strangerCall = Caller{UserID: 4, Role: rules.RoleClient}
)

type fixture struct {
	db     *gorm.DB
	env    *RuleEnv
	own    entity.Client // belongs to clientCaller
	other  entity.Client // walk-in, no account
	venue  entity.Venue
	dinner entity.Menu
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := configs.OpenDatabase("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)
	users := []entity.User{
		{Email: "admin@catering.test", Role: "admin"},
		{Email: "super@catering.test", Role: "superadmin"},
		{Email: "client@catering.test", Role: "client"},
		{Email: "stranger@catering.test", Role: "client"},
	}
	mustCreate(t, db, &users)

	f := &fixture{
		db: db,
		env: &RuleEnv{
			Store: rules.NewStore(repository.NewSettingRepository(db), "businessRules", zerolog.Nop()),
			Clock: rules.FixedClock{T: testNow},
			Log:   zerolog.Nop(),
		},
		own:   entity.Client{FirstName: "Ana", LastName: "Ruiz", UserID: &users[2].ID},
		other: entity.Client{FirstName: "Luis", LastName: "Mora"},
		venue: entity.Venue{VenueName: "Casa Blanca", Capacity: 80},
	}
	mustCreate(t, db, &f.own)
	mustCreate(t, db, &f.other)
	mustCreate(t, db, &f.venue)
	f.dinner = storedMenu("Steak Night", rules.CategoryDinner, 10, 95, "30", "10", 1)
	mustCreate(t, db, &f.dinner)
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatal(err)
	}
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }
func uintp(v uint) *uint { return &v }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func storedMenu(name string, cat rules.Category, stock, popularity int, price, cost string, owner uint) entity.Menu {
	return entity.Menu{
		MenuName:     name,
		Price:        money(price),
		Cost:         decimal.NewNullDecimal(money(cost)),
		StockLevel:   intp(stock),
		Category:     string(cat),
		Seasonal:     boolp(false),
		Popularity:   intp(popularity),
		ActiveOrders: intp(0),
		CreatedByID:  uintp(owner),
	}
}

func day(offset int) time.Time {
	return time.Date(2026, time.October, 18+offset, 0, 0, 0, 0, time.UTC)
}
