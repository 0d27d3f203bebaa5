package configs

import (
	"math/rand"
	"time"

	"catering/entity"
	"catering/rules"

	"github.com/jaswdr/faker"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first superadmin from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin(database *gorm.DB, cfg *Config, log zerolog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn().Msg("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Str("email", cfg.AdminEmail).Msg("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      rules.RoleSuperAdmin.String(),
	}
	return database.Create(&admin).Error
}

var demoMenuNames = []string{
	"Continental Breakfast", "Executive Lunch", "Garden Salad Bar", "Seafood Dinner",
	"Coffee Break", "Tapas Selection", "BBQ Buffet", "Vegan Bowl",
	"Fresh Juice Station", "Wedding Banquet", "Brunch Platter", "Dessert Table",
}

// SeedDemo fills an empty database with reproducible sample data. Menus are
// stored without their optional business fields so demo mode can derive
// them. It does nothing when menus already exist.
func SeedDemo(database *gorm.DB, seed int64, now time.Time, log zerolog.Logger) error {
	var count int64
	if err := database.Model(&entity.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("menus", count).Msg("demo data already present")
		return nil
	}

	fake := faker.NewWithSeed(rand.NewSource(seed))
	return database.Transaction(func(tx *gorm.DB) error {
		venues := make([]entity.Venue, 3)
		for i := range venues {
			venues[i] = entity.Venue{
				VenueName:   fake.Company().Name(),
				Address:     fake.Address().Address(),
				Description: fake.Lorem().Sentence(8),
				Capacity:    fake.IntBetween(30, 200),
			}
		}
		if err := tx.Create(&venues).Error; err != nil {
			return err
		}

		clients := make([]entity.Client, 8)
		for i := range clients {
			p := fake.Person()
			clients[i] = entity.Client{
				FirstName:   p.FirstName(),
				LastName:    p.LastName(),
				Email:       fake.Internet().Email(),
				PhoneNumber: fake.Phone().Number(),
				Address:     fake.Address().Address(),
			}
		}
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}

		menus := make([]entity.Menu, len(demoMenuNames))
		for i, name := range demoMenuNames {
			menus[i] = entity.Menu{
				MenuName:    name,
				Description: fake.Lorem().Sentence(10),
				Price:       decimal.NewFromFloat(fake.Float64(2, 8, 45)).Round(2),
			}
		}
		if err := tx.Create(&menus).Error; err != nil {
			return err
		}

		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		reservations := make([]entity.Reservation, 12)
		for i := range reservations {
			slot := rules.TimeOfDay(11*60 + 30*fake.IntBetween(0, 20))
			reservations[i] = entity.Reservation{
				ClientID:        clients[fake.IntBetween(0, len(clients)-1)].ID,
				MenuID:          menus[fake.IntBetween(0, len(menus)-1)].ID,
				ReservationDate: today.AddDate(0, 0, fake.IntBetween(-5, 10)),
				ReservationTime: slot.String(),
				GuestCount:      fake.IntBetween(2, 20),
			}
		}
		if err := tx.Create(&reservations).Error; err != nil {
			return err
		}

		payments := make([]entity.Payment, 0, len(reservations))
		for _, r := range reservations {
			if !fake.Bool() {
				continue
			}
			payments = append(payments, entity.Payment{
				ReservationID: r.ID,
				Amount:        decimal.NewFromFloat(fake.Float64(2, 50, 1500)).Round(2),
				PaymentDate:   r.ReservationDate.AddDate(0, 0, -fake.IntBetween(0, 3)),
			})
		}
		if len(payments) > 0 {
			if err := tx.Create(&payments).Error; err != nil {
				return err
			}
		}

		reviews := make([]entity.Review, 10)
		for i := range reviews {
			reviews[i] = entity.Review{
				ClientID: clients[fake.IntBetween(0, len(clients)-1)].ID,
				VenueID:  venues[fake.IntBetween(0, len(venues)-1)].ID,
				Rating:   fake.IntBetween(1, 5),
				Comment:  fake.Lorem().Sentence(12),
			}
		}
		if err := tx.Create(&reviews).Error; err != nil {
			return err
		}

		log.Info().
			Int("venues", len(venues)).
			Int("clients", len(clients)).
			Int("menus", len(menus)).
			Int("reservations", len(reservations)).
			Int("payments", len(payments)).
			Int64("seed", seed).
			Msg("demo data seeded")
		return nil
	})
}
