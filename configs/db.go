package configs

import (
	"fmt"

	"catering/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// OpenDatabase opens sqlite (a file path or ":memory:"-style DSN) or
// postgres (a pgx DSN).
func OpenDatabase(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return database, nil
}

func ConnectionDB(cfg *Config) error {
	database, err := OpenDatabase(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	db = database
	return nil
}

// SetupDatabase migrates the schema.
func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.Venue{},
		&entity.Menu{},
		&entity.Reservation{},
		&entity.Payment{},
		&entity.Review{},
		&entity.Setting{},
	)
}
