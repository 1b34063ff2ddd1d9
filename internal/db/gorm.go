package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rahul-gound/fera-naturehelp/internal/model"
)

// NewGorm returns a connected GORM DB instance for the given driver.
func NewGorm(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// AutoMigrate creates or updates the record tables. With reset set, the
// tables are dropped first.
func AutoMigrate(db *gorm.DB, reset bool, logger zerolog.Logger) error {
	tables := []interface{}{
		&model.Donation{},
		&model.Contribution{},
		&model.Profile{},
	}

	if reset {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
		for _, table := range tables {
			if err := db.Migrator().DropTable(table); err != nil {
				logger.Warn().Err(err).Msg("failed to drop table (may not exist)")
			}
		}
	}

	if err := db.AutoMigrate(&model.Profile{}, &model.Contribution{}, &model.Donation{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
