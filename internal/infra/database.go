package infra

import (
	"fmt"
	"strings"

	"github.com/Nikise23/optica-mia/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection. A postgres:// DSN selects the pgx
// driver; anything else is treated as a local sqlite file (the small-shop
// deployment). TranslateError is on so repositories can match
// gorm.ErrDuplicatedKey across both drivers.
func NewDatabase(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies the schema. Called once from main before the server
// accepts traffic — never from the request path.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Paciente{},
		&model.Medico{},
		&model.Receta{},
		&model.Pago{},
		&model.Gasto{},
		&model.CierreCaja{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
