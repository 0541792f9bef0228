package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pereval/models"
)

var db *gorm.DB

// Connect opens the configured database and migrates the schema.
// The driver is chosen by DB_DRIVER (postgres by default, mysql kept as an
// alternative); connection parameters come from the FSTR_DB_* variables.
func Connect() error {
	driver := getenv("DB_DRIVER", "postgres")

	dsn, err := BuildDSN(driver)
	if err != nil {
		return err
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	}

	g, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("database connect (%s): %w", driver, err)
	}

	if err := g.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	db = g
	log.Printf("database: connected driver=%s host=%s db=%s",
		driver, getenv("FSTR_DB_HOST", "localhost"), getenv("FSTR_DB_NAME", "fstr_db"))
	return nil
}

// BuildDSN assembles the connection string for the given driver from the
// FSTR_DB_* environment variables.
func BuildDSN(driver string) (string, error) {
	host := getenv("FSTR_DB_HOST", "localhost")
	port := getenv("FSTR_DB_PORT", "5433")
	user := getenv("FSTR_DB_LOGIN", "fstr_user")
	pass := getenv("FSTR_DB_PASS", "password")
	name := getenv("FSTR_DB_NAME", "fstr_db")

	switch driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, pass, host, port, name), nil
	default:
		return "", fmt.Errorf("unknown DB_DRIVER %q (want postgres or mysql)", driver)
	}
}

// DB returns the active handle.
func DB() *gorm.DB {
	if db == nil {
		panic("database not connected: call database.Connect first")
	}
	return db
}

// Use replaces the active handle. Tests run the handlers against an
// in-memory sqlite database through this.
func Use(g *gorm.DB) { db = g }

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
