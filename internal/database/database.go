package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roomsense/roomsense-backend/internal/model"
)

// Open connects to the sqlite database at path and migrates the schema.
// Foreign key enforcement is off by default in sqlite, so it is switched on
// before anything else touches the connection.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if r := db.Exec("PRAGMA foreign_keys = ON"); r.Error != nil {
		return nil, r.Error
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Device{},
		&model.Reading{},
		&model.Alert{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
