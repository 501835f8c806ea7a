package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "flowlancer.com/flowlancer/internal/models"
)

func NewDatabaseClient(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Project{},
		&model.Task{},
		&model.TimeEntry{},
		&model.Invoice{},
		&model.InvoiceTaskDetail{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
