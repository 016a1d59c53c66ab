package config

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FahadStacks1996/Mad/models"
)

// OpenDB opens the sqlite database at path and migrates the schema.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; serializing connections avoids
	// "database is locked" failures under concurrent requests.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema for every model. Also used by tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserAddress{},
		&models.Rider{},
		&models.Ingredient{},
		&models.Product{},
		&models.SizeVariant{},
		&models.RecipeItem{},
		&models.CrustOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
	)
}
