package client

import (
	"log"
	"time"

	"chat-billing/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for payment callbacks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	migrate(db)
	return db
}

// InitSqliteClient opens a file-backed sqlite database for local
// development, where a mysql instance is overkill.
func InitSqliteClient(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to open sqlite database:", err)
	}

	migrate(db)
	return db
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&model.Account{},
		&model.Order{},
		&model.FriendRequest{},
	); err != nil {
		log.Fatal(err)
	}
}
