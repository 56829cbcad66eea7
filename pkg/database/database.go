package database

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate creates or updates the schema. The order matters: the mirrored
// and fan-out tables carry foreign keys into earlier tables, all declared
// ON DELETE CASCADE so the store, not application code, keeps pairs and
// visibility rows symmetric.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Circle{},
		&model.Connection{},
		&model.CircleMembership{},
		&model.Invitation{},
		&model.Intro{},
		&model.Post{},
		&model.PostCircle{},
		&model.PostUser{},
		&model.Message{},
	)
}
