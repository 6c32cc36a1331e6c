package repo

import (
	"InfoVault/internal/model"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound возвращается, когда запись не существует или не принадлежит пользователю.
// Слой выше не должен различать эти два случая.
var ErrNotFound = errors.New("record not found")

// InitDB открывает подключение к Postgres и выполняет автомиграции моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("empty database DSN")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Record{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}
