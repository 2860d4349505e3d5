package repo

import (
	"github.com/AUlyanoff/web-api-server/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с postgres и строит схему трёх таблиц
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.MenuItem{}, &model.Post{}, &model.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
