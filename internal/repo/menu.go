package repo

import (
	"context"

	"github.com/AUlyanoff/web-api-server/internal/model"

	"gorm.io/gorm"
)

// MenuRepository — контракт доступа к пунктам меню.
// Таблица заполняется только демо-данными, поэтому операция одна.
type MenuRepository interface {
	// List возвращает все пункты меню в естественном порядке таблицы
	List(ctx context.Context) ([]model.MenuItem, error)
}

type menuRepo struct {
	db *gorm.DB
}

// NewMenuRepository создаёт реализацию репозитория меню
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
