package repo

import (
	"context"

	"github.com/AUlyanoff/web-api-server/internal/model"

	"gorm.io/gorm"
)

// UserBrief — проекция пользователя для api-списка, без psw и avatar
type UserBrief struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRepository — контракт доступа к пользователям
type UserRepository interface {
	// Create вставляет пользователя. Конфликт уникального email — ошибка.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// GetByID ищет пользователя по id. Если нет — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByEmail ищет пользователя по email. Если нет — gorm.ErrRecordNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// UpdateAvatar перезаписывает блоб аватара по id пользователя
	UpdateAvatar(ctx context.Context, id int64, avatar []byte) error

	// Count возвращает общее число пользователей
	Count(ctx context.Context) (int64, error)

	// ListBrief возвращает name+email всех пользователей в порядке строк таблицы
	ListBrief(ctx context.Context) ([]UserBrief, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).Limit(1).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateAvatar(ctx context.Context, id int64, avatar []byte) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("avatar", avatar).Error
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *userRepo) ListBrief(ctx context.Context) ([]UserBrief, error) {
	list := make([]UserBrief, 0)
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("name", "email").Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
