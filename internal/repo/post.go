package repo

import (
	"context"

	"github.com/AUlyanoff/web-api-server/internal/model"

	"gorm.io/gorm"
)

// PostRepository — контракт доступа к статьям.
// Статьи не обновляются и не удаляются приложением.
type PostRepository interface {
	// GetByURL ищет статью по alias. Если нет — gorm.ErrRecordNotFound.
	GetByURL(ctx context.Context, alias string) (*model.Post, error)

	// Create вставляет новую статью. Конфликт уникального url — ошибка.
	Create(ctx context.Context, post *model.Post) error

	// ListAll возвращает все статьи в естественном порядке таблицы
	ListAll(ctx context.Context) ([]model.Post, error)
}

type postRepo struct {
	db *gorm.DB
}

// NewPostRepository создаёт реализацию репозитория статей
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) GetByURL(ctx context.Context, alias string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("url = ?", alias).Limit(1).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
