package service

import (
	"context"

	"github.com/AUlyanoff/web-api-server/internal/model"
	"github.com/AUlyanoff/web-api-server/internal/repo"

	"github.com/stretchr/testify/mock"
)

// моки репозиториев для тестов сервисов

type mockMenuRepo struct{ mock.Mock }

func (m *mockMenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.MenuItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MenuRepository = (*mockMenuRepo)(nil)

type mockPostRepo struct{ mock.Mock }

func (m *mockPostRepo) GetByURL(ctx context.Context, alias string) (*model.Post, error) {
	args := m.Called(ctx, alias)
	if p, ok := args.Get(0).(*model.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockPostRepo) ListAll(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Post); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PostRepository = (*mockPostRepo)(nil)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id int64, avatar []byte) error {
	args := m.Called(ctx, id, avatar)
	return args.Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) ListBrief(ctx context.Context) ([]repo.UserBrief, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]repo.UserBrief); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)
