package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AUlyanoff/web-api-server/internal/model"
	"github.com/AUlyanoff/web-api-server/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newUserService(m *mockUserRepo) *UserService {
	return NewUserService(m, zap.NewNop().Sugar())
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("ok when email free", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)

		m.On("GetByEmail", mock.Anything, "iu@ya.ru").Return(nil, gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: 10, Name: "Lee Ji-Eun", Email: "iu@ya.ru"}
		m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			// в базу уходит bcrypt-хеш, не исходный пароль
			return u.Email == "iu@ya.ru" &&
				u.Psw != "p@ss" &&
				bcrypt.CompareHashAndPassword([]byte(u.Psw), []byte("p@ss")) == nil &&
				!u.Time.IsZero()
		})).Return(created, nil).Once()

		user, err := svc.Register(ctx, "Lee Ji-Eun", "iu@ya.ru", "p@ss")
		assert.NoError(t, err)
		assert.Equal(t, int64(10), user.ID)
		m.AssertExpectations(t)
	})

	t.Run("conflict when email taken", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)

		m.On("GetByEmail", mock.Anything, "iu@ya.ru").Return(&model.User{ID: 1}, nil).Once()

		user, err := svc.Register(ctx, "Самозванец", "iu@ya.ru", "x")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrEmailTaken)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	t.Run("ok", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("GetByEmail", mock.Anything, "u@ya.ru").Return(&model.User{ID: 2, Email: "u@ya.ru", Psw: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "u@ya.ru", "secret")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
	})

	t.Run("bad password", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("GetByEmail", mock.Anything, "u@ya.ru").Return(&model.User{ID: 2, Psw: string(hash)}, nil).Once()

		user, err := svc.Login(ctx, "u@ya.ru", "wrong")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("GetByEmail", mock.Anything, "ghost@ya.ru").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Login(ctx, "ghost@ya.ru", "secret")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound).Once()

		user, err := svc.GetUser(ctx, 404)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("driver error is not ErrNotFound", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("broken pipe")).Once()

		_, err := svc.GetUser(ctx, 1)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_UpdateAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("пустой блоб отклоняется без похода в базу", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)

		assert.False(t, svc.UpdateAvatar(ctx, 1, nil))
		assert.False(t, svc.UpdateAvatar(ctx, 1, []byte{}))
		m.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("успех", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("UpdateAvatar", mock.Anything, int64(1), []byte{1, 2, 3}).Return(nil).Once()

		assert.True(t, svc.UpdateAvatar(ctx, 1, []byte{1, 2, 3}))
		m.AssertExpectations(t)
	})

	t.Run("ошибка драйвера гасится в false", func(t *testing.T) {
		m := new(mockUserRepo)
		svc := newUserService(m)
		m.On("UpdateAvatar", mock.Anything, int64(1), mock.Anything).Return(errors.New("boom")).Once()

		assert.False(t, svc.UpdateAvatar(ctx, 1, []byte{1}))
	})
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	m := new(mockUserRepo)
	svc := newUserService(m)

	briefs := []repo.UserBrief{{Name: "Lee Ji-Eun", Email: "iu@ya.ru"}}
	m.On("ListBrief", mock.Anything).Return(briefs, nil).Once()

	list, err := svc.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, briefs, list)
}
