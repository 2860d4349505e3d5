package repo

import (
	"context"
	"testing"
	"time"

	"github.com/AUlyanoff/web-api-server/internal/model"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func mkUser(name, email string) *model.User {
	return &model.User{Name: name, Email: email, Psw: "bcrypt-hash", Time: time.Now()}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u, err := r.Create(ctx, mkUser("Lee Ji-Eun", "iu@ya.ru"))
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)

	got, err := r.GetByEmail(ctx, "iu@ya.ru")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.GetByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Lee Ji-Eun", got.Name)

	// уникальный email — вторая вставка должна дать ошибку
	_, err = r.Create(ctx, mkUser("Самозванец", "iu@ya.ru"))
	assert.Error(t, err)

	// поиск несуществующего — ожидаем gorm.ErrRecordNotFound
	got, err = r.GetByEmail(ctx, "nobody@ya.ru")
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	got, err = r.GetByID(ctx, 99999)
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}

func TestUserRepository_UpdateAvatar(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	u, err := r.Create(ctx, mkUser("Sil12345", "s@ya.ru"))
	assert.NoError(t, err)

	blob := []byte{0x89, 'P', 'N', 'G'}
	assert.NoError(t, r.UpdateAvatar(ctx, u.ID, blob))

	got, err := r.GetByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, blob, got.Avatar)
}

func TestUserRepository_CountAndListBrief(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	n, err := r.Count(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)

	list, err := r.ListBrief(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for _, u := range []*model.User{
		mkUser("Lee Ji-Eun", "iu@ya.ru"),
		mkUser("Uam12345", "u@ya.ru"),
		mkUser("Sil12345", "s@ya.ru"),
	} {
		_, err := r.Create(ctx, u)
		assert.NoError(t, err)
	}

	n, err = r.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// проекция name+email в порядке строк таблицы, без psw и avatar
	list, err = r.ListBrief(ctx)
	assert.NoError(t, err)
	if assert.Len(t, list, 3) {
		assert.Equal(t, UserBrief{Name: "Lee Ji-Eun", Email: "iu@ya.ru"}, list[0])
		assert.Equal(t, UserBrief{Name: "Sil12345", Email: "s@ya.ru"}, list[2])
	}
}
