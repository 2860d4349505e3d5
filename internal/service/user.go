package service

import (
	"context"
	"errors"
	"time"

	"github.com/AUlyanoff/web-api-server/internal/model"
	"github.com/AUlyanoff/web-api-server/internal/repo"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — регистрация, авторизация и аватары
type UserService struct {
	users repo.UserRepository
	log   *zap.SugaredLogger
}

// NewUserService создаёт сервис пользователей
func NewUserService(users repo.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, log: log}
}

// Register добавляет пользователя. Электронная почта должна быть уникальной.
// Пароль хешируется bcrypt-ом, в базу исходный пароль не попадает.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.log.Infow("пользователь с таким email уже существует", "email", email)
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Errorw("ошибка проверки email", "email", email, "error", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Email: email, Psw: string(hash), Time: time.Now()}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		// гонку двух регистраций ловит уникальный индекс по email
		s.log.Errorw("ошибка добавления пользователя в БД", "email", email, "error", err)
		return nil, err
	}
	return created, nil
}

// Login проверяет пару email/пароль и возвращает пользователя
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		s.log.Errorw("ошибка получения данных из БД", "email", email, "error", err)
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Psw), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// GetUser читает пользователя по id; "не найдено" — ErrNotFound
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warnw("пользователь не найден", "user_id", id)
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Errorw("ошибка получения данных из БД", "user_id", id, "error", err)
		return nil, err
	}
	return user, nil
}

// UpdateAvatar обновляет аватар пользователя.
// Пустой блоб отклоняется сразу, хранимый аватар при этом не меняется.
func (s *UserService) UpdateAvatar(ctx context.Context, id int64, avatar []byte) bool {
	if len(avatar) == 0 {
		return false
	}
	if err := s.users.UpdateAvatar(ctx, id, avatar); err != nil {
		s.log.Errorw("ошибка обновления аватара в БД", "user_id", id, "error", err)
		return false
	}
	return true
}

// CountUsers возвращает число зарегистрированных пользователей
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// ListUsers возвращает проекции name+email всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]repo.UserBrief, error) {
	return s.users.ListBrief(ctx)
}
