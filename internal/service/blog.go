package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/AUlyanoff/web-api-server/internal/model"
	"github.com/AUlyanoff/web-api-server/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// imgSrcRe — атрибут src картинок в теле статьи, регистрозависимый
var imgSrcRe = regexp.MustCompile(`(<img\s+[^>]*src=)["']([^"']+)["']>`)

// BlogService — меню и статьи.
// Ошибки драйвера здесь гасятся: мутации возвращают bool, выборки списков —
// пустой срез; наружу ошибки уходят только из GetPost.
type BlogService struct {
	menu       repo.MenuRepository
	posts      repo.PostRepository
	log        *zap.SugaredLogger
	staticBase string // базовый url статики для картинок статей
}

// NewBlogService создаёт сервис меню и статей
func NewBlogService(menu repo.MenuRepository, posts repo.PostRepository, log *zap.SugaredLogger, staticBase string) *BlogService {
	return &BlogService{menu: menu, posts: posts, log: log, staticBase: staticBase}
}

// Menu возвращает пункты главного меню; при ошибке чтения — пустой список
func (s *BlogService) Menu(ctx context.Context) []model.MenuItem {
	items, err := s.menu.List(ctx)
	if err != nil {
		s.log.Errorw("ошибка чтения меню из БД", "error", err)
		return []model.MenuItem{}
	}
	return items
}

// AddPost добавляет новую статью, url должен быть уникальным.
// Пути картинок в теле статьи переписываются на каталог статики.
func (s *BlogService) AddPost(ctx context.Context, title, text, url string) bool {
	if _, err := s.posts.GetByURL(ctx, url); err == nil {
		s.log.Warnw("статья с таким url уже существует", "title", title, "url", url)
		return false
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Errorw("ошибка проверки url статьи", "url", url, "error", err)
		return false
	}

	text = imgSrcRe.ReplaceAllString(text, "${1}"+s.staticBase+"/${2}>")

	post := &model.Post{Title: title, Text: text, URL: url, Time: time.Now()}
	if err := s.posts.Create(ctx, post); err != nil {
		// сюда же попадает и гонка двух вставок: уникальный индекс по url
		s.log.Errorw("ошибка добавления статьи в БД", "title", title, "error", err)
		return false
	}
	return true
}

// GetPost читает статью по её alias.
// "Не найдено" возвращается как ErrNotFound, ошибки драйвера — как есть.
func (s *BlogService) GetPost(ctx context.Context, alias string) (*model.Post, error) {
	post, err := s.posts.GetByURL(ctx, alias)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Errorw("ошибка получения статьи из БД", "alias", alias, "error", err)
		return nil, err
	}
	return post, nil
}

// PostsAnonce возвращает все статьи для анонсов; при ошибке — пустой список
func (s *BlogService) PostsAnonce(ctx context.Context) []model.Post {
	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		s.log.Errorw("ошибка получения статей из БД", "error", err)
		return []model.Post{}
	}
	return posts
}
