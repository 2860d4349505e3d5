package handlers

import (
	"errors"
	"net/http"

	"github.com/AUlyanoff/web-api-server/internal/config"
	"github.com/AUlyanoff/web-api-server/internal/middleware"
	"github.com/AUlyanoff/web-api-server/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PageHandler обслуживает html-страницы сайта
type PageHandler struct {
	Blog   *service.BlogService
	Users  *service.UserService
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewPageHandler создаёт хендлер страниц
func NewPageHandler(blog *service.BlogService, users *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *PageHandler {
	return &PageHandler{Blog: blog, Users: users, Logger: logger, Config: cfg}
}

// render исполняет шаблон страницы; ошибка шаблона — это всегда 500
func (h *PageHandler) render(w http.ResponseWriter, name string, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.Logger.Errorw("ошибка рендеринга страницы", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// page собирает общие данные страницы: меню, флеш, признак авторизации
func (h *PageHandler) page(w http.ResponseWriter, r *http.Request, title string) *pageData {
	_, authed := middleware.GetUserIDFromContext(r.Context())
	return &pageData{
		Title:  title,
		Menu:   h.Blog.Menu(r.Context()),
		Flash:  popFlash(w, r),
		Authed: authed,
	}
}

// Index — главная страница с меню и анонсами статей
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Главная")
	data.Posts = h.Blog.PostsAnonce(r.Context())
	h.render(w, "index.html", data)
}

// AddPostForm — форма добавления статьи
func (h *PageHandler) AddPostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "add_post.html", h.page(w, r, "Добавление статьи"))
}

// AddPost — добавление статьи: name — заголовок, post — тело, url — alias
func (h *PageHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name, post, url := r.FormValue("name"), r.FormValue("post"), r.FormValue("url")
	if len(name) > 4 && len(post) > 10 && h.Blog.AddPost(r.Context(), name, post, url) {
		setFlash(w, "Статья добавлена успешно", "success")
	} else {
		setFlash(w, "Ошибка добавления статьи", "error")
	}

	h.render(w, "add_post.html", h.page(w, r, "Добавление статьи"))
}

// ShowPost — страница одной статьи по её alias
func (h *PageHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	alias := chi.URLParam(r, "alias")

	post, err := h.Blog.GetPost(r.Context(), alias)
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := h.page(w, r, post.Title)
	data.Post = post
	h.render(w, "post.html", data)
}

// Donate — статичная страница
func (h *PageHandler) Donate(w http.ResponseWriter, r *http.Request) {
	h.render(w, "donate.html", h.page(w, r, "Пода-а-айте бедному слепому коту Базилио"))
}
