package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/AUlyanoff/web-api-server/internal/middleware"
	"github.com/AUlyanoff/web-api-server/internal/service"
)

// allowedAvatarExt — допустимые расширения файла аватара (без учёта регистра)
var allowedAvatarExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// LoginForm — страница авторизации
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	h.render(w, "login.html", h.page(w, r, "Авторизация"))
}

// Login — проверка пары email/пароль и выдача cookie авторизации
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email, psw := r.FormValue("email"), r.FormValue("psw")
	remember := r.FormValue("remember") != ""

	user, err := h.Users.Login(r.Context(), email, psw)
	if err != nil {
		setFlash(w, "Неверная пара логин/пароль", "error")
		h.render(w, "login.html", h.page(w, r, "Авторизация"))
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret, remember); err != nil {
		h.Logger.Errorw("не удалось выписать cookie авторизации", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/profile"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

// Logout — выход из профиля
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	setFlash(w, "Вы вышли из аккаунта", "success")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// RegisterForm — страница регистрации
func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", h.page(w, r, "Регистрация"))
}

// Register — добавление пользователя, email должен быть уникальным
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name, email := r.FormValue("name"), r.FormValue("email")
	psw, psw2 := r.FormValue("psw"), r.FormValue("psw2")

	if len(name) < 2 || !strings.Contains(email, "@") || psw == "" || psw != psw2 {
		setFlash(w, "Неверно заполнены поля формы", "error")
		h.render(w, "register.html", h.page(w, r, "Регистрация"))
		return
	}

	_, err := h.Users.Register(r.Context(), name, email, psw)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			setFlash(w, "Пользователь с таким email уже существует", "error")
		} else {
			setFlash(w, "Ошибка при добавлении в БД", "error")
		}
		h.render(w, "register.html", h.page(w, r, "Регистрация"))
		return
	}

	setFlash(w, "Вы успешно зарегистрированы", "success")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Profile — страница профиля
func (h *PageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.GetUserIDFromContext(r.Context())
	data := h.page(w, r, "Профиль")
	if user, err := h.Users.GetUser(r.Context(), uid); err == nil {
		data.User = user
	}
	h.render(w, "profile.html", data)
}

// UserAva отдаёт аватар текущего пользователя.
// Content-Type всегда image/png независимо от формата загрузки —
// поведение оригинала сохранено намеренно.
func (h *PageHandler) UserAva(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.GetUserIDFromContext(r.Context())

	var img []byte
	if user, err := h.Users.GetUser(r.Context(), uid); err == nil && len(user.Avatar) > 0 {
		img = user.Avatar
	} else {
		img = h.defaultAvatar()
	}
	if len(img) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}

// defaultAvatar читает аватар по умолчанию из каталога статики
func (h *PageHandler) defaultAvatar() []byte {
	path := filepath.Join(h.Config.AppPath, "site", "static", "images", "default.png")
	img, err := os.ReadFile(path)
	if err != nil {
		h.Logger.Errorw("не найден аватар по умолчанию", "path", path, "error", err)
		return nil
	}
	return img
}

// UploadForm: форма не рендерится отдельно, загрузка идёт со страницы профиля
func (h *PageHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// Upload — обновление аватара из multipart-поля file
func (h *PageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.GetUserIDFromContext(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		setFlash(w, "Ошибка обновления аватара", "error")
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	defer file.Close()

	if !verifyExt(header.Filename) {
		setFlash(w, "Ошибка обновления аватара", "error")
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}

	img, err := io.ReadAll(file)
	if err != nil {
		setFlash(w, "Ошибка чтения файла", "error")
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}

	if h.Users.UpdateAvatar(r.Context(), uid, img) {
		setFlash(w, "Аватар обновлен", "success")
	} else {
		setFlash(w, "Ошибка обновления аватара", "error")
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// verifyExt проверяет расширение файла аватара по списку разрешённых
func verifyExt(filename string) bool {
	return allowedAvatarExt[strings.ToLower(filepath.Ext(filename))]
}
