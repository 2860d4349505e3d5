package handlers

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/AUlyanoff/web-api-server/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// tmpl — все страницы сайта; рендеринг тонкий, вся логика в сервисах
var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	// тело статьи хранится как html
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templatesFS, "templates/*.html"))

// Flash — одноразовое сообщение пользователю после действия
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"` // "success" | "error"
}

const flashCookie = "flash"

// setFlash запоминает сообщение в короткоживущей cookie
func setFlash(w http.ResponseWriter, message, category string) {
	raw, _ := json.Marshal(Flash{Message: message, Category: category})
	http.SetCookie(w, &http.Cookie{
		Name:  flashCookie,
		Value: base64.RawURLEncoding.EncodeToString(raw),
		Path:  "/",
	})
}

// popFlash забирает сообщение и сразу гасит cookie
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	f := &Flash{}
	if json.Unmarshal(raw, f) != nil {
		return nil
	}
	return f
}

// pageData — общие данные любой страницы сайта
type pageData struct {
	Title  string
	Menu   []model.MenuItem
	Posts  []model.Post
	Post   *model.Post
	User   *model.User
	Flash  *Flash
	Authed bool
}
