package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/AUlyanoff/web-api-server/internal/config"
	"github.com/AUlyanoff/web-api-server/internal/middleware"
	"github.com/AUlyanoff/web-api-server/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	blog *service.BlogService,
	users *service.UserService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	pages := NewPageHandler(blog, users, logger, cfg)
	api := NewAPIHandler(users, logger)

	// открытые страницы
	r.Get("/", pages.Index)
	r.Get("/login", pages.LoginForm)
	r.Post("/login", pages.Login)
	r.Get("/register", pages.RegisterForm)
	r.Post("/register", pages.Register)
	r.Get("/donate", pages.Donate)

	// страницы только для авторизованных
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth)
		g.Get("/add_post", pages.AddPostForm)
		g.Post("/add_post", pages.AddPost)
		g.Get("/post/{alias}", pages.ShowPost)
		g.Get("/logout", pages.Logout)
		g.Get("/profile", pages.Profile)
		g.Get("/userava", pages.UserAva)
		g.Get("/upload", pages.UploadForm)
		g.Post("/upload", pages.Upload)
	})

	// read-only json api
	r.Route("/api/v1", func(ar chi.Router) {
		ar.Get("/users/count", api.UsersCount)
		ar.Get("/users/list", api.UsersList)
	})

	// статика сайта
	staticDir := filepath.Join(cfg.AppPath, "site", "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	return &Handler{Router: r}
}
