package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/AUlyanoff/web-api-server/internal/config"
	"github.com/AUlyanoff/web-api-server/internal/handlers"
	"github.com/AUlyanoff/web-api-server/internal/middleware"
	"github.com/AUlyanoff/web-api-server/internal/model"
	"github.com/AUlyanoff/web-api-server/internal/repo"
	"github.com/AUlyanoff/web-api-server/internal/service"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

var testDBSeq atomic.Int64

// newTestApp поднимает роутер на in-memory SQLite со всеми тремя таблицами.
// Имя базы уникально на тест, cache=shared — чтобы все соединения пула
// database/sql видели одни и те же таблицы.
func newTestApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.MenuItem{}, &model.Post{}, &model.User{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	sugar := zap.NewNop().Sugar()
	middleware.SetLogger(sugar)

	blog := service.NewBlogService(repo.NewMenuRepository(db), repo.NewPostRepository(db), sugar, "/static/images_html")
	users := service.NewUserService(repo.NewUserRepository(db), sugar)

	cfg := &config.Config{AuthSecret: testSecret, AppPath: t.TempDir()}
	h := handlers.NewHandler(blog, users, sugar, cfg)
	return h.Router, db
}

// addAuthCookie выписывает запросу валидную cookie авторизации
func addAuthCookie(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, testSecret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// findCookie ищет cookie по имени в ответе
func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c
		}
	}
	return nil
}

// multipartFile собирает multipart-тело с одним файловым полем
func multipartFile(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	_ = mw.Close()
	return &b, mw.FormDataContentType()
}
