package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Коды завершения процесса при невалидном конфиге.
// Недонастроенная система стартовать не должна (fail-fast).
const (
	ExitBadDBConfig  = 2
	ExitBadAppConfig = 4
)

// Config читает конфиги в типизированные структуры и выдаёт параметры.
//
//	db[_dev].yml  - параметры соединения с базой
//	app[_dev].yml - параметры приложения
//
// Если существует конфиг разработчика (db_dev.yml, app_dev.yml), то
// используется только он, продуктовый файл игнорируется целиком.
type Config struct {
	DB  DatabaseConfig
	App AppConfig

	SrcPath    string `env:"SRC_PATH"`    // корень проекта, тут лежит каталог config
	AppPath    string `env:"APP_PATH"`    // каталог приложения, тут лежит site/static
	AuthSecret string `env:"AUTH_SECRET"` // секрет подписи cookie авторизации
}

// New читает переменные окружения и оба yml-конфига, валидирует их.
// Ошибки возвращаются наружу, решение о завершении принимает вызывающий.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("разбор переменных окружения: %w", err)
	}

	wd, _ := os.Getwd()
	if cfg.SrcPath == "" {
		cfg.SrcPath = wd
	}
	if cfg.AppPath == "" {
		cfg.AppPath = filepath.Join(wd, "app")
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}

	if err := cfg.loadDB(); err != nil {
		return cfg, &GroupError{Group: "db", Err: err}
	}
	if err := cfg.loadApp(); err != nil {
		return cfg, &GroupError{Group: "app", Err: err}
	}
	return cfg, nil
}

// MustLoad — New плюс fail-fast: нарушения логируются одним списком,
// процесс завершается со своим кодом для каждой группы конфигов.
func MustLoad(sugar *zap.SugaredLogger) *Config {
	cfg, err := New()
	if err == nil {
		sugar.Infow("конфиги прочитаны и проверены",
			"src_path", cfg.SrcPath, "app_path", cfg.AppPath)
		return cfg
	}

	code := 1
	var ge *GroupError
	if errors.As(err, &ge) {
		switch ge.Group {
		case "db":
			code = ExitBadDBConfig
		case "app":
			code = ExitBadAppConfig
		}
	}
	sugar.Errorw("конфиг не прошёл проверку", "error", err)
	osExit(code)
	return nil
}

// osExit вынесен в переменную ради тестируемости MustLoad
var osExit = os.Exit

// GroupError помечает, какая группа конфигов не прошла загрузку/проверку
type GroupError struct {
	Group string // "db" или "app"
	Err   error
}

func (e *GroupError) Error() string { return e.Group + " config: " + e.Err.Error() }
func (e *GroupError) Unwrap() error { return e.Err }

// loadDB читает и проверяет секцию db
func (c *Config) loadDB() error {
	section, err := c.loadSection("db", "db_dev.yml", "db.yml")
	if err != nil {
		return err
	}
	for k, v := range runtimeOverrides() { // доливаем настройки из базы (или откуда угодно)
		section[k] = v
	}
	if err := strictDecode(section, &c.DB); err != nil {
		return err
	}
	c.DB.applyDefaults()
	return checkStruct(&c.DB)
}

// loadApp читает и проверяет секцию app
func (c *Config) loadApp() error {
	section, err := c.loadSection("app", "app_dev.yml", "app.yml")
	if err != nil {
		return err
	}
	for k, v := range runtimeOverrides() {
		section[k] = v
	}
	if err := strictDecode(section, &c.App); err != nil {
		return err
	}
	c.App.applyDefaults()
	return checkStruct(&c.App)
}

// loadSection находит yml-файл (сначала вариант разработчика, потом
// продуктовый) и достаёт из него именованную верхнеуровневую секцию
func (c *Config) loadSection(key, devName, prodName string) (map[string]any, error) {
	path := filepath.Join(c.SrcPath, "config", devName)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(c.SrcPath, "config", prodName)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("конфиг не найден: %s", path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}

	section, ok := doc[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("секция %q не найдена: %s", key, path)
	}
	return section, nil
}

// runtimeOverrides — точка расширения: настройки из базы или откуда угодно,
// перекрывают файловые по ключам. Пока всегда пусто.
func runtimeOverrides() map[string]any {
	return map[string]any{}
}

// strictDecode раскладывает секцию в структуру, запрещая неописанные ключи
func strictDecode(section map[string]any, out any) error {
	raw, err := yaml.Marshal(section)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// ----------------------------- параметры приложения --------------------------
// Зашитые значения ниже — последний рубеж на случай обхода валидации,
// после успешного MustLoad большинство из них недостижимы.

// LogLevel возвращает уровень логирования
func (c *Config) LogLevel() string {
	if c.App.LogLevel == "" {
		return "DEBUG"
	}
	return c.App.LogLevel
}

// DebugMode — в каком режиме запускать приложение
func (c *Config) DebugMode() bool { return c.App.Debug }

// Threads возвращает разрешённое число одновременных запросов
func (c *Config) Threads() int {
	if c.App.Server == nil || c.App.Server.NumThreads == nil {
		return 8
	}
	return *c.App.Server.NumThreads
}

// AppHost возвращает адрес, который слушает приложение
func (c *Config) AppHost() string {
	if c.App.Server == nil || c.App.Server.Host == "" {
		return "0.0.0.0"
	}
	return c.App.Server.Host
}

// AppPort возвращает порт, который слушает приложение
func (c *Config) AppPort() int {
	if c.App.Server == nil || c.App.Server.Port == 0 {
		return 5050
	}
	return c.App.Server.Port
}

// ----------------------------- параметры базы --------------------------------

// DBHost возвращает хост БД
func (c *Config) DBHost() string {
	if c.DB.Host == "" {
		return "127.0.0.1"
	}
	return c.DB.Host
}

// DBPort возвращает порт БД
func (c *Config) DBPort() int {
	if c.DB.Port == 0 {
		return 5432
	}
	return c.DB.Port
}

// DBName возвращает имя БД
func (c *Config) DBName() string {
	if c.DB.Name == "" {
		return "demo"
	}
	return c.DB.Name
}

// DBSchema возвращает схему БД
func (c *Config) DBSchema() string {
	if c.DB.Schema == "" {
		return "public"
	}
	return c.DB.Schema
}

// DBUser возвращает имя пользователя БД
func (c *Config) DBUser() string {
	if c.DB.User == "" {
		return "postgres"
	}
	return c.DB.User
}

// DBPassword возвращает пароль БД
func (c *Config) DBPassword() string { return c.DB.Password.Reveal() }

// DSN собирает строку подключения gorm/pgx из параметров секции db
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.DBHost(), c.DBPort(), c.DBUser(), c.DBPassword(), c.DBName(), c.DB.SSLMode, c.DBSchema())
}
