package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Secret — секретное значение конфига (пароль). В yml может быть записано
// и строкой, и числом; в логах всегда печатается замаскированным.
type Secret string

// UnmarshalYAML принимает любой скаляр: строку или целое число
func (s *Secret) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("password: ожидался скаляр, получен %v", value.Kind)
	}
	*s = Secret(value.Value)
	return nil
}

func (s Secret) String() string { return "******" }

// Reveal возвращает фактическое значение секрета
func (s Secret) Reveal() string { return string(s) }

// DatabaseConfig — схема параметров соединения с базой (секция db).
// Неописанные ключи запрещены (строгий разбор yml, см. strictDecode).
type DatabaseConfig struct {
	// обязательные параметры
	Schema   string `yaml:"db_schema" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password Secret `yaml:"password" validate:"required"`
	Host     string `yaml:"host" validate:"required,db_host"`
	Port     int    `yaml:"port" validate:"required,gt=0"` // натуральное число, верхней границы нет
	Name     string `yaml:"name" validate:"required"`

	// необязательные параметры, могут отсутствовать.
	// Границы пулов объявлены на указателях: отсутствующий ключ получает
	// значение по умолчанию, а явный ноль доходит до валидатора и отклоняется.
	Type        string `yaml:"type" validate:"oneof=postgresql PostgreSQL Mock mock"`
	MinConn     *int   `yaml:"minconn" validate:"gte=1,lte=1999"`
	MaxConn     *int   `yaml:"maxconn" validate:"gte=2,lte=2000"`
	SSLMode     string `yaml:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SSLRootCert string `yaml:"sslrootcert" validate:"omitempty,file"` // путь существует и является файлом
	SSLCert     string `yaml:"sslcert" validate:"omitempty,file"`
	SSLKey      string `yaml:"sslkey" validate:"omitempty,file"`
}

// applyDefaults подставляет значения по умолчанию для отсутствующих
// необязательных параметров, до запуска валидации
func (c *DatabaseConfig) applyDefaults() {
	if c.Type == "" {
		c.Type = "postgresql"
	}
	if c.MinConn == nil {
		c.MinConn = intDefault(5)
	}
	if c.MaxConn == nil {
		c.MaxConn = intDefault(40)
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

// intDefault возвращает указатель на значение по умолчанию
func intDefault(n int) *int { return &n }

// ServerConfig — вложенный параметр server секции app.
// NumThreads на указателе по той же причине, что и границы пулов:
// явный ноль в конфиге — нарушение, а не просьба о значении по умолчанию.
type ServerConfig struct {
	Host       string `yaml:"host" validate:"omitempty,ip"`
	Port       int    `yaml:"port" validate:"omitempty,gt=0"`
	NumThreads *int   `yaml:"numthreads" validate:"gte=1,lte=1024"`
}

// AppConfig — схема параметров приложения (секция app).
// Все параметры необязательные, неописанные ключи запрещены.
type AppConfig struct {
	LogLevel             string        `yaml:"loglevel" validate:"oneof=DEBUG INFO WARNING ERROR CRITICAL FATAL"`
	Timing               string        `yaml:"timing" validate:"oneof=DEBUG INFO WARNING ERROR CRITICAL FATAL"` // порог для таймингов
	Debug                bool          `yaml:"debug"`
	LogFormat            string        `yaml:"log_format"`
	ReloadSettingsPeriod *int          `yaml:"reload_settings_period" validate:"omitempty,gte=0,lte=3600"`
	Server               *ServerConfig `yaml:"server"`
}

func (c *AppConfig) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "DEBUG"
	}
	if c.Timing == "" {
		c.Timing = "CRITICAL"
	}
	if c.Server != nil && c.Server.NumThreads == nil {
		c.Server.NumThreads = intDefault(20)
	}
}

// newValidator создаёт валидатор с кастомной проверкой db_host
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// хост базы: IP-адрес v4/v6, или url со схемой, или простая строка —
	// первый успешный разбор побеждает
	_ = v.RegisterValidation("db_host", func(fl validator.FieldLevel) bool {
		host := fl.Field().String()
		if net.ParseIP(host) != nil {
			return true
		}
		if u, err := url.Parse(host); err == nil && u.Scheme != "" && u.Host != "" {
			return true
		}
		return host != ""
	})

	return v
}

// checkStruct валидирует структуру конфига.
// Возвращает validator.ValidationErrors со ВСЕМИ нарушениями разом.
func checkStruct(s any) error {
	if err := newValidator().Struct(s); err != nil {
		return err
	}
	return nil
}
