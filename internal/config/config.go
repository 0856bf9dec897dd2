// Package config предоставляет структуры и функции для загрузки конфигурации портала.
//
// Конфиг читается из YAML-файла (путь в CONFIG_PATH), любое поле можно
// переопределить переменной окружения из тега env.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      HTTPServer      `yaml:"http_server"`
	Registry        Registry        `yaml:"registry"`
	Session         Session         `yaml:"session"`
	RedisConnection RedisConnection `yaml:"redis_connection"`
	Referral        Referral        `yaml:"referral"`
	Export          Export          `yaml:"export"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP     string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP     time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// Registry адреса удалённого сервиса регистрации. У каждой операции свой
// скрипт, как и в исходном развёртывании.
type Registry struct {
	LoginURL    string        `yaml:"login_url" env:"REGISTRY_LOGIN_URL" env-required:"true"`
	RegisterURL string        `yaml:"register_url" env:"REGISTRY_REGISTER_URL" env-required:"true"`
	SummaryURL  string        `yaml:"summary_url" env:"REGISTRY_SUMMARY_URL" env-required:"true"`
	Timeout     time.Duration `yaml:"timeout" env:"REGISTRY_TIMEOUT" env-default:"15s"`
}

// Session настройки cookie-сессии
type Session struct {
	TTL    time.Duration `yaml:"ttl" env-default:"168h"`
	Secure bool          `yaml:"secure" env:"SESSION_SECURE"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кэш сводок.
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
	Timeout     time.Duration `yaml:"timeout"`
	SummaryTTL  time.Duration `yaml:"summary_ttl" env-default:"30s"`
}

// Referral настройки реферальной ссылки для QR-кода сотрудника
type Referral struct {
	RegisterURL string `yaml:"register_url" env:"REFERRAL_REGISTER_URL" env-default:"http://localhost:8080/register"`
}

// Export настройки выгрузки отчётов
type Export struct {
	PDFFontPath string `yaml:"pdf_font_path" env:"EXPORT_PDF_FONT_PATH"`
}

// Load читает конфиг из файла по указанному пути.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}
