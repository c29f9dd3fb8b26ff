package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Типы хранилищ тестов и попыток
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Режимы получения обновлений бота
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token        string        `yaml:"token"`
		Mode         string        `yaml:"mode"`
		WebhookURL   string        `yaml:"webhook_url"`
		ListenAddr   string        `yaml:"listen_addr"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Storage struct {
		// Type memory или postgres
		Type string `yaml:"type"`
		// SessionStore memory или json, где хранится текущий пользователь
		SessionStore string `yaml:"session_store"`
		SessionFile  string `yaml:"session_file"`
	} `yaml:"storage"`
	Identity struct {
		Latency    time.Duration `yaml:"latency"`
		BcryptCost int           `yaml:"bcrypt_cost"`
	} `yaml:"identity"`
	Taking struct {
		TickInterval time.Duration `yaml:"tick_interval"`
	} `yaml:"taking"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Results struct {
		PassScore int `yaml:"pass_score"`
	} `yaml:"results"`
}

// LoadConfig читает YAML, затем .env и переменные окружения
func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config %s", filename)
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	// .env не обязателен
	_ = godotenv.Load()
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("STORAGE_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = ModePolling
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollInterval == 0 {
		c.TelegramBot.PollInterval = 10 * time.Second
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StorageMemory
	}
	if c.Storage.SessionStore == "" {
		c.Storage.SessionStore = "memory"
	}
	if c.Storage.SessionFile == "" {
		c.Storage.SessionFile = "session.json"
	}
	if c.Taking.TickInterval == 0 {
		c.Taking.TickInterval = time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Results.PassScore == 0 {
		c.Results.PassScore = 60
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageMemory:
	case StoragePostgres:
		if c.Database.Name == "" {
			return errors.New("postgres storage requires database.dbname")
		}
	default:
		return errors.Errorf("unknown storage type %q", c.Storage.Type)
	}
	switch c.Storage.SessionStore {
	case "memory", "json":
	default:
		return errors.Errorf("unknown session store %q", c.Storage.SessionStore)
	}
	switch c.TelegramBot.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.TelegramBot.WebhookURL == "" {
			return errors.New("webhook mode requires telegram_bot.webhook_url")
		}
	default:
		return errors.Errorf("unknown bot mode %q", c.TelegramBot.Mode)
	}
	if c.Results.PassScore < 0 || c.Results.PassScore > 100 {
		return errors.Errorf("pass_score %d out of range", c.Results.PassScore)
	}
	return nil
}

// DatabaseURL строка подключения к PostgreSQL, пользователь и пароль экранируются
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   net.JoinHostPort(c.Database.Host, c.Database.Port),
		Path:   "/" + c.Database.Name,
	}
	return u.String()
}

// HTTPAddr адрес HTTP сервера
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
