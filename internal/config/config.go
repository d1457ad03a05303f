package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "MB_"

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored.
func LoadDotEnv(filename ...string) {
	for _, name := range filename {
		if err := godotenv.Load(name); err == nil {
			slog.Info("env loaded from " + name)
		}
	}
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

// LoadEnv reads prefixed variables. The first underscore after a section
// name becomes a dot: MB_REDIS_ADDR sets redis.addr.
func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))
		for _, pr := range []string{"redis_", "bus_", "chat_"} {
			if strings.HasPrefix(s1, pr) {
				return strings.Replace(s1, "_", ".", 1)
			}
		}

		return s1
	}), nil)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) Int(key string) int {
	return c.k.Int(key)
}

func (c *AppConfig) Duration(key string) time.Duration {
	return c.k.Duration(key)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) ApiAddr() string {
	return c.k.String("api_addr")
}

func (c *AppConfig) DSN() string {
	return c.k.String("db")
}

func (c *AppConfig) BrawlersFile() string {
	return c.k.String("brawlers_file")
}

func (c *AppConfig) JWTSecret() string {
	return c.k.String("jwt_secret")
}

func (c *AppConfig) BusBuffer() int {
	return c.k.Int("bus.buffer")
}

func (c *AppConfig) ChatBuffer() int {
	return c.k.Int("chat.buffer")
}

func (c *AppConfig) StatsTTL() time.Duration {
	return c.k.Duration("stats_ttl")
}

func (c *AppConfig) JoinRateLimit() int {
	return c.k.Int("join_rate_limit")
}

func (c *AppConfig) Redis() RedisConfig {
	return RedisConfig{
		Addr:     c.k.String("redis.addr"),
		Password: c.k.String("redis.password"),
		DB:       c.k.Int("redis.db"),
	}
}

func (c *AppConfig) SentryDSN() string {
	return c.k.String("sentry_dsn")
}

func (c *AppConfig) Environment() string {
	return c.k.String("environment")
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func setDefaults(k *koanf.Koanf) {
	k.Set("api_addr", ":8080")
	k.Set("db", "missionboard.sqlite")
	k.Set("brawlers_file", "brawlers.yml")
	k.Set("environment", "development")

	k.Set("bus.buffer", 1024)
	k.Set("chat.buffer", 100)

	k.Set("stats_ttl", "10s")
	k.Set("join_rate_limit", 30)
}
