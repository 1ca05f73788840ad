package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ReadTimeout        string   `yaml:"read_timeout"`
		WriteTimeout       string   `yaml:"write_timeout"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Auth struct {
		// Secreto HMAC para validar bearer tokens emitidos por el IdP.
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	Portal struct {
		ActiveTTL         string `yaml:"active_ttl"`
		DefaultMenuID     string `yaml:"default_menu_id"`
		DeniedRedirectURL string `yaml:"denied_redirect_url"`
		DeniedMessage     string `yaml:"denied_message"`
		LoginURL          string `yaml:"login_url"`
		HomeURL           string `yaml:"home_url"`
		AdminURL          string `yaml:"admin_url"`
		SelectionURL      string `yaml:"selection_url"`
		FrontResourceID   string `yaml:"front_resource_id"`
	} `yaml:"portal"`

	Audit struct {
		BufferSize int `yaml:"buffer_size"`
	} `yaml:"audit"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json | console
	} `yaml:"log"`
}

func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "15s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "portalgate"
	}
	if c.Portal.ActiveTTL == "" {
		c.Portal.ActiveTTL = "1h"
	}
	if c.Portal.LoginURL == "" {
		c.Portal.LoginURL = "/login"
	}
	if c.Portal.HomeURL == "" {
		c.Portal.HomeURL = "/"
	}
	if c.Portal.AdminURL == "" {
		c.Portal.AdminURL = "/admin"
	}
	if c.Portal.SelectionURL == "" {
		c.Portal.SelectionURL = "/portals"
	}
	if c.Audit.BufferSize == 0 {
		c.Audit.BufferSize = 256
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}

	c.applyEnvOverrides()

	// validate string durations
	for _, d := range []string{
		c.Server.ReadTimeout,
		c.Server.WriteTimeout,
		c.Server.ShutdownTimeout,
		c.Portal.ActiveTTL,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return nil, err
		}
	}
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// ActiveTTL devuelve la duración ya parseada. Load valida el string, así que
// acá un error sólo puede venir de mutar el struct a mano.
func (c *Config) ActiveTTL() time.Duration {
	d, err := time.ParseDuration(c.Portal.ActiveTTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// AUTH
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}

	// PORTAL
	if v, ok := getEnvStr("PORTAL_ACTIVE_TTL"); ok {
		c.Portal.ActiveTTL = v
	}
	if v, ok := getEnvStr("PORTAL_DEFAULT_MENU_ID"); ok {
		c.Portal.DefaultMenuID = v
	}
	if v, ok := getEnvStr("PORTAL_DENIED_REDIRECT_URL"); ok {
		c.Portal.DeniedRedirectURL = v
	}
	if v, ok := getEnvStr("PORTAL_DENIED_MESSAGE"); ok {
		c.Portal.DeniedMessage = v
	}
	if v, ok := getEnvStr("PORTAL_LOGIN_URL"); ok {
		c.Portal.LoginURL = v
	}
	if v, ok := getEnvStr("PORTAL_HOME_URL"); ok {
		c.Portal.HomeURL = v
	}
	if v, ok := getEnvStr("PORTAL_ADMIN_URL"); ok {
		c.Portal.AdminURL = v
	}
	if v, ok := getEnvStr("PORTAL_SELECTION_URL"); ok {
		c.Portal.SelectionURL = v
	}
	if v, ok := getEnvStr("PORTAL_FRONT_RESOURCE_ID"); ok {
		c.Portal.FrontResourceID = v
	}

	// AUDIT
	if v, ok := getEnvInt("AUDIT_BUFFER_SIZE"); ok {
		c.Audit.BufferSize = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_FORMAT"); ok {
		c.Log.Format = strings.ToLower(v)
	}
}
