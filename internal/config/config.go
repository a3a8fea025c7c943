package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Backend   BackendConfig
	ImageHost ImageHostConfig
	RefData   RefDataConfig
	Form      FormConfig
	Pricing   PricingConfig
	Auth      AuthConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ListingsCacheTTL time.Duration
	RefDataCacheTTL  time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	JanitorInterval   time.Duration
}

// BackendConfig - внешний REST API объявлений
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// ImageHostConfig - хостинг изображений (Cloudinary-совместимый API)
type ImageHostConfig struct {
	BaseURL        string
	CloudName      string
	UploadPreset   string
	APIKey         string
	APISecret      string
	RequestTimeout time.Duration
}

// RefDataConfig - справочники локаций и перечислений
type RefDataConfig struct {
	Dir           string
	BaseURL       string
	Locales       []string
	DefaultLocale string
}

// FormConfig - параметры формы создания объявления
type FormConfig struct {
	PinnedCityIDs    []int
	CityResultLimit  int
	StreetGroupLimit int
	StatusSplitIndex int
	Country          string
	MinImages        int
	SessionIdleTTL   time.Duration
	DefaultLat       float64
	DefaultLng       float64
}

type PricingConfig struct {
	GELRate float64
}

type AuthConfig struct {
	SessionTTL time.Duration
	CookieName string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env не обязателен, в контейнере всё приходит из окружения
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	pinned, err := parseIntList(viper.GetString("FORM_PINNED_CITY_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORM_PINNED_CITY_IDS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("API_HOST"),
			Port:         viper.GetInt("API_PORT"),
			Env:          viper.GetString("API_ENV"),
			AllowOrigins: viper.GetString("API_ALLOW_ORIGINS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ListingsCacheTTL: time.Duration(viper.GetInt("LISTINGS_CACHE_TTL")) * time.Second,
			RefDataCacheTTL:  time.Duration(viper.GetInt("REFDATA_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			JanitorInterval:   time.Duration(viper.GetInt("WORKER_JANITOR_INTERVAL")) * time.Second,
		},
		Backend: BackendConfig{
			BaseURL:        viper.GetString("BACKEND_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("BACKEND_REQUEST_TIMEOUT")) * time.Second,
		},
		ImageHost: ImageHostConfig{
			BaseURL:        viper.GetString("IMAGE_HOST_BASE_URL"),
			CloudName:      viper.GetString("IMAGE_HOST_CLOUD_NAME"),
			UploadPreset:   viper.GetString("IMAGE_HOST_UPLOAD_PRESET"),
			APIKey:         viper.GetString("IMAGE_HOST_API_KEY"),
			APISecret:      viper.GetString("IMAGE_HOST_API_SECRET"),
			RequestTimeout: time.Duration(viper.GetInt("IMAGE_HOST_REQUEST_TIMEOUT")) * time.Second,
		},
		RefData: RefDataConfig{
			Dir:           viper.GetString("REFDATA_DIR"),
			BaseURL:       viper.GetString("REFDATA_BASE_URL"),
			Locales:       parseList(viper.GetString("REFDATA_LOCALES")),
			DefaultLocale: viper.GetString("REFDATA_DEFAULT_LOCALE"),
		},
		Form: FormConfig{
			PinnedCityIDs:    pinned,
			CityResultLimit:  viper.GetInt("FORM_CITY_RESULT_LIMIT"),
			StreetGroupLimit: viper.GetInt("FORM_STREET_GROUP_LIMIT"),
			StatusSplitIndex: viper.GetInt("FORM_STATUS_SPLIT_INDEX"),
			Country:          viper.GetString("FORM_COUNTRY"),
			MinImages:        viper.GetInt("FORM_MIN_IMAGES"),
			SessionIdleTTL:   time.Duration(viper.GetInt("FORM_SESSION_IDLE_TTL")) * time.Second,
			DefaultLat:       viper.GetFloat64("FORM_DEFAULT_LAT"),
			DefaultLng:       viper.GetFloat64("FORM_DEFAULT_LNG"),
		},
		Pricing: PricingConfig{
			GELRate: viper.GetFloat64("PRICING_GEL_RATE"),
		},
		Auth: AuthConfig{
			SessionTTL: time.Duration(viper.GetInt("AUTH_SESSION_TTL")) * time.Second,
			CookieName: viper.GetString("AUTH_COOKIE_NAME"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "http://localhost:3000"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cache.ListingsCacheTTL == 0 {
		c.Cache.ListingsCacheTTL = 60 * time.Second
	}
	if c.Cache.RefDataCacheTTL == 0 {
		c.Cache.RefDataCacheTTL = time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "listing-portal-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.JanitorInterval == 0 {
		c.Worker.JanitorInterval = time.Minute
	}
	if c.Backend.RequestTimeout == 0 {
		c.Backend.RequestTimeout = 15 * time.Second
	}
	if c.ImageHost.BaseURL == "" {
		c.ImageHost.BaseURL = "https://api.cloudinary.com/v1_1"
	}
	if c.ImageHost.RequestTimeout == 0 {
		c.ImageHost.RequestTimeout = 60 * time.Second
	}
	if c.RefData.Dir == "" && c.RefData.BaseURL == "" {
		c.RefData.Dir = "./data"
	}
	if len(c.RefData.Locales) == 0 {
		c.RefData.Locales = []string{"ka", "en", "ru"}
	}
	if c.RefData.DefaultLocale == "" {
		c.RefData.DefaultLocale = "ka"
	}
	if len(c.Form.PinnedCityIDs) == 0 {
		c.Form.PinnedCityIDs = []int{95, 96, 97, 2, 3, 100}
	}
	if c.Form.CityResultLimit == 0 {
		c.Form.CityResultLimit = 50
	}
	if c.Form.StreetGroupLimit == 0 {
		c.Form.StreetGroupLimit = 30
	}
	if c.Form.StatusSplitIndex == 0 {
		c.Form.StatusSplitIndex = 3
	}
	if c.Form.Country == "" {
		c.Form.Country = "Georgia"
	}
	if c.Form.SessionIdleTTL == 0 {
		c.Form.SessionIdleTTL = 2 * time.Hour
	}
	if c.Form.DefaultLat == 0 && c.Form.DefaultLng == 0 {
		c.Form.DefaultLat = 41.7151
		c.Form.DefaultLng = 44.8271
	}
	if c.Pricing.GELRate == 0 {
		c.Pricing.GELRate = 2.70
	}
	if c.Auth.SessionTTL == 0 {
		c.Auth.SessionTTL = 24 * time.Hour
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "session_id"
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseIntList(s string) ([]int, error) {
	parts := parseList(s)
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// SupportsLocale - есть ли справочники для локали
func (c *Config) SupportsLocale(locale string) bool {
	for _, l := range c.RefData.Locales {
		if l == locale {
			return true
		}
	}
	return false
}
