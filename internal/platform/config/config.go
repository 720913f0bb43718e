package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// DefaultScreeningBase is where the screening service listens in local setups.
const DefaultScreeningBase = "http://localhost:8000/api"

// Server captures process level configuration.
type Server struct {
	Addr      string          `yaml:"addr"`
	Screening ScreeningConfig `yaml:"screening"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Transfer  TransferConfig  `yaml:"transfer"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ScreeningConfig points at the external screening service.
type ScreeningConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CatalogueConfig controls the test gallery.
type CatalogueConfig struct {
	PageSize int `yaml:"page_size"`
	// FixturesDir, when set, serves the catalogue from local result files
	// instead of the screening service.
	FixturesDir string `yaml:"fixtures_dir"`
}

// TransferConfig bounds how long a handed-off result stays readable.
type TransferConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RedisConfig is optional; an empty URL keeps the handoff slot in memory.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Server {
	return Server{
		Addr: ":8080",
		Screening: ScreeningConfig{
			BaseURL: DefaultScreeningBase,
			Timeout: 120 * time.Second,
		},
		Catalogue: CatalogueConfig{PageSize: 8},
		Transfer:  TransferConfig{TTL: 30 * time.Minute},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Log:  LogConfig{Level: "info", Format: "text"},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// FromEnv builds the Server config so main stays lean. Precedence, lowest
// first: defaults, the YAML file named by CONFIG_PATH, .env files, then the
// process environment.
func FromEnv() (Server, error) {
	// gotenv never overrides variables already set in the process.
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Server{}, err
		}
	}
	if err := cfg.overlayEnv(os.LookupEnv); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c *Server) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Server) overlayEnv(lookup func(string) (string, bool)) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	var errs []error
	dur := func(dst *time.Duration, key string) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(dst *int, key string) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str(&c.Addr, "AMLSCOPE_ADDR")
	str(&c.Screening.BaseURL, "SCREENING_API_BASE", "SCREENING_API_URL")
	dur(&c.Screening.Timeout, "SCREENING_TIMEOUT")
	num(&c.Catalogue.PageSize, "CATALOGUE_PAGE_SIZE")
	str(&c.Catalogue.FixturesDir, "FIXTURES_DIR")
	dur(&c.Transfer.TTL, "TRANSFER_TTL")
	str(&c.Redis.URL, "REDIS_URL")
	num(&c.Redis.PoolSize, "REDIS_POOL_SIZE")
	str(&c.Log.Level, "LOG_LEVEL")
	str(&c.Log.Format, "LOG_FORMAT")

	if v, ok := lookup("CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}

	return errors.Join(errs...)
}

// Validate rejects settings the server cannot run with.
func (c Server) Validate() error {
	if c.Catalogue.PageSize < 1 {
		return fmt.Errorf("catalogue page size must be positive, got %d", c.Catalogue.PageSize)
	}
	if c.Screening.BaseURL == "" {
		return errors.New("screening base URL is required")
	}
	if c.Screening.Timeout <= 0 {
		return fmt.Errorf("screening timeout must be positive, got %s", c.Screening.Timeout)
	}
	return nil
}
