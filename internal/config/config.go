package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort = 3333
	defaultEnv  = "development"

	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = ""
	defaultDBName     = "transcript_core"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"

	defaultRedisHost = "127.0.0.1"
	defaultRedisPort = 6379
	defaultRedisDB   = 0

	defaultStalenessHours      = 24
	defaultRecentWindowMinutes = 60
	defaultScanIntervalMinutes = 30
	defaultCategoryChangeLimit = 10
)

// defaultWatchlist names recurring internal events whose transcripts are
// usually duplicates of an already-curated reference corpus.
var defaultWatchlist = []string{
	"weekly deal review",
	"monthly portfolio update",
	"quarterly earnings",
	"all hands",
	"daily standup",
}

// Load reads and validates the YAML config file.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %q, expected 1-65535", cfg.Port, path)
	}
	if cfg.Database.Port < 1 || cfg.Database.Port > 65535 {
		return nil, fmt.Errorf("invalid database.port %d in %q, expected 1-65535", cfg.Database.Port, path)
	}
	if cfg.Redis.Port < 1 || cfg.Redis.Port > 65535 {
		return nil, fmt.Errorf("invalid redis.port %d in %q, expected 1-65535", cfg.Redis.Port, path)
	}
	if cfg.Diagnostics.StalenessHours < 1 {
		return nil, fmt.Errorf("invalid diagnostics.staleness_hours %d in %q, expected >= 1", cfg.Diagnostics.StalenessHours, path)
	}
	if cfg.Tagging.CategoryChangeLimit < 1 {
		return nil, fmt.Errorf("invalid tagging.category_change_limit %d in %q, expected >= 1", cfg.Tagging.CategoryChangeLimit, path)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:    defaultDBHost,
			Port:    defaultDBPort,
			User:    defaultDBUser,
			Name:    defaultDBName,
			Charset: defaultDBCharset,
			Loc:     defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Diagnostics: DiagnosticsConfig{
			StalenessHours:      defaultStalenessHours,
			RecentWindowMinutes: defaultRecentWindowMinutes,
			ScanIntervalMinutes: defaultScanIntervalMinutes,
		},
		Tagging: TaggingConfig{
			CategoryChangeLimit: defaultCategoryChangeLimit,
		},
	}
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	db := &cfg.Database
	db.DSN = strings.TrimSpace(db.DSN)
	db.Host = strings.TrimSpace(db.Host)
	db.User = strings.TrimSpace(db.User)
	db.Name = strings.TrimSpace(db.Name)
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Name == "" {
		db.Name = defaultDBName
	}
	if db.Charset == "" {
		db.Charset = defaultDBCharset
	}
	if db.Loc == "" {
		db.Loc = defaultDBLoc
	}

	r := &cfg.Redis
	r.URL = strings.TrimSpace(r.URL)
	r.Host = strings.TrimSpace(r.Host)
	if r.Host == "" && r.URL == "" {
		r.Host = defaultRedisHost
	}
	if r.Port == 0 {
		r.Port = defaultRedisPort
	}
	if r.DB < 0 {
		r.DB = defaultRedisDB
	}

	d := &cfg.Diagnostics
	if d.StalenessHours == 0 {
		d.StalenessHours = defaultStalenessHours
	}
	if d.RecentWindowMinutes == 0 {
		d.RecentWindowMinutes = defaultRecentWindowMinutes
	}
	if d.ScanIntervalMinutes == 0 {
		d.ScanIntervalMinutes = defaultScanIntervalMinutes
	}
	if len(d.Watchlist) == 0 {
		d.Watchlist = append([]string(nil), defaultWatchlist...)
	}
	for i, entry := range d.Watchlist {
		d.Watchlist[i] = strings.ToLower(strings.TrimSpace(entry))
	}

	if cfg.Tagging.CategoryChangeLimit == 0 {
		cfg.Tagging.CategoryChangeLimit = defaultCategoryChangeLimit
	}
}
