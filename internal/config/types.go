package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int               `yaml:"port"`
	Env            string            `yaml:"env"` // "development" | "production"
	Timezone       string            `yaml:"timezone"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	JWTSecret      string            `yaml:"jwt_secret"`
	Database       DatabaseConfig    `yaml:"database"`
	Redis          RedisConfig       `yaml:"redis"`
	Storage        StorageConfig     `yaml:"storage"`
	AI             AIConfig          `yaml:"ai"`
	Diagnostics    DiagnosticsConfig `yaml:"diagnostics"`
	Tagging        TaggingConfig     `yaml:"tagging"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type StorageConfig struct {
	S3 S3Options `yaml:"s3"`
}

type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

type AIConfig struct {
	Providers             []AIProvider `yaml:"providers"`
	EnableSummary         bool         `yaml:"enable_summary"`
	SummaryTargetLanguage string       `yaml:"summary_target_language"`
	SummaryProviderID     string       `yaml:"summary_provider_id"`
	SummaryModel          string       `yaml:"summary_model"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// DiagnosticsConfig tunes the issue scanner. The thresholds are deliberately
// configuration, not code constants: deployments disagree on what counts as
// "stuck" or "recent".
type DiagnosticsConfig struct {
	StalenessHours      int      `yaml:"staleness_hours"`
	RecentWindowMinutes int      `yaml:"recent_window_minutes"`
	Watchlist           []string `yaml:"watchlist"`
	ScanIntervalMinutes int      `yaml:"scan_interval_minutes"`
}

type TaggingConfig struct {
	// CategoryChangeLimit guards bulk edits: a source-category change bundled
	// with more ids than this is skipped while tags still apply.
	CategoryChangeLimit int `yaml:"category_change_limit"`
}
