package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. A single process-wide value is
// assembled at the outer boundary and passed into each component at
// construction; core components carry no hidden global state.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Bedrock BedrockConfig
	Ingest  IngestConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings for the read API.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds settings for the bucket holding source result sheets.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	CacheDir  string `mapstructure:"cache_dir"`
}

// BedrockConfig holds settings for the vision/text model calls.
type BedrockConfig struct {
	Region      string  `mapstructure:"region"`
	ModelID     string  `mapstructure:"model_id"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutSecs int     `mapstructure:"timeout_secs"`
}

// IngestConfig holds batch ingestion settings.
type IngestConfig struct {
	// SupportedExtensions are the file extensions (with dot) eligible for
	// ingestion.
	SupportedExtensions []string `mapstructure:"supported_extensions"`
	// SkipPatterns are filename substrings marking non-result sheets, such
	// as start-order lists.
	SkipPatterns []string `mapstructure:"skip_patterns"`
	// SeasonToken marks the path component carrying the season, e.g.
	// "25-26雪季".
	SeasonToken string `mapstructure:"season_token"`
	// TextThreshold is the minimum extracted characters for a PDF page to
	// count as digital text rather than a scan.
	TextThreshold int `mapstructure:"text_threshold"`
	// RenderDPI is the rasterization resolution for scanned pages; 144 is
	// twice the 72dpi native size.
	RenderDPI int `mapstructure:"render_dpi"`
	// MaxFiles caps how many eligible documents one run processes; 0 means
	// no cap.
	MaxFiles int `mapstructure:"max_files"`
	// Pdftotext and Pdftoppm are the poppler binaries used for PDF text
	// extraction and page rendering.
	Pdftotext string `mapstructure:"pdftotext"`
	Pdftoppm  string `mapstructure:"pdftoppm"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SKIRESULTS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SKIRESULTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "skiresults")
	v.SetDefault("db.password", "skiresults_secret")
	v.SetDefault("db.name", "skiresults_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-west-2")
	v.SetDefault("s3.bucket", "fsun-uswest2")
	v.SetDefault("s3.prefix", "ski/比赛成绩汇总/")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.cache_dir", "data/cache")

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-west-2")
	v.SetDefault("bedrock.model_id", "qwen.qwen3-vl-235b-a22b")
	v.SetDefault("bedrock.max_tokens", 8192)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.timeout_secs", 120)

	// Ingest defaults
	v.SetDefault("ingest.supported_extensions", ".pdf,.jpg,.jpeg,.png,.heic")
	v.SetDefault("ingest.skip_patterns", "出发顺序,秩序册")
	v.SetDefault("ingest.season_token", "雪季")
	v.SetDefault("ingest.text_threshold", 50)
	v.SetDefault("ingest.render_dpi", 144)
	v.SetDefault("ingest.max_files", 0)
	v.SetDefault("ingest.pdftotext", "pdftotext")
	v.SetDefault("ingest.pdftoppm", "pdftoppm")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "SKIRESULTS_SERVER_PORT",
		"server.read_timeout":         "SKIRESULTS_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "SKIRESULTS_SERVER_WRITE_TIMEOUT",
		"server.environment":          "SKIRESULTS_SERVER_ENVIRONMENT",
		"db.host":                     "SKIRESULTS_DB_HOST",
		"db.port":                     "SKIRESULTS_DB_PORT",
		"db.user":                     "SKIRESULTS_DB_USER",
		"db.password":                 "SKIRESULTS_DB_PASSWORD",
		"db.name":                     "SKIRESULTS_DB_NAME",
		"db.sslmode":                  "SKIRESULTS_DB_SSLMODE",
		"db.max_open":                 "SKIRESULTS_DB_MAX_OPEN",
		"db.max_idle":                 "SKIRESULTS_DB_MAX_IDLE",
		"s3.region":                   "SKIRESULTS_S3_REGION",
		"s3.bucket":                   "SKIRESULTS_S3_BUCKET",
		"s3.prefix":                   "SKIRESULTS_S3_PREFIX",
		"s3.endpoint":                 "SKIRESULTS_S3_ENDPOINT",
		"s3.access_key":               "SKIRESULTS_S3_ACCESS_KEY",
		"s3.secret_key":               "SKIRESULTS_S3_SECRET_KEY",
		"s3.cache_dir":                "SKIRESULTS_S3_CACHE_DIR",
		"bedrock.region":              "SKIRESULTS_BEDROCK_REGION",
		"bedrock.model_id":            "SKIRESULTS_BEDROCK_MODEL_ID",
		"bedrock.max_tokens":          "SKIRESULTS_BEDROCK_MAX_TOKENS",
		"bedrock.temperature":         "SKIRESULTS_BEDROCK_TEMPERATURE",
		"bedrock.timeout_secs":        "SKIRESULTS_BEDROCK_TIMEOUT_SECS",
		"ingest.supported_extensions": "SKIRESULTS_INGEST_SUPPORTED_EXTENSIONS",
		"ingest.skip_patterns":        "SKIRESULTS_INGEST_SKIP_PATTERNS",
		"ingest.season_token":         "SKIRESULTS_INGEST_SEASON_TOKEN",
		"ingest.text_threshold":       "SKIRESULTS_INGEST_TEXT_THRESHOLD",
		"ingest.render_dpi":           "SKIRESULTS_INGEST_RENDER_DPI",
		"ingest.max_files":            "SKIRESULTS_INGEST_MAX_FILES",
		"ingest.pdftotext":            "SKIRESULTS_INGEST_PDFTOTEXT",
		"ingest.pdftoppm":             "SKIRESULTS_INGEST_PDFTOPPM",
		"log.level":                   "SKIRESULTS_LOG_LEVEL",
		"log.format":                  "SKIRESULTS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SKIRESULTS_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SKIRESULTS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Prefix:    v.GetString("s3.prefix"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		CacheDir:  v.GetString("s3.cache_dir"),
	}
	cfg.Bedrock = BedrockConfig{
		Region:      v.GetString("bedrock.region"),
		ModelID:     v.GetString("bedrock.model_id"),
		MaxTokens:   v.GetInt("bedrock.max_tokens"),
		Temperature: v.GetFloat64("bedrock.temperature"),
		TimeoutSecs: v.GetInt("bedrock.timeout_secs"),
	}
	cfg.Ingest = IngestConfig{
		SupportedExtensions: splitCSV(v.GetString("ingest.supported_extensions")),
		SkipPatterns:        splitCSV(v.GetString("ingest.skip_patterns")),
		SeasonToken:         v.GetString("ingest.season_token"),
		TextThreshold:       v.GetInt("ingest.text_threshold"),
		RenderDPI:           v.GetInt("ingest.render_dpi"),
		MaxFiles:            v.GetInt("ingest.max_files"),
		Pdftotext:           v.GetString("ingest.pdftotext"),
		Pdftoppm:            v.GetString("ingest.pdftoppm"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
