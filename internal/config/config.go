package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string        `yaml:"listen_addr"`
	Port           string        `yaml:"port"`
	DatabaseDriver string        `yaml:"database_driver"`
	DatabasePath   string        `yaml:"database_path"`
	DatabaseURL    string        `yaml:"database_url"`
	JWTSecret      string        `yaml:"jwt_secret"`
	JWTTTL         time.Duration `yaml:"jwt_ttl"`
	GinMode        string        `yaml:"gin_mode"`
	Timezone       string        `yaml:"timezone"`
	CORSOrigin     string        `yaml:"cors_origin"`
	LogLevel       string        `yaml:"log_level"`
	LogFile        string        `yaml:"log_file"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	OpenAIAPIKey   string        `yaml:"openai_api_key"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	OpenAIModel    string        `yaml:"openai_model"`
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 设置 CONFIG_FILE 时先读取 YAML 文件（支持 ${ENV} 占位符），环境变量优先级更高。
func Load() (AppConfig, error) {
	var cfg AppConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = fileCfg
	}

	cfg.Port = pick("PORT", cfg.Port, "5000")
	cfg.ListenAddr = pick("LISTEN_ADDR", cfg.ListenAddr, fmt.Sprintf(":%s", cfg.Port))
	cfg.DatabaseDriver = strings.ToLower(pick("DATABASE_DRIVER", cfg.DatabaseDriver, "sqlite"))
	cfg.DatabasePath = pick("DATABASE_PATH", cfg.DatabasePath, "focusboard.db")
	cfg.DatabaseURL = pick("DATABASE_URL", cfg.DatabaseURL, "")
	cfg.JWTSecret = pick("JWT_SECRET", cfg.JWTSecret, "focusboard-dev-secret")
	cfg.GinMode = pick("GIN_MODE", cfg.GinMode, "release")
	cfg.Timezone = pick("TIMEZONE", cfg.Timezone, "UTC")
	cfg.CORSOrigin = pick("CORS_ORIGIN", cfg.CORSOrigin, "http://localhost:3000")
	cfg.LogLevel = pick("LOG_LEVEL", cfg.LogLevel, "info")
	cfg.LogFile = pick("LOG_FILE", cfg.LogFile, "")
	cfg.OpenAIAPIKey = pick("OPENAI_API_KEY", cfg.OpenAIAPIKey, "")
	cfg.OpenAIBaseURL = pick("OPENAI_BASE_URL", cfg.OpenAIBaseURL, "https://api.openai.com/v1")
	cfg.OpenAIModel = pick("OPENAI_MODEL", cfg.OpenAIModel, "gpt-4o-mini")

	if raw := strings.TrimSpace(os.Getenv("JWT_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return AppConfig{}, fmt.Errorf("invalid JWT_TTL value: %w", err)
		}
		cfg.JWTTTL = ttl
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 7 * 24 * time.Hour
	}

	if raw := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return AppConfig{}, fmt.Errorf("invalid METRICS_ENABLED value: %w", err)
		}
		cfg.MetricsEnabled = enabled
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return AppConfig{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseURL == "" {
		return AppConfig{}, fmt.Errorf("DATABASE_URL is required for the postgres driver")
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return AppConfig{}, fmt.Errorf("invalid TIMEZONE value: %w", err)
	}

	return cfg, nil
}

// Location 返回用于计算"今天"的时区
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadFile(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("error reading config file: %w", err)
	}

	// 将 YAML 中的 ${ENV} 占位符替换为环境变量
	content := string(data)
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		content = strings.ReplaceAll(content, "${"+pair[0]+"}", pair[1])
	}

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

func pick(env, current, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(env)); value != "" {
		return value
	}
	if value := strings.TrimSpace(current); value != "" {
		return value
	}
	return fallback
}
