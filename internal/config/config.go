package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig 聚合运行时配置，尽量通过环境变量注入，避免硬编码。
// server 与 marketctl 共用一份加载逻辑，各取所需字段。
type AppConfig struct {
	HTTPAddr string
	DBPath   string

	RedisAddr string
	RedisDB   int

	// 客户端侧：后端地址、单请求超时、每页条数
	APIBaseURL     string
	RequestTimeout time.Duration
	PageLimit      int

	// 占位数据默认关闭，只在开发环境显式打开
	FallbackEnabled bool
	LocalStorePath  string

	// 购物车会话 TTL 与变更接口限流
	CartTTL          time.Duration
	MutateRateLimit  int
	MutateRateWindow time.Duration
}

// Load 读取并校验配置，缺失时使用默认值。
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "marketplace.db"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          0,
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		RequestTimeout:   10 * time.Second,
		PageLimit:        20,
		FallbackEnabled:  false,
		LocalStorePath:   getEnv("LOCAL_STORE_PATH", ".marketplace_local.json"),
		CartTTL:          24 * time.Hour,
		MutateRateLimit:  100,
		MutateRateWindow: time.Second,
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	timeoutSec, err := getEnvInt("REQUEST_TIMEOUT_SEC", int(cfg.RequestTimeout.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REQUEST_TIMEOUT_SEC: %w", err)
	}
	if timeoutSec <= 0 {
		return AppConfig{}, fmt.Errorf("REQUEST_TIMEOUT_SEC must be > 0")
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	pageLimit, err := getEnvInt("PAGE_LIMIT", cfg.PageLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid PAGE_LIMIT: %w", err)
	}
	if pageLimit <= 0 {
		return AppConfig{}, fmt.Errorf("PAGE_LIMIT must be > 0")
	}
	cfg.PageLimit = pageLimit

	cfg.FallbackEnabled = getEnvBool("FALLBACK_ENABLED", cfg.FallbackEnabled)

	cartTTLHour, err := getEnvInt("CART_TTL_HOUR", int(cfg.CartTTL.Hours()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid CART_TTL_HOUR: %w", err)
	}
	if cartTTLHour <= 0 {
		return AppConfig{}, fmt.Errorf("CART_TTL_HOUR must be > 0")
	}
	cfg.CartTTL = time.Duration(cartTTLHour) * time.Hour

	rateLimit, err := getEnvInt("MUTATE_RATE_LIMIT", cfg.MutateRateLimit)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid MUTATE_RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return AppConfig{}, fmt.Errorf("MUTATE_RATE_LIMIT must be > 0")
	}
	cfg.MutateRateLimit = rateLimit

	rateWindowSec, err := getEnvInt("MUTATE_RATE_WINDOW_SEC", int(cfg.MutateRateWindow.Seconds()))
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid MUTATE_RATE_WINDOW_SEC: %w", err)
	}
	if rateWindowSec <= 0 {
		return AppConfig{}, fmt.Errorf("MUTATE_RATE_WINDOW_SEC must be > 0")
	}
	cfg.MutateRateWindow = time.Duration(rateWindowSec) * time.Second

	if cfg.APIBaseURL == "" {
		return AppConfig{}, fmt.Errorf("API_BASE_URL must not be empty")
	}

	return cfg, nil
}

// getEnv 读取字符串环境变量，若为空则返回默认值。
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt 读取整数环境变量，若为空则返回默认值。
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

// getEnvBool 读取布尔环境变量（true/1/yes 视为真）。
func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes"
}
