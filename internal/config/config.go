// Package config はアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Holodex API
	HolodexAPIKey string
	HolodexAPIURL string

	// hololyzer.net
	HololyzerBaseURL string

	// Dataset
	DatasetPath string

	// Fetch
	FetchTimeout    time.Duration
	CatalogPageSize int
	FetchRate       float64
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
// ネットワークアクセスを伴う処理より前に呼び出すこと。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.HolodexAPIKey = os.Getenv("HOLODEX_API_KEY")
	if cfg.HolodexAPIKey == "" {
		missing = append(missing, "HOLODEX_API_KEY")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.HolodexAPIURL = getEnvString("HOLODEX_API_URL", "https://holodex.net/api/v2")
	cfg.HololyzerBaseURL = getEnvString("HOLOLYZER_BASE_URL", "https://hololyzer.net")
	cfg.DatasetPath = getEnvString("DATASET_PATH", "data/hololyzer.csv")
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.CatalogPageSize = getEnvInt("CATALOG_PAGE_SIZE", 50)
	cfg.FetchRate = getEnvFloat("FETCH_RATE", 2)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
