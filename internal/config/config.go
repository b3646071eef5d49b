package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT検証シークレット（発行側と共有）

	GoEnv string // dev/prod

	// 顧客が注文作成後にキャンセルできる猶予。
	// 短い固定猶予があること自体が仕様。長さは環境変数で調整する。
	CancelWindow time.Duration
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	// 必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	seconds := 10
	if v := os.Getenv("ORDER_CANCEL_WINDOW_SECONDS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil || i < 1 {
			return Config{}, fmt.Errorf("ORDER_CANCEL_WINDOW_SECONDS must be a positive number")
		}
		seconds = i
	}
	cfg.CancelWindow = time.Duration(seconds) * time.Second

	return cfg, nil
}
