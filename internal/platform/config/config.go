// Package config はYAMLファイルからのアプリケーション設定の読み込みを提供します。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config はサーバー全体のアプリケーション設定を保持します。
// データベースやRedisなどの接続情報は環境変数側で管理し、
// ここには挙動を調整する設定のみを置きます。
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Alerts struct {
		Symbols []string `yaml:"symbols"`
	} `yaml:"alerts"`
	Stats struct {
		RiskFreeRate float64 `yaml:"risk_free_rate"`
	} `yaml:"stats"`
	Cache struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	CORS struct {
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"cors"`
}

// Default はデフォルト設定を返します。
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Alerts.Symbols = []string{"btcusdt", "ethusdt", "dogeusdt"}
	cfg.Stats.RiskFreeRate = 2.0
	cfg.Cache.TTLMinutes = 5
	cfg.CORS.AllowOrigins = []string{"http://localhost:5173"}
	return cfg
}

// Load は指定されたYAMLファイルを読み込み、デフォルト設定に上書きします。
// ファイルが存在しない場合はデフォルト設定をそのまま返します。
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
