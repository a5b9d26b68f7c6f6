// Package db はデータベース接続の確立とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "portfolio_backend/internal/feature/auth/domain/entity"
	portfolioentity "portfolio_backend/internal/feature/portfolio/domain/entity"
)

// Config はデータベース接続設定を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// BuildDSN はMySQL接続用のDSN文字列を組み立てます。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener はDSNからデータベース接続を開く関数です。テストで差し替え可能にします。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は指定されたタイムアウトまで接続をリトライします。
// コンテナ起動直後のDB未起動を考慮し、3秒間隔で試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB はデータベース接続を確立し、必要に応じてマイグレーションを実行します。
// DB_HOSTが設定されている場合はMySQLへ接続し、未設定の場合は
// ローカル開発用にファイルベースのSQLiteへフォールバックします。
func OpenDB() *gorm.DB {
	var db *gorm.DB

	if os.Getenv("DB_HOST") != "" {
		dsn := BuildDSN(LoadConfigFromEnv())
		opened, err := ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		db = opened
	} else {
		db = openSQLite()
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Holding）
		if err := db.AutoMigrate(
			&authentity.User{},
			&portfolioentity.Holding{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// openSQLite はローカル開発用のSQLiteデータベースを開きます。
func openSQLite() *gorm.DB {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "portfolio.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}
	log.Printf("using local sqlite database at %s", path)
	return db
}
