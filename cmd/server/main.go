package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/router"
	alertsadapters "portfolio_backend/internal/feature/alerts/adapters"
	alertshandler "portfolio_backend/internal/feature/alerts/transport/handler"
	alertsusecase "portfolio_backend/internal/feature/alerts/usecase"
	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	"portfolio_backend/internal/feature/market/adapters/binance"
	"portfolio_backend/internal/feature/market/adapters/coingecko"
	portfolioadapters "portfolio_backend/internal/feature/portfolio/adapters"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	statshandler "portfolio_backend/internal/feature/stats/transport/handler"
	statsusecase "portfolio_backend/internal/feature/stats/usecase"
	"portfolio_backend/internal/platform/cache"
	"portfolio_backend/internal/platform/config"
	platformdb "portfolio_backend/internal/platform/db"
	platformhttp "portfolio_backend/internal/platform/http"
	jwtmw "portfolio_backend/internal/platform/jwt"
	platformredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

func main() {
	// .env はローカル開発用。存在しなくてもエラーにしない
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 外部APIクライアント
	httpClient := platformhttp.NewHTTPClient(10 * time.Second)
	// CoinGeckoの無料枠に合わせてリクエスト数を抑える
	geckoLimiter := ratelimiter.NewRateLimiter(30, time.Minute)
	geckoClient := coingecko.NewClient(coingecko.LoadConfig(), httpClient, geckoLimiter)
	binanceClient := binance.NewClient(binance.LoadConfig(), httpClient)

	// Redisキャッシュでラップ
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	cachedCandles := cache.NewCachingCandleSource(rdb, ttl, binanceClient, "klines")

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	holdingRepo := portfolioadapters.NewHoldingMySQL(db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo, geckoClient)
	performanceUC := statsusecase.NewPerformanceUsecase(geckoClient, cachedCandles, cfg.Stats.RiskFreeRate)

	// アラート: Binance WebSocketストリームを購読してレジストリに反映する
	registry := alertsusecase.NewRegistry()
	streamCfg := alertsadapters.LoadStreamConfig()
	if os.Getenv("ALERT_SYMBOLS") == "" && len(cfg.Alerts.Symbols) > 0 {
		streamCfg.Symbols = cfg.Alerts.Symbols
	}
	stream := alertsadapters.NewBinanceStream(streamCfg, registry)

	streamCtx, cancelStream := context.WithCancel(context.Background())
	defer cancelStream()
	go func() {
		if err := stream.Run(streamCtx); err != nil {
			log.Println("[WARN] Alert stream stopped:", err)
		}
	}()

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	performanceH := statshandler.NewPerformanceHandler(performanceUC)
	alertsH := alertshandler.NewAlertsHandler(registry)

	// ルータ生成
	router := router.NewRouter(authH, portfolioH, performanceH, alertsH, cfg.CORS.AllowOrigins)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
