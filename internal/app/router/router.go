package router

import (
	alertshandler "portfolio_backend/internal/feature/alerts/transport/handler"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	statshandler "portfolio_backend/internal/feature/stats/transport/handler"
	"portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, portfolio *portfoliohandler.PortfolioHandler,
	performance *statshandler.PerformanceHandler, alerts *alertshandler.AlertsHandler,
	allowOrigins []string) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから呼び出すため CORS を許可する
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/me", authHandler.Me)

		auth.POST("/portfolio/add", portfolio.Add)
		auth.GET("/portfolio/get", portfolio.Get)
		auth.GET("/portfolio/history", portfolio.History)
		auth.DELETE("/portfolio/remove", portfolio.Remove)
		auth.GET("/portfolio/performance", portfolio.Performance)

		auth.GET("/performance/volatility", performance.GetVolatilityHandler)
		auth.GET("/performance/sharpe", performance.GetSharpeHandler)
		auth.GET("/performance/macd", performance.GetMACDHandler)
		auth.GET("/simulation", performance.GetSimulationHandler)

		auth.GET("/alerts", alerts.List)
	}

	return r
}
