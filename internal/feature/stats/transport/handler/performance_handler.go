// Package handler はパフォーマンス指標とシミュレーションのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/stats/domain"
	"portfolio_backend/internal/feature/stats/usecase"
)

// PerformanceUsecase はパフォーマンス指標計算のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PerformanceUsecase interface {
	MarketVolatility(ctx context.Context) ([]usecase.AssetScore, error)
	MarketSharpe(ctx context.Context) ([]usecase.AssetScore, error)
	MACDSeries(ctx context.Context, symbol string) ([]usecase.MACDPoint, error)
	Simulate(ctx context.Context, symbol string, investment float64) (*usecase.SimulationResult, error)
}

// PerformanceHandler はパフォーマンス指標のHTTPリクエストを処理します。
type PerformanceHandler struct {
	uc PerformanceUsecase
}

// NewPerformanceHandler は指定されたusecaseでPerformanceHandlerの新しいインスタンスを生成します。
func NewPerformanceHandler(uc PerformanceUsecase) *PerformanceHandler {
	return &PerformanceHandler{uc: uc}
}

// statusFor は統計エラーを422、それ以外（上流障害）を502にマッピングします。
func statusFor(err error) int {
	if errors.Is(err, domain.ErrEmptyInput) ||
		errors.Is(err, domain.ErrInsufficientData) ||
		errors.Is(err, domain.ErrDegenerateInput) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// writeScores は指標スコアのスライスをJSONで返します。
func writeScores(c *gin.Context, scores []usecase.AssetScore, err error) {
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]api.ScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, api.ScoreResponse{Name: s.Name, Symbol: s.Symbol, Value: s.Value})
	}
	c.JSON(http.StatusOK, out)
}

// GetVolatilityHandler は上位銘柄のボラティリティスコアを返します。
//
// エンドポイント例:
// GET /performance/volatility
func (h *PerformanceHandler) GetVolatilityHandler(c *gin.Context) {
	scores, err := h.uc.MarketVolatility(c.Request.Context())
	writeScores(c, scores, err)
}

// GetSharpeHandler は上位銘柄のシャープレシオを返します。
//
// エンドポイント例:
// GET /performance/sharpe
func (h *PerformanceHandler) GetSharpeHandler(c *gin.Context) {
	scores, err := h.uc.MarketSharpe(c.Request.Context())
	writeScores(c, scores, err)
}

// GetMACDHandler は指定銘柄のMACD系列を日付付きで返します。
//
// エンドポイント例:
// GET /performance/macd?symbol=BTCUSDT
func (h *PerformanceHandler) GetMACDHandler(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "BTCUSDT")

	series, err := h.uc.MACDSeries(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]api.MACDPointResponse, 0, len(series))
	for _, p := range series {
		out = append(out, api.MACDPointResponse{
			Date:  p.Date.UTC().Format("2006-01-02"),
			Value: p.Value,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetSimulationHandler は指定銘柄・投資額の投資シミュレーション結果を返します。
//
// エンドポイント例:
// GET /simulation?symbol=BTCUSDT&investment=1000
func (h *PerformanceHandler) GetSimulationHandler(c *gin.Context) {
	symbol := c.DefaultQuery("symbol", "BTCUSDT")
	investmentStr := c.DefaultQuery("investment", "1000")

	investment, err := strconv.ParseFloat(investmentStr, 64)
	if err != nil || investment <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid investment amount"})
		return
	}

	res, err := h.uc.Simulate(c.Request.Context(), symbol, investment)
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.SimulationResponse{
		Symbol:              res.Symbol,
		Investment:          res.Investment,
		Profit:              res.Profit,
		PredictedSMA:        res.PredictedSMA,
		PredictedRegression: res.PredictedRegression,
	})
}
