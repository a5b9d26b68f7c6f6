// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
	statsdomain "portfolio_backend/internal/feature/stats/domain"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// PortfolioUsecase はポートフォリオ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase)ではなくコンシューマー（handler）が定義します。
type PortfolioUsecase interface {
	// Buy は現在の市場価格で資産を購入し、新しい保有資産として記録します。
	Buy(ctx context.Context, userID uint, symbol string, quantity float64) (*entity.Holding, error)
	// List はユーザーの保有資産をライブ価格で補完して返します。
	List(ctx context.Context, userID uint) ([]entity.Position, error)
	// History はユーザーの購入履歴を記録時の価格のまま返します。
	History(ctx context.Context, userID uint) ([]entity.Holding, error)
	// Remove はIDまたは銘柄指定で保有資産を削除します。
	Remove(ctx context.Context, userID, id uint, symbol string) error
	// Valuation はポートフォリオ全体の評価額とパフォーマンスを計算します。
	Valuation(ctx context.Context, userID uint) (entity.Valuation, []entity.Position, error)
}

// PortfolioHandler はポートフォリオ操作のHTTPリクエストを処理します。
type PortfolioHandler struct {
	portfolio PortfolioUsecase
}

// NewPortfolioHandler はPortfolioHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からPortfolioUsecaseを注入します。
func NewPortfolioHandler(portfolio PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

// transactionDateFormat は取引日時のレスポンス表現です。
const transactionDateFormat = "2006-01-02T15:04:05Z07:00"

// toHoldingResponse はPositionをAPIレスポンス型に変換します。
// 取得原価ゼロのポジションはstatsdomain.ErrDegenerateInputを返します。
func toHoldingResponse(p entity.Position) (api.HoldingResponse, error) {
	perf, err := p.Performance()
	if err != nil {
		return api.HoldingResponse{}, err
	}
	return api.HoldingResponse{
		ID:              p.Holding.ID,
		Symbol:          p.Holding.Symbol,
		Quantity:        p.Holding.Quantity,
		PriceBought:     p.Holding.PriceBought,
		PriceNow:        p.PriceNow,
		Performance:     perf,
		TransactionDate: p.Holding.TransactionDate.Format(transactionDateFormat),
	}, nil
}

// Add は資産購入APIエンドポイントを処理します。
// symbolとquantityをクエリパラメータで受け取り、現在価格で購入を記録します。
func (h *PortfolioHandler) Add(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	quantity, err := strconv.ParseFloat(c.Query("quantity"), 64)
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "quantity must be a positive number"})
		return
	}

	holding, err := h.portfolio.Buy(c.Request.Context(), userID, symbol, quantity)
	if err != nil {
		slog.Error("failed to record purchase", "error", err, "user_id", userID, "symbol", symbol)
		if errors.Is(err, usecase.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "quantity must be a positive number"})
			return
		}
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch market price"})
		return
	}

	res, err := toHoldingResponse(entity.Position{Holding: *holding, PriceNow: holding.PriceBought})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "holding has no purchase cost"})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Get は保有資産一覧APIエンドポイントを処理します。
// 各保有資産はライブ価格とパフォーマンスで補完されます。
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	positions, err := h.portfolio.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list holdings", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch market prices"})
		return
	}

	holdings := make([]api.HoldingResponse, 0, len(positions))
	for _, p := range positions {
		res, err := toHoldingResponse(p)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "holding has no purchase cost"})
			return
		}
		holdings = append(holdings, res)
	}
	c.JSON(http.StatusOK, holdings)
}

// History は購入履歴APIエンドポイントを処理します。
// 記録時の価格をそのまま返し、ライブ価格による補完は行いません。
func (h *PortfolioHandler) History(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	holdings, err := h.portfolio.History(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load history", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load history"})
		return
	}

	res := make([]api.HoldingResponse, 0, len(holdings))
	for _, hd := range holdings {
		res = append(res, api.HoldingResponse{
			ID:              hd.ID,
			Symbol:          hd.Symbol,
			Quantity:        hd.Quantity,
			PriceBought:     hd.PriceBought,
			TransactionDate: hd.TransactionDate.Format(transactionDateFormat),
		})
	}
	c.JSON(http.StatusOK, res)
}

// Remove は保有資産削除APIエンドポイントを処理します。
// idが指定された場合は単一行を、symbolのみの場合は一致するすべての行を削除します。
func (h *PortfolioHandler) Remove(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	idStr := c.Query("id")
	symbol := c.Query("symbol")
	if idStr == "" && symbol == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "id or symbol is required"})
		return
	}

	var id uint
	if idStr != "" {
		parsed, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "id must be a positive integer"})
			return
		}
		id = uint(parsed)
	}

	if err := h.portfolio.Remove(c.Request.Context(), userID, id, symbol); err != nil {
		if errors.Is(err, usecase.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "holding not found"})
			return
		}
		slog.Error("failed to remove holding", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to remove holding"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Performance はポートフォリオ評価APIエンドポイントを処理します。
// 保有資産が空または取得原価ゼロの場合は422を返します。
func (h *PortfolioHandler) Performance(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	valuation, positions, err := h.portfolio.Valuation(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, statsdomain.ErrDegenerateInput) {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "portfolio has no purchase cost"})
			return
		}
		slog.Error("failed to value portfolio", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch market prices"})
		return
	}

	holdings := make([]api.HoldingResponse, 0, len(positions))
	for _, p := range positions {
		res, err := toHoldingResponse(p)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "holding has no purchase cost"})
			return
		}
		holdings = append(holdings, res)
	}
	c.JSON(http.StatusOK, api.ValuationResponse{
		TotalBought:    valuation.TotalBought,
		TotalCurrent:   valuation.TotalCurrent,
		PerformancePct: valuation.PerformancePct,
		Holdings:       holdings,
	})
}
