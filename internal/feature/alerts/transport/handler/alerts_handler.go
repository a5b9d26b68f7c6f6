// Package handler はalertsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/alerts/domain/entity"
)

// TickSource は最新ティックの読み出し元を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase.Registry）ではなくコンシューマー（handler）が定義します。
type TickSource interface {
	// Snapshot は現在の全ティックを更新の古い順で返します。
	Snapshot() []entity.AlertTick
}

// AlertsHandler はライブ価格アラートのHTTPリクエストを処理します。
type AlertsHandler struct {
	ticks TickSource
}

// NewAlertsHandler はAlertsHandlerの新しいインスタンスを生成します。
func NewAlertsHandler(ticks TickSource) *AlertsHandler {
	return &AlertsHandler{ticks: ticks}
}

// List は追跡中の全銘柄の最新ティックを返します。
// ストリーム未接続でティックがない場合は空配列を返します。
func (h *AlertsHandler) List(c *gin.Context) {
	ticks := h.ticks.Snapshot()

	res := make([]api.AlertResponse, 0, len(ticks))
	for _, t := range ticks {
		res = append(res, api.AlertResponse{
			Symbol:    t.Symbol,
			Change24h: t.Change24h,
			LastPrice: t.LastPrice,
			Direction: t.Direction(),
			UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, res)
}
