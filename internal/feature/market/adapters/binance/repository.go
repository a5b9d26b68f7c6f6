package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"portfolio_backend/internal/feature/market/domain/entity"
	statsusecase "portfolio_backend/internal/feature/stats/usecase"
)

// Client はBinanceのローソク足エンドポイントから履歴価格を取得するCandleSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがCandleSourceを実装していることをコンパイル時に検証します。
var _ statsusecase.CandleSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// Klines は指定された銘柄・間隔・件数のローソク足を時系列順で取得します。
// Binanceのレスポンスは配列の配列で、各要素は
// [openTime, open, high, low, close, volume, ...]（価格は文字列）です。
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	u := fmt.Sprintf("%s/api/v3/klines?%s", c.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("binance http %d", res.StatusCode)
	}

	var rows [][]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&rows); err != nil {
		return nil, err
	}

	points := make([]entity.PricePoint, 0, len(rows))
	for _, row := range rows {
		// openTime（ミリ秒）と終値（インデックス4）のみ使用する
		if len(row) < 5 {
			return nil, fmt.Errorf("binance: malformed kline row with %d fields", len(row))
		}

		var openTimeMs int64
		if err := json.Unmarshal(row[0], &openTimeMs); err != nil {
			return nil, fmt.Errorf("parse kline open time: %w", err)
		}

		var closeStr string
		if err := json.Unmarshal(row[4], &closeStr); err != nil {
			return nil, fmt.Errorf("parse kline close field: %w", err)
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return nil, fmt.Errorf("parse kline close %q: %w", closeStr, err)
		}

		points = append(points, entity.PricePoint{
			Time:  time.UnixMilli(openTimeMs).UTC(),
			Close: closePrice,
		})
	}
	return points, nil
}
