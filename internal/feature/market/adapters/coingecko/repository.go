package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"portfolio_backend/internal/feature/market/adapters/coingecko/dto"
	"portfolio_backend/internal/feature/market/domain/entity"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	statsusecase "portfolio_backend/internal/feature/stats/usecase"
	"portfolio_backend/internal/shared/ratelimiter"
)

// Client はCoinGecko APIから市場データを取得するリポジトリ実装です。
// 無料プランのレート制限が厳しいため、すべての呼び出しはリミッターを経由します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// Clientが各コンシューマーのインターフェースを実装していることをコンパイル時に検証します。
var (
	_ portfoliousecase.PriceProvider = (*Client)(nil)
	_ statsusecase.MarketRepository  = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiterがnilの場合は制限なしで動作します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SimplePrice は指定された資産ID（例: "bitcoin"）の現在価格を取得します。
func (c *Client) SimplePrice(ctx context.Context, id string) (float64, error) {
	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", c.cfg.Currency)

	u := fmt.Sprintf("%s/simple/price?%s", c.cfg.BaseURL, q.Encode())

	// レスポンスは {"bitcoin": {"usd": 12345.67}} の形式
	var body map[string]map[string]float64
	if err := c.getJSON(ctx, u, &body); err != nil {
		return 0, err
	}

	prices, ok := body[strings.ToLower(id)]
	if !ok {
		return 0, fmt.Errorf("coingecko: unknown asset %q", id)
	}
	price, ok := prices[c.cfg.Currency]
	if !ok {
		return 0, fmt.Errorf("coingecko: no %s quote for %q", c.cfg.Currency, id)
	}
	return price, nil
}

// TopMarkets は時価総額順の上位n件の市場スナップショットを取得します。
func (c *Client) TopMarkets(ctx context.Context, n int) ([]entity.Quote, error) {
	q := url.Values{}
	q.Set("vs_currency", c.cfg.Currency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(n))
	q.Set("page", "1")

	u := fmt.Sprintf("%s/coins/markets?%s", c.cfg.BaseURL, q.Encode())

	var body []dto.MarketEntry
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	quotes := make([]entity.Quote, 0, len(body))
	for _, m := range body {
		quotes = append(quotes, entity.Quote{
			ID:        m.ID,
			Symbol:    m.Symbol,
			Name:      m.Name,
			Price:     m.CurrentPrice,
			Change24h: m.PriceChangePercentage24h,
			Volume24h: m.TotalVolume,
		})
	}
	return quotes, nil
}

// getJSON はGETリクエストを実行し、JSONレスポンスをoutにデコードします。
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	if c.limiter != nil {
		c.limiter.WaitIfNeeded()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("coingecko http %d", res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
