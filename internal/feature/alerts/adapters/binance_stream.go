// Package adapters はalertsフィーチャーの外部接続実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"portfolio_backend/internal/feature/alerts/domain/entity"
)

// DefaultStreamURL is the public Binance combined-stream websocket endpoint.
const DefaultStreamURL = "wss://stream.binance.com:9443"

// DefaultSymbols is the allow-list of tracked stream symbols.
var DefaultSymbols = []string{"btcusdt", "ethusdt", "dogeusdt"}

// StreamConfig holds configuration for the Binance ticker stream.
type StreamConfig struct {
	BaseURL string   // Websocket base URL
	Symbols []string // Allow-list of stream symbols (lower case)
}

// LoadStreamConfig loads stream configuration from environment variables,
// falling back to the public endpoint and the default symbol allow-list.
func LoadStreamConfig() StreamConfig {
	cfg := StreamConfig{
		BaseURL: os.Getenv("BINANCE_STREAM_URL"),
		Symbols: DefaultSymbols,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultStreamURL
	}
	if raw := os.Getenv("ALERT_SYMBOLS"); raw != "" {
		cfg.Symbols = nil
		for _, s := range strings.Split(raw, ",") {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}
	return cfg
}

// TickSink は受信したティックの格納先を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase.Registry）ではなくコンシューマー側で定義します。
type TickSink interface {
	Upsert(tick entity.AlertTick)
}

// tickerEvent はBinanceの24時間ティッカーイベントです。数値は文字列で届きます。
type tickerEvent struct {
	EventTime     int64  `json:"E"`
	Symbol        string `json:"s"`
	ChangePercent string `json:"P"`
	LastPrice     string `json:"c"`
}

// streamEnvelope は結合ストリームのメッセージ外装です。
type streamEnvelope struct {
	Stream string      `json:"stream"`
	Data   tickerEvent `json:"data"`
}

// BinanceStream はBinanceの結合ティッカーストリームを購読し、
// 許可リストに含まれる銘柄のティックをシンクへ流し込みます。
type BinanceStream struct {
	cfg     StreamConfig
	sink    TickSink
	dialer  *websocket.Dialer
	allowed map[string]bool
}

// NewBinanceStream はBinanceStreamの新しいインスタンスを生成します。
func NewBinanceStream(cfg StreamConfig, sink TickSink) *BinanceStream {
	allowed := make(map[string]bool, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		allowed[strings.ToLower(s)] = true
	}
	return &BinanceStream{
		cfg:     cfg,
		sink:    sink,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		allowed: allowed,
	}
}

// streamURL は購読対象全銘柄の結合ストリームURLを組み立てます。
func (s *BinanceStream) streamURL() string {
	streams := make([]string, 0, len(s.cfg.Symbols))
	for _, sym := range s.cfg.Symbols {
		streams = append(streams, strings.ToLower(sym)+"@ticker")
	}
	return fmt.Sprintf("%s/stream?streams=%s", s.cfg.BaseURL, strings.Join(streams, "/"))
}

// Run はストリームへ接続し、コンテキストが取り消されるまでティックを読み続けます。
// コンテキスト取り消しによる終了はエラーとせずnilを返します。
// 自動再接続は行わず、接続断はエラーとして呼び出し側に返します。
func (s *BinanceStream) Run(ctx context.Context) error {
	u := s.streamURL()
	conn, res, err := s.dialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("failed to dial ticker stream: %w", err)
	}
	if res != nil && res.Body != nil {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close handshake response body", "error", err)
		}
	}
	slog.Info("ticker stream connected", "url", u, "symbols", s.cfg.Symbols)

	// コンテキスト取り消しで読み取りループを解除する
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := conn.Close(); err != nil {
				slog.Warn("failed to close stream connection", "error", err)
			}
		case <-done:
			if err := conn.Close(); err != nil {
				slog.Warn("failed to close stream connection", "error", err)
			}
		}
	}()

	for {
		var env streamEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			// 取り消しによるクローズは正常終了
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ticker stream read failed: %w", err)
		}

		tick, ok := s.toTick(env.Data)
		if !ok {
			continue
		}

		// シャットダウン中の書き込みを避ける
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		s.sink.Upsert(tick)
	}
}

// toTick はティッカーイベントをドメインのティックへ変換します。
// 許可リスト外の銘柄や不正な数値は読み飛ばします。
func (s *BinanceStream) toTick(ev tickerEvent) (entity.AlertTick, bool) {
	symbol := strings.ToLower(ev.Symbol)
	if !s.allowed[symbol] {
		return entity.AlertTick{}, false
	}

	change, err := strconv.ParseFloat(ev.ChangePercent, 64)
	if err != nil {
		slog.Warn("skipping tick with invalid change percent", "symbol", symbol, "value", ev.ChangePercent)
		return entity.AlertTick{}, false
	}
	price, err := strconv.ParseFloat(ev.LastPrice, 64)
	if err != nil {
		slog.Warn("skipping tick with invalid last price", "symbol", symbol, "value", ev.LastPrice)
		return entity.AlertTick{}, false
	}

	return entity.AlertTick{
		Symbol:    symbol,
		Change24h: change,
		LastPrice: price,
		UpdatedAt: time.UnixMilli(ev.EventTime).UTC(),
	}, true
}
