// Package usecase はパフォーマンス指標とシミュレーションのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio_backend/internal/feature/market/domain/entity"
	"portfolio_backend/internal/feature/stats/domain"
)

const (
	// DefaultTopMarkets はボラティリティ/シャープレシオ計算の対象銘柄数です。
	DefaultTopMarkets = 5
	// DefaultRiskFreeRate はシャープレシオのリスクフリーレート（%）のデフォルト値です。
	DefaultRiskFreeRate = 2.0
	// CandleInterval は履歴価格取得の時間間隔です。
	CandleInterval = "1d"
	// MACDCandleLimit はMACD計算に取得するローソク足の件数です。
	MACDCandleLimit = 50
	// SimulationCandleLimit はシミュレーションに取得するローソク足の件数です。
	SimulationCandleLimit = 30
	// SimulationSMAWindow はシミュレーションのSMA予測に使う窓幅（日数）です。
	SimulationSMAWindow = 7
)

// MarketRepository は市場データプロバイダーの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// TopMarkets は時価総額順の上位n件の市場スナップショットを取得します。
	TopMarkets(ctx context.Context, n int) ([]entity.Quote, error)
}

// CandleSource は取引所のローソク足エンドポイントを抽象化します。
type CandleSource interface {
	// Klines は銘柄・間隔・件数を指定してローソク足を時系列順で取得します。
	Klines(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error)
}

// AssetScore は銘柄ごとの単一指標値です。
type AssetScore struct {
	Name   string
	Symbol string
	Value  float64
}

// MACDPoint はMACD系列の1点です。
type MACDPoint struct {
	Date  time.Time
	Value float64
}

// SimulationResult は投資シミュレーションの結果です。
type SimulationResult struct {
	Symbol              string
	Investment          float64
	Profit              float64
	PredictedSMA        float64
	PredictedRegression float64
	Prices              []entity.PricePoint
}

// performanceUsecase はパフォーマンス指標計算のユースケースを実装します。
type performanceUsecase struct {
	market   MarketRepository
	candles  CandleSource
	riskFree float64
}

// NewPerformanceUsecase はperformanceUsecaseの新しいインスタンスを生成します。
// riskFreeが0以下の場合はデフォルトのリスクフリーレートを使用します。
func NewPerformanceUsecase(market MarketRepository, candles CandleSource, riskFree float64) *performanceUsecase {
	if riskFree <= 0 {
		riskFree = DefaultRiskFreeRate
	}
	return &performanceUsecase{market: market, candles: candles, riskFree: riskFree}
}

// changes24h は上位銘柄のスナップショットと24h変動率の系列を取得します。
func (u *performanceUsecase) changes24h(ctx context.Context) ([]entity.Quote, []float64, error) {
	quotes, err := u.market.TopMarkets(ctx, DefaultTopMarkets)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch top markets: %w", err)
	}
	changes := make([]float64, len(quotes))
	for i, q := range quotes {
		changes[i] = q.Change24h
	}
	return quotes, changes, nil
}

// MarketVolatility は上位銘柄の24h変動率から銘柄ごとの分散度スコア |r-μ| を計算します。
func (u *performanceUsecase) MarketVolatility(ctx context.Context) ([]AssetScore, error) {
	quotes, changes, err := u.changes24h(ctx)
	if err != nil {
		return nil, err
	}

	vols, err := domain.Volatility(changes)
	if err != nil {
		return nil, err
	}

	scores := make([]AssetScore, len(quotes))
	for i, q := range quotes {
		scores[i] = AssetScore{Name: q.Name, Symbol: q.Symbol, Value: vols[i]}
	}
	return scores, nil
}

// MarketSharpe は上位銘柄の24h変動率から銘柄ごとのシャープレシオを計算します。
func (u *performanceUsecase) MarketSharpe(ctx context.Context) ([]AssetScore, error) {
	quotes, changes, err := u.changes24h(ctx)
	if err != nil {
		return nil, err
	}

	ratios, err := domain.SharpeRatio(changes, u.riskFree)
	if err != nil {
		return nil, err
	}

	scores := make([]AssetScore, len(quotes))
	for i, q := range quotes {
		scores[i] = AssetScore{Name: q.Name, Symbol: q.Symbol, Value: ratios[i]}
	}
	return scores, nil
}

// MACDSeries は直近の日足終値からMACD系列を計算し、末尾の日付に揃えて返します。
func (u *performanceUsecase) MACDSeries(ctx context.Context, symbol string) ([]MACDPoint, error) {
	points, err := u.candles.Klines(ctx, symbol, CandleInterval, MACDCandleLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch klines for %s: %w", symbol, err)
	}

	macd, err := domain.MACD(entity.Closes(points))
	if err != nil {
		return nil, err
	}

	// MACD系列は入力より短いため、日付は末尾から揃える
	tail := points[len(points)-len(macd):]
	out := make([]MACDPoint, len(macd))
	for i, v := range macd {
		out[i] = MACDPoint{Date: tail[i].Time, Value: v}
	}
	return out, nil
}

// Simulate は過去30日の終値に対してSMA予測・回帰予測・投資損益を計算します。
// 損益は ((最終価格 - 初日価格) / 初日価格) * 投資額 です。
func (u *performanceUsecase) Simulate(ctx context.Context, symbol string, investment float64) (*SimulationResult, error) {
	points, err := u.candles.Klines(ctx, symbol, CandleInterval, SimulationCandleLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch klines for %s: %w", symbol, err)
	}
	closes := entity.Closes(points)

	sma, err := domain.SMA(closes, SimulationSMAWindow)
	if err != nil {
		return nil, err
	}

	reg, err := domain.LinearRegression(closes)
	if err != nil {
		return nil, err
	}
	predicted := reg.Predict(float64(len(closes) + 1))

	first := closes[0]
	if first == 0 {
		return nil, domain.ErrDegenerateInput
	}
	last := closes[len(closes)-1]
	profit := ((last - first) / first) * investment

	return &SimulationResult{
		Symbol:              symbol,
		Investment:          investment,
		Profit:              profit,
		PredictedSMA:        sma,
		PredictedRegression: predicted,
		Prices:              points,
	}, nil
}
