package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"portfolio_backend/internal/feature/market/domain/entity"
	"portfolio_backend/internal/feature/stats/domain"
)

// mockMarketRepository はテスト用のMarketRepositoryモック実装です。
type mockMarketRepository struct {
	topMarketsFn func(ctx context.Context, n int) ([]entity.Quote, error)
}

func (m *mockMarketRepository) TopMarkets(ctx context.Context, n int) ([]entity.Quote, error) {
	return m.topMarketsFn(ctx, n)
}

// mockCandleSource はテスト用のCandleSourceモック実装です。
type mockCandleSource struct {
	klinesFn func(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error)
}

func (m *mockCandleSource) Klines(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
	return m.klinesFn(ctx, symbol, interval, limit)
}

// dailyPoints はbase日からの連続した日足ポイントを生成します。
func dailyPoints(closes []float64) []entity.PricePoint {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]entity.PricePoint, len(closes))
	for i, c := range closes {
		out[i] = entity.PricePoint{Time: base.AddDate(0, 0, i), Close: c}
	}
	return out
}

func TestPerformanceUsecase_MarketVolatility(t *testing.T) {
	t.Run("one score per market, absolute deviation from mean", func(t *testing.T) {
		market := &mockMarketRepository{
			topMarketsFn: func(ctx context.Context, n int) ([]entity.Quote, error) {
				if n != DefaultTopMarkets {
					t.Errorf("expected n=%d, got %d", DefaultTopMarkets, n)
				}
				return []entity.Quote{
					{Name: "Bitcoin", Symbol: "btc", Change24h: 1.0},
					{Name: "Ethereum", Symbol: "eth", Change24h: 2.0},
					{Name: "Dogecoin", Symbol: "doge", Change24h: 3.0},
				}, nil
			},
		}

		uc := NewPerformanceUsecase(market, nil, 0)
		scores, err := uc.MarketVolatility(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scores) != 3 {
			t.Fatalf("expected 3 scores, got %d", len(scores))
		}
		// μ = 2 → |1-2|, |2-2|, |3-2|
		want := []float64{1, 0, 1}
		for i, s := range scores {
			if math.Abs(s.Value-want[i]) > 1e-9 {
				t.Errorf("score %d: expected %v, got %v", i, want[i], s.Value)
			}
		}
		if scores[0].Name != "Bitcoin" || scores[0].Symbol != "btc" {
			t.Errorf("score not paired with its market: %+v", scores[0])
		}
	})

	t.Run("upstream error is propagated", func(t *testing.T) {
		upstream := errors.New("coingecko http 429")
		market := &mockMarketRepository{
			topMarketsFn: func(ctx context.Context, n int) ([]entity.Quote, error) {
				return nil, upstream
			},
		}

		uc := NewPerformanceUsecase(market, nil, 0)
		_, err := uc.MarketVolatility(context.Background())
		if !errors.Is(err, upstream) {
			t.Errorf("expected wrapped upstream error, got %v", err)
		}
	})
}

func TestPerformanceUsecase_MarketSharpe(t *testing.T) {
	t.Run("uses configured risk-free rate", func(t *testing.T) {
		market := &mockMarketRepository{
			topMarketsFn: func(ctx context.Context, n int) ([]entity.Quote, error) {
				return []entity.Quote{
					{Name: "Bitcoin", Symbol: "btc", Change24h: 4.0},
					{Name: "Ethereum", Symbol: "eth", Change24h: 0.0},
				}, nil
			},
		}

		uc := NewPerformanceUsecase(market, nil, 2.0)
		scores, err := uc.MarketSharpe(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// μ=2, σ=2: (4-2)/2 = 1, (0-2)/2 = -1
		if math.Abs(scores[0].Value-1) > 1e-9 || math.Abs(scores[1].Value+1) > 1e-9 {
			t.Errorf("unexpected ratios: %v, %v", scores[0].Value, scores[1].Value)
		}
	})

	t.Run("flat market is degenerate", func(t *testing.T) {
		market := &mockMarketRepository{
			topMarketsFn: func(ctx context.Context, n int) ([]entity.Quote, error) {
				return []entity.Quote{
					{Name: "Bitcoin", Symbol: "btc", Change24h: 1.5},
					{Name: "Ethereum", Symbol: "eth", Change24h: 1.5},
				}, nil
			},
		}

		uc := NewPerformanceUsecase(market, nil, 0)
		_, err := uc.MarketSharpe(context.Background())
		if !errors.Is(err, domain.ErrDegenerateInput) {
			t.Errorf("expected ErrDegenerateInput, got %v", err)
		}
	})
}

func TestPerformanceUsecase_MACDSeries(t *testing.T) {
	t.Run("series length and date alignment", func(t *testing.T) {
		closes := make([]float64, MACDCandleLimit)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		points := dailyPoints(closes)

		candles := &mockCandleSource{
			klinesFn: func(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
				if symbol != "BTCUSDT" {
					t.Errorf("expected symbol BTCUSDT, got %s", symbol)
				}
				if interval != CandleInterval || limit != MACDCandleLimit {
					t.Errorf("unexpected interval/limit: %s/%d", interval, limit)
				}
				return points, nil
			},
		}

		uc := NewPerformanceUsecase(nil, candles, 0)
		series, err := uc.MACDSeries(context.Background(), "BTCUSDT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(series) != MACDCandleLimit-25 {
			t.Fatalf("expected %d points, got %d", MACDCandleLimit-25, len(series))
		}
		// 日付は入力の末尾に揃う
		if !series[len(series)-1].Date.Equal(points[len(points)-1].Time) {
			t.Errorf("last MACD date %v does not match last candle %v",
				series[len(series)-1].Date, points[len(points)-1].Time)
		}
	})

	t.Run("too few candles", func(t *testing.T) {
		candles := &mockCandleSource{
			klinesFn: func(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
				return dailyPoints(make([]float64, 10)), nil
			},
		}

		uc := NewPerformanceUsecase(nil, candles, 0)
		_, err := uc.MACDSeries(context.Background(), "BTCUSDT")
		if !errors.Is(err, domain.ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})
}

func TestPerformanceUsecase_Simulate(t *testing.T) {
	t.Run("profit and predictions on a linear series", func(t *testing.T) {
		// 100, 102, ..., 158: 30日で初日から58%上昇
		closes := make([]float64, SimulationCandleLimit)
		for i := range closes {
			closes[i] = 100 + 2*float64(i)
		}

		candles := &mockCandleSource{
			klinesFn: func(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
				if limit != SimulationCandleLimit {
					t.Errorf("expected limit %d, got %d", SimulationCandleLimit, limit)
				}
				return dailyPoints(closes), nil
			},
		}

		uc := NewPerformanceUsecase(nil, candles, 0)
		res, err := uc.Simulate(context.Background(), "ETHUSDT", 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// ((158-100)/100) * 1000 = 580
		if math.Abs(res.Profit-580) > 1e-9 {
			t.Errorf("expected profit 580, got %v", res.Profit)
		}
		// 直近7件 146..158 の平均 = 152
		if math.Abs(res.PredictedSMA-152) > 1e-9 {
			t.Errorf("expected SMA 152, got %v", res.PredictedSMA)
		}
		// 完全な線形データ: 予測は 100 + 2*(n+1)
		wantReg := 100 + 2*float64(SimulationCandleLimit+1)
		if math.Abs(res.PredictedRegression-wantReg) > 1e-6 {
			t.Errorf("expected regression prediction %v, got %v", wantReg, res.PredictedRegression)
		}
	})

	t.Run("zero first price is degenerate", func(t *testing.T) {
		closes := make([]float64, SimulationCandleLimit)
		closes[len(closes)-1] = 10

		candles := &mockCandleSource{
			klinesFn: func(ctx context.Context, symbol, interval string, limit int) ([]entity.PricePoint, error) {
				return dailyPoints(closes), nil
			},
		}

		uc := NewPerformanceUsecase(nil, candles, 0)
		_, err := uc.Simulate(context.Background(), "ETHUSDT", 1000)
		if !errors.Is(err, domain.ErrDegenerateInput) {
			t.Errorf("expected ErrDegenerateInput, got %v", err)
		}
	})
}
