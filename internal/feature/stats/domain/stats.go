package domain

import "math"

// Mean は算術平均を返します。空の系列にはErrEmptyInputを返します。
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}

// Variance は母分散（Nで割る、不偏推定量ではない）を返します。
// 互換性のため標本分散(N-1)ではなく母分散を使用します。
func Variance(xs []float64) (float64, error) {
	mu, err := Mean(xs)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, x := range xs {
		d := x - mu
		sum += d * d
	}
	return sum / float64(len(xs)), nil
}

// StdDev は母標準偏差を返します。
func StdDev(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Volatility は各リターンについて系列平均からの絶対偏差 |r_i - μ| を返します。
// 標準偏差そのものではなく、資産ごとの分散度スコアである点に注意してください。
// 出力は入力と同じ長さです。
func Volatility(returns []float64) ([]float64, error) {
	mu, err := Mean(returns)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = math.Abs(r - mu)
	}
	return out, nil
}

// SharpeRatio は各リターンについて (r_i - riskFree) / σ を返します。
// σは系列全体の母標準偏差です。σがゼロの場合はErrDegenerateInputを返します。
func SharpeRatio(returns []float64, riskFree float64) ([]float64, error) {
	sigma, err := StdDev(returns)
	if err != nil {
		return nil, err
	}
	if sigma == 0 {
		return nil, ErrDegenerateInput
	}
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = (r - riskFree) / sigma
	}
	return out, nil
}

// SMA は直近window件の単純移動平均を返します。
// 系列長がwindow未満の場合はErrInsufficientDataを返します。
func SMA(prices []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, ErrDegenerateInput
	}
	if len(prices) < window {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for _, p := range prices[len(prices)-window:] {
		sum += p
	}
	return sum / float64(window), nil
}

// Regression は最小二乗法による単回帰の結果を表します。
type Regression struct {
	Slope     float64
	Intercept float64
}

// LinearRegression はX = 0..n-1、Y = pricesとした最小二乗法の正規方程式を解きます。
// n < 2 の場合はErrInsufficientDataを返します。
func LinearRegression(prices []float64) (Regression, error) {
	n := len(prices)
	if n < 2 {
		return Regression{}, ErrInsufficientData
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range prices {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	// X=0..n-1かつn>=2なので分母がゼロになることはないが、ポリシーに従い防御する
	if denom == 0 {
		return Regression{}, ErrDegenerateInput
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn
	return Regression{Slope: slope, Intercept: intercept}, nil
}

// Predict は回帰直線上の点 slope*x + intercept を返します。
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// EMA は指数移動平均の系列を返します。
// 最初の値は先頭period件の単純平均で初期化し、以降は
// ema_i = (price_i - ema_prev) * α + ema_prev（α = 2/(period+1)）で更新します。
// 出力長は len(prices) - period + 1 です。
func EMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, ErrDegenerateInput
	}
	if len(prices) < period {
		return nil, ErrInsufficientData
	}
	alpha := 2.0 / (float64(period) + 1.0)

	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	seed /= float64(period)

	out := make([]float64, 0, len(prices)-period+1)
	out = append(out, seed)
	prev := seed
	for i := period; i < len(prices); i++ {
		prev = (prices[i]-prev)*alpha + prev
		out = append(out, prev)
	}
	return out, nil
}

// MACDMinLen はMACD計算に必要な最小系列長です（EMA26のシード分）。
const MACDMinLen = 26

// MACD はEMA(12)とEMA(26)の差分系列を返します。
// EMA12の方が長いため、末尾をEMA26の長さに揃えてから要素ごとに減算します。
// 出力長は len(prices) - 25 です。len(prices) < 26 の場合はErrInsufficientDataを返します。
func MACD(prices []float64) ([]float64, error) {
	if len(prices) < MACDMinLen {
		return nil, ErrInsufficientData
	}
	ema12, err := EMA(prices, 12)
	if err != nil {
		return nil, err
	}
	ema26, err := EMA(prices, 26)
	if err != nil {
		return nil, err
	}
	offset := len(ema12) - len(ema26)
	out := make([]float64, len(ema26))
	for i := range ema26 {
		out[i] = ema12[i+offset] - ema26[i]
	}
	return out, nil
}
