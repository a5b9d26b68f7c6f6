// Package api はHTTPトランスポート層で共有されるリクエスト/レスポンス型を定義します。
package api

// ErrorResponse はエラー時のJSONレスポンスボディを表します。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は単純な成功メッセージのレスポンスボディを表します。
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupRequest は/signupエンドポイントのリクエストボディを表します。
// Ginのbindingタグでバリデーションを行います（必須、メール形式、パスワード最低8文字）。
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest は/loginエンドポイントのリクエストボディを表します。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse は認証済みユーザーのプロフィールを表します。
type UserResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// TokenResponse はログイン成功時のレスポンスボディを表します。
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// HoldingResponse は保有資産1件のレスポンス表現です。
// PriceNowとPerformanceはライブ価格で補完されます。
type HoldingResponse struct {
	ID              uint    `json:"id"`
	Symbol          string  `json:"symbol"`
	Quantity        float64 `json:"quantity"`
	PriceBought     float64 `json:"priceBought"`
	PriceNow        float64 `json:"priceNow"`
	Performance     float64 `json:"performance"`
	TransactionDate string  `json:"transactionDate"`
}

// ValuationResponse はポートフォリオ全体の評価結果を表します。
type ValuationResponse struct {
	TotalBought    float64           `json:"totalBought"`
	TotalCurrent   float64           `json:"totalCurrent"`
	PerformancePct float64           `json:"performancePct"`
	Holdings       []HoldingResponse `json:"holdings"`
}

// ScoreResponse は銘柄ごとの単一指標値（ボラティリティ、シャープレシオ等）を表します。
type ScoreResponse struct {
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
}

// MACDPointResponse はMACD系列の1点を表します。
type MACDPointResponse struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SimulationResponse は投資シミュレーションの結果を表します。
type SimulationResponse struct {
	Symbol              string  `json:"symbol"`
	Investment          float64 `json:"investment"`
	Profit              float64 `json:"profit"`
	PredictedSMA        float64 `json:"predictedSMA"`
	PredictedRegression float64 `json:"predictedRegression"`
}

// AlertResponse はライブ価格アラート1件を表します。
type AlertResponse struct {
	Symbol    string  `json:"symbol"`
	Change24h float64 `json:"change24h"`
	LastPrice float64 `json:"lastPrice"`
	Direction string  `json:"direction"`
	UpdatedAt string  `json:"updatedAt"`
}
