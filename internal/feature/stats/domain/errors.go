// Package domain はポートフォリオ統計エンジンの純粋関数を提供します。
package domain

import "errors"

// 統計関数のエラーポリシーは一律フェイルファストです。
// NaNや±Infを呼び出し元へ伝播させる代わりに、必ずエラーを返します。
var (
	// ErrEmptyInput は空の系列に対して統計量が要求されたことを示します。
	ErrEmptyInput = errors.New("statistics: empty input series")

	// ErrInsufficientData は系列長が計算に必要な最小数に満たないことを示します。
	ErrInsufficientData = errors.New("statistics: not enough data points")

	// ErrDegenerateInput は分母がゼロになる退化入力を示します。
	ErrDegenerateInput = errors.New("statistics: degenerate input (zero denominator)")
)
