// Package usecase はportfolioフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

// HoldingRepository は保有資産エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type HoldingRepository interface {
	// Create は新しい保有資産をストレージに永続化します。
	Create(ctx context.Context, holding *entity.Holding) error

	// ListByUser は指定されたユーザーの全保有資産を購入日時順で取得します。
	ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error)

	// DeleteByID は指定されたIDの保有資産を削除します。
	// 所有者が一致しない場合や存在しない場合、エラーを返します。
	DeleteByID(ctx context.Context, userID, id uint) error

	// DeleteBySymbol は指定された銘柄の保有資産をすべて削除し、削除件数を返します。
	DeleteBySymbol(ctx context.Context, userID uint, symbol string) (int64, error)
}

// PriceProvider は資産の現在価格の取得を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type PriceProvider interface {
	// SimplePrice は指定された資産ID（例: "bitcoin"）の現在価格を取得します。
	SimplePrice(ctx context.Context, id string) (float64, error)
}

// portfolioUsecase はポートフォリオ管理のビジネスロジックを実装します。
type portfolioUsecase struct {
	holdings HoldingRepository
	prices   PriceProvider
}

// NewPortfolioUsecase はportfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingRepository, prices PriceProvider) *portfolioUsecase {
	return &portfolioUsecase{
		holdings: holdings,
		prices:   prices,
	}
}

// Buy は現在の市場価格で資産を購入し、新しい保有資産として記録します。
// 購入価格は記録時点のライブ価格で確定します。
func (u *portfolioUsecase) Buy(ctx context.Context, userID uint, symbol string, quantity float64) (*entity.Holding, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	symbol = strings.ToLower(strings.TrimSpace(symbol))
	price, err := u.prices.SimplePrice(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price for %s: %w", symbol, err)
	}

	holding := &entity.Holding{
		UserID:          userID,
		Symbol:          symbol,
		Quantity:        quantity,
		PriceBought:     price,
		TransactionDate: time.Now().UTC(),
	}
	if err := u.holdings.Create(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to persist holding: %w", err)
	}
	return holding, nil
}

// List はユーザーの保有資産をライブ価格で補完して返します。
// 同一銘柄の価格取得は1回にまとめ、外部APIの呼び出し回数を抑えます。
func (u *portfolioUsecase) List(ctx context.Context, userID uint) ([]entity.Position, error) {
	holdings, err := u.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	// 銘柄ごとの価格キャッシュ
	priceBySymbol := make(map[string]float64)
	positions := make([]entity.Position, 0, len(holdings))
	for _, h := range holdings {
		price, ok := priceBySymbol[h.Symbol]
		if !ok {
			price, err = u.prices.SimplePrice(ctx, h.Symbol)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch price for %s: %w", h.Symbol, err)
			}
			priceBySymbol[h.Symbol] = price
		}
		positions = append(positions, entity.Position{Holding: h, PriceNow: price})
	}
	return positions, nil
}

// History はユーザーの購入履歴を記録時の価格のまま返します。
// ライブ価格による補完は行いません。
func (u *portfolioUsecase) History(ctx context.Context, userID uint) ([]entity.Holding, error) {
	return u.holdings.ListByUser(ctx, userID)
}

// Remove は保有資産を削除します。idが指定されている場合は単一行を、
// そうでなければsymbolに一致するすべての行を削除します。
func (u *portfolioUsecase) Remove(ctx context.Context, userID, id uint, symbol string) error {
	if id != 0 {
		return u.holdings.DeleteByID(ctx, userID, id)
	}

	symbol = strings.ToLower(strings.TrimSpace(symbol))
	removed, err := u.holdings.DeleteBySymbol(ctx, userID, symbol)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrHoldingNotFound
	}
	return nil
}

// Valuation はユーザーのポートフォリオ全体の評価額とパフォーマンスを計算します。
func (u *portfolioUsecase) Valuation(ctx context.Context, userID uint) (entity.Valuation, []entity.Position, error) {
	positions, err := u.List(ctx, userID)
	if err != nil {
		return entity.Valuation{}, nil, err
	}

	valuation, err := entity.Aggregate(positions)
	if err != nil {
		return entity.Valuation{}, nil, err
	}
	return valuation, positions, nil
}
