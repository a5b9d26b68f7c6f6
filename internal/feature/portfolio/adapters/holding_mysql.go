// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// holdingMySQL はHoldingRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type holdingMySQL struct {
	db *gorm.DB
}

// holdingMySQLがHoldingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HoldingRepository = (*holdingMySQL)(nil)

// NewHoldingMySQL は指定されたgorm.DB接続でholdingMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewHoldingMySQL(db *gorm.DB) *holdingMySQL {
	return &holdingMySQL{db: db}
}

// Create は保有資産をデータベースに追加します。
func (r *holdingMySQL) Create(ctx context.Context, h *entity.Holding) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ListByUser は指定されたユーザーの全保有資産を購入日時の昇順で取得します。
func (r *holdingMySQL) ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var holdings []entity.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date ASC").
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

// DeleteByID は指定されたIDの保有資産を削除します。
// 他のユーザーの行は削除できません。該当行がない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingMySQL) DeleteByID(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Holding{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}

// DeleteBySymbol は指定された銘柄の保有資産をすべて削除し、削除件数を返します。
func (r *holdingMySQL) DeleteBySymbol(ctx context.Context, userID uint, symbol string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.Holding{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
