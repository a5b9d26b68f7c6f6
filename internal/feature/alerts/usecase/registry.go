// Package usecase はalertsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"sync"

	"portfolio_backend/internal/feature/alerts/domain/entity"
)

// Registry は銘柄ごとの最新ティックを保持するインメモリストアです。
// ストリームリスナーが書き込み、HTTPハンドラーが読み出すため、
// 内部状態はミューテックスで保護します。
// 銘柄ごとに最新の値のみを保持し（latest wins）、一覧の並びは更新が新しい順の逆、
// つまり最後に更新された銘柄が末尾に来ます。
type Registry struct {
	mu    sync.RWMutex
	ticks map[string]entity.AlertTick
	order []string
}

// NewRegistry はRegistryの新しいインスタンスを生成します。
func NewRegistry() *Registry {
	return &Registry{
		ticks: make(map[string]entity.AlertTick),
	}
}

// Upsert は銘柄の最新ティックを登録します。
// 既存の銘柄は一覧から取り除いた上で末尾に追加し直すため、
// 更新された銘柄は常に一覧の末尾に移動します。
func (r *Registry) Upsert(tick entity.AlertTick) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.ticks[tick.Symbol]; seen {
		for i, sym := range r.order {
			if sym == tick.Symbol {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.order = append(r.order, tick.Symbol)
	r.ticks[tick.Symbol] = tick
}

// Snapshot は現在の全ティックを更新の古い順で返します。
// 返されるスライスは呼び出し側が自由に変更できるコピーです。
func (r *Registry) Snapshot() []entity.AlertTick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.AlertTick, 0, len(r.order))
	for _, sym := range r.order {
		out = append(out, r.ticks[sym])
	}
	return out
}
