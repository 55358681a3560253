package repository

import "context"

// 在庫の減算だけを約束。
// チェックアウトのトランザクション内からのみ使う。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算（stock = stock - qty WHERE stock >= qty）。
	// 減らせなければ false（エラーではない）。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
