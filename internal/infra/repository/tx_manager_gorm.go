package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders    repo.OrderRepository
	products  repo.ProductRepository
	inventory repo.InventoryRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:    NewOrderGormRepository(tx),
			products:  NewProductGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
		}
		return fn(r)
	})
}
