package persistence

import (
	"context"

	"github.com/smartsales/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTxRunner implements trade.TxRunner on top of gorm transactions.
// The closure receives repositories bound to the open transaction so order
// and stock writes commit or roll back together.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a new GormTxRunner
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// WithTx runs fn inside a single database transaction
func (r *GormTxRunner) WithTx(ctx context.Context, fn func(repos trade.TxRepos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(trade.TxRepos{
			Orders:   NewGormOrderRepository(tx),
			Products: NewGormProductRepository(tx),
		})
	})
}

// Ensure GormTxRunner implements TxRunner
var _ trade.TxRunner = (*GormTxRunner)(nil)
