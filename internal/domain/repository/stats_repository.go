package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StoreStats conteos agregados de la tienda.
// Los produce la DB; el use case los convierte en DTO.
type StoreStats struct {
	UserCount    int
	OrderCount   int
	ProductCount int
	Revenue      decimal.Decimal // Σ total_amount de todas las órdenes
}

// StatsRepository define las consultas de lectura para el panel de administración.
// Las implementaciones son read-only (no modifican datos).
type StatsRepository interface {
	GetStoreStats(ctx context.Context) (StoreStats, error)
}
