package postgres

import (
	"context"
	"fmt"

	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas read-only para el panel de administración.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetStoreStats devuelve los conteos de la tienda y la facturación acumulada
// en una sola consulta.
func (r *StatsRepo) GetStoreStats(ctx context.Context) (repository.StoreStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM orders),
			(SELECT count(*) FROM products),
			(SELECT COALESCE(sum(total_amount), 0) FROM orders)`
	var stats repository.StoreStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.UserCount, &stats.OrderCount, &stats.ProductCount, &stats.Revenue,
	)
	if err != nil {
		return repository.StoreStats{}, fmt.Errorf("get store stats: %w", err)
	}
	return stats, nil
}
