package usecase

import (
	"context"

	"github.com/luxe-fashion/storefront-api/internal/application/dto"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
)

// StatsUseCase agregados de la tienda para el panel admin.
type StatsUseCase struct {
	repo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// GetStoreStats devuelve conteos de cuentas, órdenes y productos más la
// facturación acumulada.
func (uc *StatsUseCase) GetStoreStats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := uc.repo.GetStoreStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		UserCount:    stats.UserCount,
		OrderCount:   stats.OrderCount,
		ProductCount: stats.ProductCount,
		Revenue:      stats.Revenue.StringFixed(2),
	}, nil
}
