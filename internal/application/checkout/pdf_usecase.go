package checkout

import (
	"context"
	"fmt"

	"github.com/luxe-fashion/storefront-api/internal/domain/entity"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
)

// PDFUseCase genera el recibo en PDF de una orden.
type PDFUseCase struct {
	orderRepo repository.OrderRepository
	generator OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orderRepo repository.OrderRepository, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, generator: generator}
}

// DownloadReceiptPDF carga la orden, verifica que el requester sea el dueño o
// admin, y genera el recibo.
//
// Retorna:
//   - (pdfBytes, filename, nil)   si todo sale bien.
//   - domain.ErrOrderNotFound     si la orden no existe.
//   - domain.ErrForbidden         si la orden no es del requester.
func (uc *PDFUseCase) DownloadReceiptPDF(ctx context.Context, requester *entity.User, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := authorizedOrder(uc.orderRepo, requester, orderID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("recibo_%s.pdf", shortID(order.ID))
	return pdfBytes, filename, nil
}

// shortID primeros 8 caracteres del UUID, para el nombre de archivo.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
