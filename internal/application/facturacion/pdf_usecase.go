package facturacion

import (
	"context"

	"github.com/NinoOnFire/ticashop/internal/domain"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
)

// PDFUseCase produce la representación imprimible de un documento.
type PDFUseCase struct {
	docRepo      repository.DocumentoRepository
	productoRepo repository.ProductoRepository
	generador    GeneradorPDF
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(docRepo repository.DocumentoRepository, productoRepo repository.ProductoRepository, generador GeneradorPDF) *PDFUseCase {
	return &PDFUseCase{docRepo: docRepo, productoRepo: productoRepo, generador: generador}
}

// Generar devuelve el PDF del documento con sus líneas.
func (uc *PDFUseCase) Generar(ctx context.Context, documentoID string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.docRepo.GetDetalles(ctx, documentoID)
	if err != nil {
		return nil, err
	}
	productos := make(map[string]*entity.Producto, len(detalles))
	for _, d := range detalles {
		p, err := uc.productoRepo.GetByID(ctx, d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			productos[d.ProductoID] = p
		}
	}
	return uc.generador.Generar(doc, detalles, productos)
}
