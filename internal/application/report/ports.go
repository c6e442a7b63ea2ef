package report

import (
	"context"

	"github.com/jhoicas/clubmerch-api/internal/domain/production"
)

// SheetRenderer genera un documento descargable a partir de la hoja de producción.
// Implementaciones: infrastructure/pdf (maroto) e infrastructure/xlsx (excelize).
type SheetRenderer interface {
	Render(ctx context.Context, sheet production.Sheet) ([]byte, error)
	// Extension extensión del fichero sin punto ("pdf", "xlsx").
	Extension() string
	ContentType() string
}
