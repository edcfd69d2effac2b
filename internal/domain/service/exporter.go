package service

import (
	"io"

	"storefront/internal/domain/entity"
)

// SpreadsheetExporter writes admin reports.
type SpreadsheetExporter interface {
	ContentType() string
	FileExtension() string
	ExportProducts(w io.Writer, products []*entity.Product) error
	ExportOrders(w io.Writer, orders []*entity.Order) error
}
