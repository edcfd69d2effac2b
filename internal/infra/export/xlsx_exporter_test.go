package export

import (
	"bytes"
	"testing"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestXLSXExporter_ExportProducts(t *testing.T) {
	sale := decimal.RequireFromString("799")
	products := []*entity.Product{
		{ID: uuid.New(), Name: "Copper Bottle", Category: "bottles", Price: decimal.RequireFromString("999"), SalePrice: &sale, OnSale: true, IsActive: true, Stock: 12},
		{ID: uuid.New(), Name: "Steel Mug", Category: "mugs", Price: decimal.RequireFromString("450.5"), IsActive: true, Stock: 0},
	}

	var buf bytes.Buffer
	exporter := NewXLSXExporter()
	require.NoError(t, exporter.ExportProducts(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Copper Bottle", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "999.00", sheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "799.00", sheet.Rows[1].Cells[4].Value)
	assert.Equal(t, "450.50", sheet.Rows[2].Cells[3].Value)
}

func TestXLSXExporter_ExportOrders(t *testing.T) {
	orders := []*entity.Order{
		{
			ID:            uuid.New(),
			TotalAmount:   decimal.RequireFromString("2500"),
			Currency:      "INR",
			Status:        entity.OrderStatusInTransit,
			PaymentStatus: entity.PaymentStatusPaid,
			Customer:      &entity.OrderCustomer{Name: "Asha", Email: "asha@example.com"},
			Items: []*entity.OrderItem{
				{ProductName: "A", Quantity: 2},
				{ProductName: "B", Quantity: 1},
			},
			TrackingNumber: "TRK123",
			CreatedAt:      time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	exporter := NewXLSXExporter()
	require.NoError(t, exporter.ExportOrders(&buf, orders))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-04 05:06:07", rows[1].Cells[1].Value)
	assert.Equal(t, "asha@example.com", rows[1].Cells[3].Value)
	assert.Equal(t, "in_transit", rows[1].Cells[4].Value)
	assert.Equal(t, "2500.00", rows[1].Cells[8].Value)
	assert.Equal(t, "A x2, B x1", rows[1].Cells[10].Value)
	assert.Equal(t, ".xlsx", exporter.FileExtension())
}
