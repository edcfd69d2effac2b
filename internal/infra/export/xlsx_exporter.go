// Package export renders admin reports as Excel workbooks.
package export

import (
	"io"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/tealeg/xlsx"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	productHeaders = []string{
		"ID", "Name", "Category", "Price", "Sale Price", "On Sale", "Featured", "New",
		"Active", "Stock", "Rating", "Reviews", "Created At",
	}
	orderHeaders = []string{
		"ID", "Created At", "Customer", "Email", "Status", "Payment Status", "Provider",
		"Gateway Order", "Total", "Currency", "Items", "Tracking Number",
	}
)

type xlsxExporter struct{}

// NewXLSXExporter creates an exporter producing .xlsx workbooks
func NewXLSXExporter() service.SpreadsheetExporter {
	return &xlsxExporter{}
}

func (e *xlsxExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *xlsxExporter) FileExtension() string {
	return ".xlsx"
}

func (e *xlsxExporter) ExportProducts(w io.Writer, products []*entity.Product) error {
	file, sheet, err := newWorkbook("Products", productHeaders)
	if err != nil {
		return err
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Price.StringFixed(2))
		if p.SalePrice != nil {
			row.AddCell().SetString(p.SalePrice.StringFixed(2))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetBool(p.OnSale)
		row.AddCell().SetBool(p.IsFeatured)
		row.AddCell().SetBool(p.IsNew)
		row.AddCell().SetBool(p.IsActive)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.ReviewCount)
		row.AddCell().SetString(formatTime(p.CreatedAt))
	}

	return errors.Wrap(file.Write(w), "failed to write products workbook")
}

func (e *xlsxExporter) ExportOrders(w io.Writer, orders []*entity.Order) error {
	file, sheet, err := newWorkbook("Orders", orderHeaders)
	if err != nil {
		return err
	}

	for _, o := range orders {
		customerName, customerEmail := "", ""
		if o.Customer != nil {
			customerName, customerEmail = o.Customer.Name, o.Customer.Email
		}

		items := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, item.ProductName+" x"+strconv.Itoa(item.Quantity))
		}

		row := sheet.AddRow()
		row.AddCell().SetString(o.ID.String())
		row.AddCell().SetString(formatTime(o.CreatedAt))
		row.AddCell().SetString(customerName)
		row.AddCell().SetString(customerEmail)
		row.AddCell().SetString(string(o.Status))
		row.AddCell().SetString(string(o.PaymentStatus))
		row.AddCell().SetString(o.PaymentProvider)
		row.AddCell().SetString(o.GatewayOrderID)
		row.AddCell().SetString(o.TotalAmount.StringFixed(2))
		row.AddCell().SetString(o.Currency)
		row.AddCell().SetString(strings.Join(items, ", "))
		row.AddCell().SetString(o.TrackingNumber)
	}

	return errors.Wrap(file.Write(w), "failed to write orders workbook")
}

func newWorkbook(sheetName string, headers []string) (*xlsx.File, *xlsx.Sheet, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	return file, sheet, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(timeLayout)
}
