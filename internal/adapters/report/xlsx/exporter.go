package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/envatex/internal/domain"
)

const sheet = "Sheet1"

var header = []any{
	"Cotización", "Fecha", "Estado", "Cliente", "Email", "Teléfono", "Comentarios",
	"Respuesta", "Producto ID", "Producto", "SKU", "Cantidad",
}

// Exporter writes quotations as one row per item. Quotations without items get a single row.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Export(w io.Writer, list []domain.Quotation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, q := range list {
		base := []any{
			q.ID, q.CreatedAt.Format("2006-01-02 15:04"), string(q.Status), q.CustomerName, q.CustomerEmail,
			deref(q.CustomerPhone), deref(q.CustomerComments), deref(q.AdminResponse),
		}
		if len(q.Items) == 0 {
			if err := writeRow(f, row, append(base, "", "", "", "")); err != nil {
				return err
			}
			row++
			continue
		}
		for _, it := range q.Items {
			var pid any = ""
			name, sku := "", ""
			if it.ProductID != nil {
				pid = *it.ProductID
			}
			if it.Product != nil {
				name = it.Product.Name
				sku = deref(it.Product.SKU)
			}
			cells := append(append([]any{}, base...), pid, name, sku, it.Quantity)
			if err := writeRow(f, row, cells); err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(sheet, "A", "L", 18); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
