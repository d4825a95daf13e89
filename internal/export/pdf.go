// Package export renders shopping lists to downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
)

// ShoppingListFilename is the filename offered to the client on download.
const ShoppingListFilename = "shopping_cart.pdf"

// ShoppingListPDF writes the aggregated shopping list as a PDF document.
// Items are rendered in the order given, one line per item as
// "{name} - {amount} {unit}". An empty list produces a document with only
// the title.
func ShoppingListPDF(w io.Writer, items []domain.ShoppingListItem) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Shopping list", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Shopping list", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, item := range items {
		line := fmt.Sprintf("%s - %d %s", item.Name, item.TotalAmount, item.MeasurementUnit)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
