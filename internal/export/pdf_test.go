package export

import (
	"bytes"
	"testing"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
)

func TestShoppingListPDF(t *testing.T) {
	items := []domain.ShoppingListItem{
		{IngredientID: "ing-1", Name: "flour", MeasurementUnit: "g", TotalAmount: 500},
		{IngredientID: "ing-2", Name: "milk", MeasurementUnit: "ml", TotalAmount: 300},
	}

	var buf bytes.Buffer
	if err := ShoppingListPDF(&buf, items); err != nil {
		t.Fatalf("ShoppingListPDF: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
	if buf.Len() == 0 {
		t.Error("empty output")
	}
}

func TestShoppingListPDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ShoppingListPDF(&buf, nil); err != nil {
		t.Fatalf("ShoppingListPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}
