package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/export"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// ShoppingListService aggregates the viewer's cart into a purchasable list.
type ShoppingListService struct {
	store  store.Store
	logger *slog.Logger
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(store store.Store, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{store: store, logger: logger}
}

// Build returns the aggregated shopping list for the user's cart. An empty
// cart yields an empty list, not an error.
func (s *ShoppingListService) Build(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	items, err := s.store.ShoppingList(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("build shopping list: %w", err)
	}
	return items, nil
}

// WritePDF builds the user's shopping list and renders it as a PDF.
func (s *ShoppingListService) WritePDF(ctx context.Context, w io.Writer, userID string) error {
	items, err := s.Build(ctx, userID)
	if err != nil {
		return err
	}

	if err := export.ShoppingListPDF(w, items); err != nil {
		return fmt.Errorf("render shopping list: %w", err)
	}

	s.logger.Info("shopping list exported", "user_id", userID, "items", len(items))
	return nil
}
