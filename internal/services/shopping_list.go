package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/you/shopfront/domain"
)

// ShoppingListService turns a photographed handwritten shopping list into
// cart contents: OCR extracts the lines, the multi-keyword search has the
// backend populate the cart, and a refresh pulls the result into the mirror.
type ShoppingListService struct {
	ocr     domain.OCRGateway
	catalog domain.CatalogGateway
	cart    *CartStore
}

// NewShoppingListService creates a shopping list service
func NewShoppingListService(ocr domain.OCRGateway, catalog domain.CatalogGateway, cart *CartStore) *ShoppingListService {
	return &ShoppingListService{ocr: ocr, catalog: catalog, cart: cart}
}

// ExtractLines uploads the image and returns the recognized lines.
func (s *ShoppingListService) ExtractLines(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	lines, err := s.ocr.ExtractHandwriting(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("shopping list: extract: %w", err)
	}
	return lines, nil
}

// BuildCart normalizes the lines into search keywords, triggers the backend
// search that fills the cart, and refreshes the local mirror.
func (s *ShoppingListService) BuildCart(ctx context.Context, lines []string) error {
	keywords := make([]string, 0, len(lines))
	for _, line := range lines {
		keyword := strings.ToLower(strings.TrimSpace(line))
		if keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	if len(keywords) == 0 {
		return domain.ErrNoKeywords
	}

	if err := s.catalog.SearchByKeywords(ctx, keywords); err != nil {
		return fmt.Errorf("shopping list: search: %w", err)
	}
	return s.cart.Refresh(ctx)
}
