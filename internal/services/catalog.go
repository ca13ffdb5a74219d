package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/you/shopfront/domain"
)

// DefaultPageSize matches the storefront's product grid
const DefaultPageSize = 12

// CatalogService reads categories and paginated product listings. Product
// fetches follow a superseded-response-discard discipline: starting a new
// fetch cancels the in-flight one, and a stale result is never allowed to
// overwrite state produced by a newer request.
type CatalogService struct {
	gateway domain.CatalogGateway

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	page   *domain.ProductPage
}

// NewCatalogService creates a catalog service
func NewCatalogService(gateway domain.CatalogGateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

// Categories lists all product categories.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.gateway.Categories(ctx)
}

// CategoryName resolves a category id to its display name.
func (s *CatalogService) CategoryName(ctx context.Context, id int64) (string, error) {
	categories, err := s.gateway.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name, nil
		}
	}
	return "", domain.ErrCategoryNotFound
}

// LoadProducts fetches one page of a category's products. A call supersedes
// any fetch still in flight: the older request is cancelled and its result
// discarded. Superseded calls return ErrFetchSuperseded, which callers must
// not treat as a failure.
func (s *CatalogService) LoadProducts(ctx context.Context, categoryID int64, page, size int) (*domain.ProductPage, error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.gateway.Products(ctx, categoryID, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer fetch took over; this result must not commit.
		return nil, domain.ErrFetchSuperseded
	}
	s.cancel = nil
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, domain.ErrFetchSuperseded
		}
		return nil, fmt.Errorf("catalog: load products: %w", err)
	}

	s.page = result
	return result, nil
}

// CurrentPage returns the last committed product page, if any.
func (s *CatalogService) CurrentPage() (*domain.ProductPage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return nil, false
	}
	return s.page, true
}
