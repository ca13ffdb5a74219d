package mocks

import (
	"context"
	"io"

	"github.com/you/shopfront/domain"
)

// MockAuthGateway implements domain.AuthGateway for testing
type MockAuthGateway struct {
	SendOTPFunc func(ctx context.Context, email string, isLoginFlow bool) error
	SignInFunc  func(ctx context.Context, email, otp string) (string, error)
	SignUpFunc  func(ctx context.Context, fullName, email, otp string) (string, error)

	SendOTPCalls int
	SignInCalls  int
	SignUpCalls  int
}

func NewMockAuthGateway() *MockAuthGateway {
	return &MockAuthGateway{}
}

func (m *MockAuthGateway) SendOTP(ctx context.Context, email string, isLoginFlow bool) error {
	m.SendOTPCalls++
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, email, isLoginFlow)
	}
	return nil
}

func (m *MockAuthGateway) SignIn(ctx context.Context, email, otp string) (string, error) {
	m.SignInCalls++
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, otp)
	}
	return "mock-token", nil
}

func (m *MockAuthGateway) SignUp(ctx context.Context, fullName, email, otp string) (string, error) {
	m.SignUpCalls++
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, fullName, email, otp)
	}
	return "mock-token", nil
}

// MockCartGateway implements domain.CartGateway for testing. Its default
// behavior keeps a tiny in-memory cart so mutate-then-refresh sequences
// behave like the real backend.
type MockCartGateway struct {
	FetchCartFunc      func(ctx context.Context) ([]domain.CartItem, error)
	AddCartItemFunc    func(ctx context.Context, productID int64, quantity int, userEmail string) error
	UpdateCartItemFunc func(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItemFunc func(ctx context.Context, itemID int64) error
	ClearCartFunc      func(ctx context.Context) error

	FetchCalls  int
	AddCalls    int
	UpdateCalls int
	RemoveCalls int
	ClearCalls  int

	Remote []domain.CartItem
	nextID int64
}

func NewMockCartGateway() *MockCartGateway {
	return &MockCartGateway{}
}

func (m *MockCartGateway) FetchCart(ctx context.Context) ([]domain.CartItem, error) {
	m.FetchCalls++
	if m.FetchCartFunc != nil {
		return m.FetchCartFunc(ctx)
	}
	items := make([]domain.CartItem, len(m.Remote))
	copy(items, m.Remote)
	return items, nil
}

func (m *MockCartGateway) AddCartItem(ctx context.Context, productID int64, quantity int, userEmail string) error {
	m.AddCalls++
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(ctx, productID, quantity, userEmail)
	}
	for i := range m.Remote {
		if m.Remote[i].Product.ID == productID {
			m.Remote[i].Quantity += quantity
			return nil
		}
	}
	m.nextID++
	m.Remote = append(m.Remote, domain.CartItem{
		ID:       m.nextID,
		Product:  domain.Product{ID: productID},
		Quantity: quantity,
	})
	return nil
}

func (m *MockCartGateway) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	m.UpdateCalls++
	if m.UpdateCartItemFunc != nil {
		return m.UpdateCartItemFunc(ctx, itemID, quantity)
	}
	for i := range m.Remote {
		if m.Remote[i].ID == itemID {
			m.Remote[i].Quantity = quantity
		}
	}
	return nil
}

func (m *MockCartGateway) RemoveCartItem(ctx context.Context, itemID int64) error {
	m.RemoveCalls++
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, itemID)
	}
	for i := range m.Remote {
		if m.Remote[i].ID == itemID {
			m.Remote = append(m.Remote[:i], m.Remote[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockCartGateway) ClearCart(ctx context.Context) error {
	m.ClearCalls++
	if m.ClearCartFunc != nil {
		return m.ClearCartFunc(ctx)
	}
	m.Remote = nil
	return nil
}

// MockCatalogGateway implements domain.CatalogGateway for testing
type MockCatalogGateway struct {
	CategoriesFunc       func(ctx context.Context) ([]domain.Category, error)
	ProductsFunc         func(ctx context.Context, categoryID int64, page, size int) (*domain.ProductPage, error)
	SearchByKeywordsFunc func(ctx context.Context, keywords []string) error

	SearchCalls int
}

func NewMockCatalogGateway() *MockCatalogGateway {
	return &MockCatalogGateway{}
}

func (m *MockCatalogGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []domain.Category{{ID: 1, Name: "Groceries"}}, nil
}

func (m *MockCatalogGateway) Products(ctx context.Context, categoryID int64, page, size int) (*domain.ProductPage, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx, categoryID, page, size)
	}
	return &domain.ProductPage{TotalPages: 1}, nil
}

func (m *MockCatalogGateway) SearchByKeywords(ctx context.Context, keywords []string) error {
	m.SearchCalls++
	if m.SearchByKeywordsFunc != nil {
		return m.SearchByKeywordsFunc(ctx, keywords)
	}
	return nil
}

// MockOrderGateway implements domain.OrderGateway for testing
type MockOrderGateway struct {
	CreateOrderFunc   func(ctx context.Context, address domain.Address) error
	SubmitPaymentFunc func(ctx context.Context, card domain.CardDetails) (*domain.PaymentResult, error)

	CreateOrderCalls   int
	SubmitPaymentCalls int
}

func NewMockOrderGateway() *MockOrderGateway {
	return &MockOrderGateway{}
}

func (m *MockOrderGateway) CreateOrder(ctx context.Context, address domain.Address) error {
	m.CreateOrderCalls++
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, address)
	}
	return nil
}

func (m *MockOrderGateway) SubmitPayment(ctx context.Context, card domain.CardDetails) (*domain.PaymentResult, error) {
	m.SubmitPaymentCalls++
	if m.SubmitPaymentFunc != nil {
		return m.SubmitPaymentFunc(ctx, card)
	}
	return &domain.PaymentResult{Message: "Payment successful!"}, nil
}

// MockAddressGateway implements domain.AddressGateway for testing
type MockAddressGateway struct {
	ListAddressesFunc func(ctx context.Context) ([]domain.Address, error)
	CreateAddressFunc func(ctx context.Context, address domain.Address) (*domain.Address, error)
	UpdateAddressFunc func(ctx context.Context, address domain.Address) (*domain.Address, error)
	DeleteAddressFunc func(ctx context.Context, id int64) error
}

func NewMockAddressGateway() *MockAddressGateway {
	return &MockAddressGateway{}
}

func (m *MockAddressGateway) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	if m.ListAddressesFunc != nil {
		return m.ListAddressesFunc(ctx)
	}
	return nil, nil
}

func (m *MockAddressGateway) CreateAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if m.CreateAddressFunc != nil {
		return m.CreateAddressFunc(ctx, address)
	}
	created := address
	created.ID = 1
	return &created, nil
}

func (m *MockAddressGateway) UpdateAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if m.UpdateAddressFunc != nil {
		return m.UpdateAddressFunc(ctx, address)
	}
	return &address, nil
}

func (m *MockAddressGateway) DeleteAddress(ctx context.Context, id int64) error {
	if m.DeleteAddressFunc != nil {
		return m.DeleteAddressFunc(ctx, id)
	}
	return nil
}

// MockOCRGateway implements domain.OCRGateway for testing
type MockOCRGateway struct {
	ExtractHandwritingFunc func(ctx context.Context, filename string, image io.Reader) ([]string, error)
}

func NewMockOCRGateway() *MockOCRGateway {
	return &MockOCRGateway{}
}

func (m *MockOCRGateway) ExtractHandwriting(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	if m.ExtractHandwritingFunc != nil {
		return m.ExtractHandwritingFunc(ctx, filename, image)
	}
	return []string{"milk", "bread"}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AuthGateway    = (*MockAuthGateway)(nil)
	_ domain.CartGateway    = (*MockCartGateway)(nil)
	_ domain.CatalogGateway = (*MockCatalogGateway)(nil)
	_ domain.OrderGateway   = (*MockOrderGateway)(nil)
	_ domain.AddressGateway = (*MockAddressGateway)(nil)
	_ domain.OCRGateway     = (*MockOCRGateway)(nil)
)
