package domain

import (
	"context"
	"io"
)

// TokenDecoder extracts claims from a bearer token without verifying it
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// TokenVault persists the single bearer token across process restarts
type TokenVault interface {
	Load(ctx context.Context) (string, error)
	Store(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenSource provides the current bearer token for outbound requests
type TokenSource interface {
	Token() (string, bool)
}

// SessionReader exposes the read side of the session store
type SessionReader interface {
	TokenSource
	Ready() bool
	Authenticated() bool
	Verified() bool
	Claims() (*Claims, bool)
}

// SessionWriter accepts a freshly issued bearer token
type SessionWriter interface {
	Login(ctx context.Context, token string) error
}

// AuthGateway defines the OTP challenge/response calls against the backend
type AuthGateway interface {
	SendOTP(ctx context.Context, email string, isLoginFlow bool) error
	SignIn(ctx context.Context, email, otp string) (string, error)
	SignUp(ctx context.Context, fullName, email, otp string) (string, error)
}

// CartGateway defines remote cart operations
type CartGateway interface {
	FetchCart(ctx context.Context) ([]CartItem, error)
	AddCartItem(ctx context.Context, productID int64, quantity int, userEmail string) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

// CatalogGateway defines catalog read operations
type CatalogGateway interface {
	Categories(ctx context.Context) ([]Category, error)
	Products(ctx context.Context, categoryID int64, page, size int) (*ProductPage, error)
	SearchByKeywords(ctx context.Context, keywords []string) error
}

// OrderGateway defines the two-step checkout calls
type OrderGateway interface {
	CreateOrder(ctx context.Context, address Address) error
	SubmitPayment(ctx context.Context, card CardDetails) (*PaymentResult, error)
}

// AddressGateway defines address book operations
type AddressGateway interface {
	ListAddresses(ctx context.Context) ([]Address, error)
	CreateAddress(ctx context.Context, address Address) (*Address, error)
	UpdateAddress(ctx context.Context, address Address) (*Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

// OCRGateway extracts handwriting lines from an uploaded image
type OCRGateway interface {
	ExtractHandwriting(ctx context.Context, filename string, image io.Reader) ([]string, error)
}
