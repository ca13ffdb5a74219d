package domain

import "time"

// Claims represents the decoded payload of a bearer token. The gateway never
// verifies the signature (the backend owns the signing key); it only reads
// the fields it needs to drive session state.
type Claims struct {
	Email     string
	FullName  string
	Verified  bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims are expired at the given instant.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// Category represents a product category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product represents a catalog product
type Product struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ImageURL     string  `json:"image_url"`
	SellingPrice float64 `json:"sellingPrice"`
}

// ProductPage is one page of a paginated product listing
type ProductPage struct {
	Content    []Product
	TotalPages int
}

// CartItem is one line of the remote cart, server-assigned order
type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Address is a shipping address; every field is required on write
type Address struct {
	ID         int64  `json:"id,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// CardDetails holds the raw card form fields as entered by the user
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// PaymentResult represents the backend's payment outcome
type PaymentResult struct {
	Message string
}
