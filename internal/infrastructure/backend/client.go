// Package backend is the typed client for the storefront's remote REST API.
// Every response shape is validated at this boundary; a payload that does not
// match the expected schema fails with domain.ErrMalformedResponse instead of
// leaking partial data upward.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/you/shopfront/domain"
)

// StatusError represents a non-success response from the backend
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
}

// Client talks to the backend REST API. The bearer credential is always
// sourced from the token source (the session store), never held locally.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  domain.TokenSource
}

// NewClient creates a backend client with an instrumented transport
func NewClient(baseURL string, timeout time.Duration, tokens domain.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	authed      bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.authed {
		token, ok := c.tokens.Token()
		if !ok {
			return domain.ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body
func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func (c *Client) postJSON(ctx context.Context, path string, authed bool, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("backend: encode request: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(data),
		contentType: "application/json",
		authed:      authed,
	}, out)
}

// --- auth ---

// SendOTP implements domain.AuthGateway
func (c *Client) SendOTP(ctx context.Context, email string, isLoginFlow bool) error {
	payload := struct {
		Email       string `json:"email"`
		IsLoginFlow bool   `json:"isLoginFlow"`
	}{email, isLoginFlow}
	return c.postJSON(ctx, "/api/auth/sent/login-signup-otp", false, payload, nil)
}

type tokenResponse struct {
	JWT string `json:"jwt"`
}

// SignIn implements domain.AuthGateway
func (c *Client) SignIn(ctx context.Context, email, otp string) (string, error) {
	payload := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{email, otp}

	var resp tokenResponse
	if err := c.postJSON(ctx, "/api/auth/signin", false, payload, &resp); err != nil {
		return "", err
	}
	if resp.JWT == "" {
		return "", fmt.Errorf("%w: signin response missing jwt", domain.ErrMalformedResponse)
	}
	return resp.JWT, nil
}

// SignUp implements domain.AuthGateway
func (c *Client) SignUp(ctx context.Context, fullName, email, otp string) (string, error) {
	payload := struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		OTP      string `json:"otp"`
	}{fullName, email, otp}

	var resp tokenResponse
	if err := c.postJSON(ctx, "/api/auth/signup", false, payload, &resp); err != nil {
		return "", err
	}
	if resp.JWT == "" {
		return "", fmt.Errorf("%w: signup response missing jwt", domain.ErrMalformedResponse)
	}
	return resp.JWT, nil
}

// --- catalog ---

// Categories implements domain.CatalogGateway
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp struct {
		Data *[]domain.Category `json:"data"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/products/categories"}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: categories response missing data", domain.ErrMalformedResponse)
	}
	return *resp.Data, nil
}

// Products implements domain.CatalogGateway
func (c *Client) Products(ctx context.Context, categoryID int64, page, size int) (*domain.ProductPage, error) {
	query := url.Values{}
	query.Set("categoryId", strconv.FormatInt(categoryID, 10))
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var resp struct {
		Data *struct {
			Content    *[]domain.Product `json:"content"`
			TotalPages int               `json:"totalPages"`
		} `json:"data"`
	}
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/products", query: query}, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil || resp.Data.Content == nil {
		return nil, fmt.Errorf("%w: products response missing data.content", domain.ErrMalformedResponse)
	}
	return &domain.ProductPage{Content: *resp.Data.Content, TotalPages: resp.Data.TotalPages}, nil
}

// SearchByKeywords implements domain.CatalogGateway. The backend matches the
// keywords against the catalog and populates the caller's cart server-side.
func (c *Client) SearchByKeywords(ctx context.Context, keywords []string) error {
	query := url.Values{}
	for _, k := range keywords {
		query.Add("keywords", k)
	}
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/products/search/multi",
		query:  query,
		authed: true,
	}, nil)
}

// --- ocr ---

// ExtractHandwriting implements domain.OCRGateway
func (c *Client) ExtractHandwriting(ctx context.Context, filename string, image io.Reader) ([]string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("backend: build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("backend: read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("backend: build upload: %w", err)
	}

	var resp struct {
		Lines *[]string `json:"lines"`
	}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/ocr/handwriting",
		body:        &buf,
		contentType: writer.FormDataContentType(),
		authed:      true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Lines == nil {
		return nil, fmt.Errorf("%w: ocr response missing lines", domain.ErrMalformedResponse)
	}
	return *resp.Lines, nil
}

// --- cart ---

// FetchCart implements domain.CartGateway
func (c *Client) FetchCart(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/cart", authed: true}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem implements domain.CartGateway
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int, userEmail string) error {
	query := url.Values{}
	query.Set("productId", strconv.FormatInt(productID, 10))
	query.Set("quantity", strconv.Itoa(quantity))
	query.Set("userEmail", userEmail)
	return c.do(ctx, request{method: http.MethodPost, path: "/api/cart/add", query: query, authed: true}, nil)
}

// UpdateCartItem implements domain.CartGateway
func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	query := url.Values{}
	query.Set("quantity", strconv.Itoa(quantity))
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/api/cart/" + strconv.FormatInt(itemID, 10),
		query:  query,
		authed: true,
	}, nil)
}

// RemoveCartItem implements domain.CartGateway
func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/cart/" + strconv.FormatInt(itemID, 10),
		authed: true,
	}, nil)
}

// ClearCart implements domain.CartGateway
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/cart", authed: true}, nil)
}

// --- addresses ---

// ListAddresses implements domain.AddressGateway
func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/addresses", authed: true}, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress implements domain.AddressGateway
func (c *Client) CreateAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := c.postJSON(ctx, "/api/addresses", true, address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAddress implements domain.AddressGateway
func (c *Client) UpdateAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	data, err := json.Marshal(address)
	if err != nil {
		return nil, fmt.Errorf("backend: encode request: %w", err)
	}

	var updated domain.Address
	err = c.do(ctx, request{
		method:      http.MethodPut,
		path:        "/api/addresses/" + strconv.FormatInt(address.ID, 10),
		body:        bytes.NewReader(data),
		contentType: "application/json",
		authed:      true,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAddress implements domain.AddressGateway
func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/api/addresses/" + strconv.FormatInt(id, 10),
		authed: true,
	}, nil)
}

// --- orders ---

// CreateOrder implements domain.OrderGateway
func (c *Client) CreateOrder(ctx context.Context, address domain.Address) error {
	return c.postJSON(ctx, "/api/orders/checkout", true, address, nil)
}

// SubmitPayment implements domain.OrderGateway
func (c *Client) SubmitPayment(ctx context.Context, card domain.CardDetails) (*domain.PaymentResult, error) {
	payload := struct {
		CVV        string `json:"cvv"`
		Expiry     string `json:"expiry"`
		CardNumber string `json:"cardNumber"`
	}{card.CVV, card.Expiry, card.Number}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/payment", true, payload, &resp); err != nil {
		return nil, err
	}
	return &domain.PaymentResult{Message: resp.Message}, nil
}

var (
	_ domain.AuthGateway    = (*Client)(nil)
	_ domain.CartGateway    = (*Client)(nil)
	_ domain.CatalogGateway = (*Client)(nil)
	_ domain.OrderGateway   = (*Client)(nil)
	_ domain.AddressGateway = (*Client)(nil)
	_ domain.OCRGateway     = (*Client)(nil)
)
