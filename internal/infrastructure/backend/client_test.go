package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/shopfront/domain"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, staticTokens{token})
}

func TestClient_Categories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/categories", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": 1, "name": "Groceries"}},
		})
	}, "")

	categories, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, "Groceries", categories[0].Name)
}

func TestClient_Categories_MissingData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
	}, "")

	_, err := client.Categories(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_Products(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("categoryId"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "12", r.URL.Query().Get("size"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"content": []map[string]any{
					{"id": 7, "title": "Oat Milk", "image_url": "http://img/7", "sellingPrice": 3.49},
				},
				"totalPages": 5,
			},
		})
	}, "")

	page, err := client.Products(context.Background(), 4, 2, 12)
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Oat Milk", page.Content[0].Title)
	assert.Equal(t, 3.49, page.Content[0].SellingPrice)
}

func TestClient_Products_MissingContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"totalPages": 3}})
	}, "")

	_, err := client.Products(context.Background(), 4, 0, 12)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_SignIn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signin", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "buyer@example.com", body["email"])
		assert.Equal(t, "123456", body["otp"])
		json.NewEncoder(w).Encode(map[string]string{"jwt": "issued-token"})
	}, "")

	jwt, err := client.SignIn(context.Background(), "buyer@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", jwt)
}

func TestClient_SignIn_MissingJWT(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}, "")

	_, err := client.SignIn(context.Background(), "buyer@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClient_SendOTP_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "resend limit reached"})
	}, "")

	err := client.SendOTP(context.Background(), "buyer@example.com", true)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "resend limit reached")
}

func TestClient_FetchCart_SendsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 11, "product": map[string]any{"id": 7, "title": "Oat Milk", "sellingPrice": 3.49}, "quantity": 2},
		})
	}, "tok-123")

	items, err := client.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(7), items[0].Product.ID)
}

func TestClient_FetchCart_NoToken(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.FetchCart(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.False(t, called, "no request should be sent without a token")
}

func TestClient_AddCartItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("productId"))
		assert.Equal(t, "2", r.URL.Query().Get("quantity"))
		assert.Equal(t, "buyer@example.com", r.URL.Query().Get("userEmail"))
		w.WriteHeader(http.StatusOK)
	}, "tok-123")

	err := client.AddCartItem(context.Background(), 7, 2, "buyer@example.com")
	require.NoError(t, err)
}

func TestClient_SearchByKeywords_RepeatsParam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"milk", "bread"}, r.URL.Query()["keywords"])
		w.WriteHeader(http.StatusOK)
	}, "tok-123")

	err := client.SearchByKeywords(context.Background(), []string{"milk", "bread"})
	require.NoError(t, err)
}

func TestClient_ExtractHandwriting(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ocr/handwriting", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "list.jpg", header.Filename)
		json.NewEncoder(w).Encode(map[string]any{"lines": []string{"milk", "bread"}})
	}, "tok-123")

	lines, err := client.ExtractHandwriting(context.Background(), "list.jpg", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "bread"}, lines)
}

func TestClient_SubmitPayment_Declined(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "card declined"})
	}, "tok-123")

	_, err := client.SubmitPayment(context.Background(), domain.CardDetails{
		Number: "4111111111111111", Expiry: "12/30", CVV: "123",
	})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "card declined", statusErr.Message)
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Categories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
