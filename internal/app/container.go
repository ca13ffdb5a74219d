package app

import (
	"github.com/redis/go-redis/v9"

	"github.com/you/shopfront/domain"
	"github.com/you/shopfront/internal/config"
	"github.com/you/shopfront/internal/infrastructure/auth"
	"github.com/you/shopfront/internal/infrastructure/backend"
	"github.com/you/shopfront/internal/infrastructure/tokenstore"
	"github.com/you/shopfront/internal/money"
	"github.com/you/shopfront/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	Vault       domain.TokenVault
	Decoder     domain.TokenDecoder
	Backend     *backend.Client

	// Services
	Session      *services.SessionStore
	Cart         *services.CartStore
	Catalog      *services.CatalogService
	Checkout     *services.CheckoutService
	Addresses    *services.AddressBook
	ShoppingList *services.ShoppingListService
	LoginFlow    *services.LoginFlow
	RegisterFlow *services.RegistrationFlow
	Formatter    *money.Formatter
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	c.Vault = tokenstore.NewRedisVault(c.RedisClient, cfg.TokenKey)
	c.Decoder = auth.NewJWTDecoder()

	c.Session = services.NewSessionStore(c.Vault, c.Decoder)

	// The session store is the backend client's only credential source.
	c.Backend = backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, c.Session)

	c.Cart = services.NewCartStore(c.Backend, c.Session)
	c.Catalog = services.NewCatalogService(c.Backend)
	c.Checkout = services.NewCheckoutService(c.Backend, c.Cart)
	c.Addresses = services.NewAddressBook(c.Backend)
	c.ShoppingList = services.NewShoppingListService(c.Backend, c.Backend, c.Cart)
	c.LoginFlow = services.NewLoginFlow(c.Backend, c.Session)
	c.RegisterFlow = services.NewRegistrationFlow(c.Backend, c.Session)
	c.Formatter = money.NewFormatter(cfg.CurrencySymbol, cfg.CurrencyLocale)

	return c
}

// Close releases the container's long-lived resources
func (c *Container) Close() error {
	c.Session.Close()
	return c.RedisClient.Close()
}
