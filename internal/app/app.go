package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/internal/config"
	httpx "github.com/you/shopfront/internal/http"
	"github.com/you/shopfront/internal/http/handlers"
	"github.com/you/shopfront/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c := NewContainer(cfg)
	defer c.Close()

	ctx := context.Background()
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		return err
	}

	// Resolve the persisted session before serving: the route guard answers
	// 503 until this completes.
	if err := c.Session.Initialize(ctx); err != nil {
		return err
	}
	if c.Session.Authenticated() {
		if err := c.Cart.Refresh(ctx); err != nil {
			log.Printf("startup: cart refresh: %v", err)
		}
	}

	authH := handlers.NewAuthHandlers(c.LoginFlow, c.RegisterFlow, c.Session)
	catalogH := handlers.NewCatalogHandlers(c.Catalog, c.Formatter)
	cartH := handlers.NewCartHandlers(c.Cart, c.Formatter)
	checkoutH := handlers.NewCheckoutHandlers(c.Checkout)
	addressH := handlers.NewAddressHandlers(c.Addresses)
	listH := handlers.NewShoppingListHandlers(c.ShoppingList, c.Cart)

	sessMW := middleware.NewSessionMW(c.Session, "/auth/login")

	r := httpx.BuildRouter(authH, catalogH, cartH, checkoutH, addressH, listH, sessMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
