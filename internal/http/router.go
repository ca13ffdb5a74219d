package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/shopfront/internal/http/handlers"
	"github.com/you/shopfront/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ch *handlers.CatalogHandlers, crh *handlers.CartHandlers, oh *handlers.CheckoutHandlers, adh *handlers.AddressHandlers, slh *handlers.ShoppingListHandlers, sess *middleware.SessionMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Catalog browsing needs no session
	r.GET("/categories", ch.Categories)
	r.GET("/products", ch.Products)

	auth := r.Group("/auth")
	auth.GET("/session", ah.Session)
	auth.POST("/logout", ah.Logout)
	auth.GET("/login", ah.LoginState)
	auth.POST("/login/email", ah.LoginEmail)
	auth.POST("/login/code", ah.LoginCode)
	auth.POST("/login/back", ah.LoginBack)
	auth.GET("/register", ah.RegisterState)
	auth.POST("/register/profile", ah.RegisterProfile)
	auth.POST("/register/code", ah.RegisterCode)
	auth.POST("/register/back", ah.RegisterBack)

	v := r.Group("/").Use(sess.RequireSession())
	v.GET("/cart", crh.Get)
	v.POST("/cart/items", crh.AddItem)
	v.POST("/cart/items/:id/increment", crh.Increment)
	v.POST("/cart/items/:id/decrement", crh.Decrement)
	v.DELETE("/cart/items/:id", crh.RemoveItem)
	v.DELETE("/cart", crh.Clear)
	v.POST("/checkout", oh.PlaceOrder)
	v.GET("/addresses", adh.List)
	v.POST("/addresses", adh.Create)
	v.PUT("/addresses/:id", adh.Update)
	v.DELETE("/addresses/:id", adh.Delete)
	v.POST("/shopping-list/extract", slh.Extract)
	v.POST("/shopping-list/build", slh.Build)

	return r
}
