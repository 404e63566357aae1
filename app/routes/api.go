// Package routes wires the HTTP surface: global middleware, public catalog
// reads, and the authenticated auth/cart/order groups.
package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/internal/identity"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/middleware"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

// Controllers bundles the handler set RegisterAPI mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Order   *controllers.OrderController
}

// RegisterAPI mounts every route on r. Catalog reads are public; everything
// else requires a verified bearer token. Product mutations only authenticate
// here; the admin role check lives in the catalog service.
func RegisterAPI(r *router.Router, c Controllers, verifier identity.TokenVerifier) {
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	auth := middleware.RequireAuth(verifier)
	authRate := middleware.RateLimit(30, time.Minute)

	r.Get("/", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"message": "Server is running"})
	})
	r.HandleFunc("/metrics", metrics.Handler())

	r.Post("/auth", "auth.authenticate", c.Auth.Authenticate, authRate)
	r.Get("/auth/profile", "auth.profile", c.Auth.Profile, auth)
	r.Put("/auth/profile", "auth.profile.update", c.Auth.UpdateProfile, auth)

	r.Get("/products", "products.list", c.Product.List)
	r.Get("/products/{id}", "products.get", c.Product.Get)
	r.Post("/products", "products.add", c.Product.Add, auth)
	r.Put("/products/{id}", "products.edit", c.Product.Edit, auth)
	r.Delete("/products/{id}", "products.delete", c.Product.Delete, auth)

	cart := r.Group("/cart", auth)
	cart.Post("/", "cart.add", c.Cart.Add)
	cart.Get("/", "cart.get", c.Cart.Get)
	cart.Delete("/", "cart.remove", c.Cart.Remove)
	cart.Delete("/clear", "cart.clear", c.Cart.Clear)

	orders := r.Group("/orders", auth)
	orders.Post("/checkout", "orders.checkout", c.Order.Checkout)
	orders.Get("/", "orders.list", c.Order.List)
	orders.Put("/update-status", "orders.update-status", c.Order.UpdateStatus)
}
