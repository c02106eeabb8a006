package handler

import (
	"net/http"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/metrics"
	"github.com/msomdec/freshshop/internal/service"
	"github.com/msomdec/freshshop/internal/session"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Storefront routes
// run inside the session middleware; health, metrics and static assets do not.
func RegisterRoutes(
	mux *http.ServeMux,
	sessions *session.Manager,
	auth *service.AuthService,
	carts *service.CartService,
	contacts *service.ContactService,
	catalog domain.ProductCatalog,
	loginLimiter *service.RateLimiter,
	staticDir string,
) {
	authHandler := NewAuthHandler(auth, sessions, loginLimiter)
	cartHandler := NewCartHandler(carts, catalog)
	contactHandler := NewContactHandler(contacts)

	page := func(h http.HandlerFunc) http.Handler {
		return sessions.Middleware(h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())
	if staticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	mux.Handle("GET /{$}", page(HandleHome))
	mux.Handle("GET /shop-detail", page(staticPage("shop-detail", "Shop Detail")))
	mux.Handle("GET /wishlist", page(staticPage("wishlist", "Wishlist")))
	mux.Handle("GET /about", page(staticPage("about", "About Us")))
	mux.Handle("GET /checkout", page(staticPage("checkout", "Checkout")))
	mux.Handle("GET /gallery", page(staticPage("gallery", "Gallery")))

	mux.Handle("GET /contact-us", page(contactHandler.HandleContactPage))
	mux.Handle("POST /contact", page(contactHandler.HandleContact))

	mux.Handle("GET /register", page(authHandler.HandleRegisterPage))
	mux.Handle("POST /register", page(authHandler.HandleRegister))
	mux.Handle("GET /login", page(authHandler.HandleLoginPage))
	mux.Handle("POST /login", page(authHandler.HandleLogin))
	mux.Handle("GET /logout", page(authHandler.HandleLogout))
	mux.Handle("GET /my-account", sessions.Middleware(RequireUser(http.HandlerFunc(authHandler.HandleMyAccount))))

	mux.Handle("GET /shop", page(cartHandler.HandleShop))
	mux.Handle("GET /cart", page(cartHandler.HandleCart))
	mux.Handle("GET /my-cart", page(cartHandler.HandleCart))
	mux.Handle("GET /cart/badge", page(cartHandler.HandleCartBadge))
	mux.Handle("POST /add-to-cart", page(cartHandler.HandleAddToCart))
	mux.Handle("POST /remove-from-cart", page(cartHandler.HandleRemoveFromCart))
	mux.Handle("POST /clear-cart", page(cartHandler.HandleClearCart))
}
