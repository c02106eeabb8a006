package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/metrics"
	"github.com/msomdec/freshshop/internal/service"
	"github.com/msomdec/freshshop/internal/session"
	"github.com/msomdec/freshshop/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// CartHandler serves the catalog and the session cart.
type CartHandler struct {
	carts   *service.CartService
	catalog domain.ProductCatalog
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *service.CartService, catalog domain.ProductCatalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// HandleShop renders the catalog together with the visitor's cart.
// GET /shop
func (h *CartHandler) HandleShop(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		slog.Error("list products", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sess := session.FromContext(r.Context())
	render(w, r, http.StatusOK, view.ShopPage(sess.User, products, h.carts.Items(sess)))
}

// HandleCart renders the cart page.
// GET /cart, GET /my-cart
func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	render(w, r, http.StatusOK, view.CartPage(sess.User, h.carts.Items(sess)))
}

// HandleCartBadge patches the navbar cart counter over SSE.
// GET /cart/badge
func (h *CartHandler) HandleCartBadge(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.CartBadge(len(h.carts.Items(sess))),
		datastar.WithSelectorID("cart-count"),
	); err != nil {
		slog.Error("patch cart badge", "error", err)
	}
}

// HandleAddToCart appends the posted item and redirects to the cart.
// POST /add-to-cart
// Form: id, name, price. JSON: {"id":..., "name":"...", "price":...}
func (h *CartHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := readRequest(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	h.carts.AddItem(session.FromContext(r.Context()), req.item())
	metrics.RecordCartOperation("add")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// HandleRemoveFromCart removes every item matching the posted id and
// redirects to the cart.
// POST /remove-from-cart
// Form: id. JSON: {"id":...}
func (h *CartHandler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := readRequest(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	h.carts.RemoveItem(session.FromContext(r.Context()), req.ID)
	metrics.RecordCartOperation("remove")
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// HandleClearCart empties the cart.
// POST /clear-cart
// Response: {"success": true}
func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	h.carts.Clear(session.FromContext(r.Context()))
	metrics.RecordCartOperation("clear")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
