package view

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/msomdec/freshshop/internal/domain"
)

// ShopPage renders the catalog next to the visitor's cart.
func ShopPage(user *domain.SessionUser, products []domain.Product, cart []domain.CartItem) templ.Component {
	return page("Shop", user, len(cart), fragment(func(m *markup) {
		m.raw(`<h1>Shop</h1><div class="products">`)
		for _, p := range products {
			m.raw(`<div class="product"><img src="`)
			m.url("/static/" + p.Image)
			m.raw(`" alt="`)
			m.text(p.Name)
			m.raw(`"><h2>`)
			m.text(p.Name)
			m.raw(`</h2><p class="price">`)
			m.text(money(p.Price))
			m.raw(`</p><form method="post" action="/add-to-cart"><input type="hidden" name="id" value="`)
			m.text(strconv.Itoa(p.ID))
			m.raw(`"><input type="hidden" name="name" value="`)
			m.text(p.Name)
			m.raw(`"><input type="hidden" name="price" value="`)
			m.text(formatFloat(p.Price))
			m.raw(`"><button type="submit" class="btn">Add to Cart</button></form></div>`)
		}
		m.raw(`</div><aside class="mini-cart"><h2>Your cart</h2>`)
		if len(cart) == 0 {
			m.raw(`<p>Your cart is empty.</p>`)
		} else {
			m.raw(`<ul>`)
			for _, item := range cart {
				m.raw(`<li>`)
				m.text(item.Name)
				m.raw(` <span class="price">`)
				m.text(price(item.Price))
				m.raw(`</span></li>`)
			}
			m.raw(`</ul><p class="total">Total: `)
			m.text(money(CartTotal(cart)))
			m.raw(`</p>`)
		}
		m.raw(`</aside>`)
	}))
}

// CartPage renders the cart with its computed total.
func CartPage(user *domain.SessionUser, cart []domain.CartItem) templ.Component {
	return page("Cart", user, len(cart), fragment(func(m *markup) {
		m.raw(`<h1>Cart</h1>`)
		if len(cart) == 0 {
			m.raw(`<p>Your cart is empty. <a href="/shop">Continue shopping</a></p>`)
			return
		}

		m.raw(`<table class="cart"><thead><tr><th>Product</th><th>Price</th><th></th></tr></thead><tbody>`)
		for _, item := range cart {
			m.raw(`<tr><td>`)
			m.text(item.Name)
			m.raw(`</td><td class="price">`)
			m.text(price(item.Price))
			m.raw(`</td><td><form method="post" action="/remove-from-cart"><input type="hidden" name="id" value="`)
			m.text(item.ID.String())
			m.raw(`"><button type="submit" class="btn btn-link">Remove</button></form></td></tr>`)
		}
		m.raw(`</tbody></table><p class="total">Total: `)
		m.text(money(CartTotal(cart)))
		m.raw(`</p>`)
		m.raw(`<button class="btn" type="button" onclick="fetch('/clear-cart', {method: 'POST'}).then(() => location.reload())">Clear cart</button>`)
		m.raw(`<a class="btn" href="/checkout">Checkout</a>`)
	}))
}
