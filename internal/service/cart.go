package service

import "github.com/msomdec/freshshop/internal/domain"

// CartService edits the cart held in a session. It never touches the
// database; the session middleware persists the result.
type CartService struct{}

func NewCartService() *CartService {
	return &CartService{}
}

// AddItem appends the item. Adding the same product twice yields two lines.
func (s *CartService) AddItem(sess *domain.Session, item domain.CartItem) {
	sess.Cart = append(s.Items(sess), item)
}

// RemoveItem drops every line whose ID loosely equals id and returns how
// many were removed. The order of the remaining lines is preserved.
func (s *CartService) RemoveItem(sess *domain.Session, id domain.Scalar) int {
	items := s.Items(sess)
	kept := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if !item.ID.Equal(id) {
			kept = append(kept, item)
		}
	}
	sess.Cart = kept
	return len(items) - len(kept)
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (s *CartService) Clear(sess *domain.Session) {
	sess.Cart = []domain.CartItem{}
}

// Items returns the cart, initialising it if it has never been used.
func (s *CartService) Items(sess *domain.Session) []domain.CartItem {
	if sess.Cart == nil {
		sess.Cart = []domain.CartItem{}
	}
	return sess.Cart
}
