package handler

import (
	"net/url"

	"github.com/msomdec/freshshop/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *registerRequest) fromForm(form url.Values) {
	req.Name = form.Get("name")
	req.Email = form.Get("email")
	req.Password = form.Get("password")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) fromForm(form url.Values) {
	req.Email = form.Get("email")
	req.Password = form.Get("password")
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (req *contactRequest) fromForm(form url.Values) {
	req.Name = form.Get("name")
	req.Email = form.Get("email")
	req.Subject = form.Get("subject")
	req.Message = form.Get("message")
}

// cartItemRequest is the body of POST /add-to-cart. Form values are text;
// JSON values keep their type.
type cartItemRequest struct {
	ID    domain.Scalar `json:"id"`
	Name  string        `json:"name"`
	Price domain.Scalar `json:"price"`
}

func (req *cartItemRequest) fromForm(form url.Values) {
	req.ID = domain.TextScalar(form.Get("id"))
	req.Name = form.Get("name")
	req.Price = domain.TextScalar(form.Get("price"))
}

func (req *cartItemRequest) item() domain.CartItem {
	return domain.CartItem{ID: req.ID, Name: req.Name, Price: req.Price}
}

type removeItemRequest struct {
	ID domain.Scalar `json:"id"`
}

func (req *removeItemRequest) fromForm(form url.Values) {
	req.ID = domain.TextScalar(form.Get("id"))
}
