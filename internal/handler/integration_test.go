package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/repository/sqlite"
	"github.com/msomdec/freshshop/internal/service"
)

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse // don't follow redirects automatically
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != location {
		t.Fatalf("expected redirect to %s, got %s", location, loc)
	}
}

func countRows(t *testing.T, srv *testServer, table string) int {
	t.Helper()
	var n int
	if err := srv.db.SqlDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestIntegration_RegisterLoginAccountLogout(t *testing.T) {
	srv := newTestServerWith(t, serverOptions{
		sessionStore: func(db *sqlite.DB) domain.SessionStore { return db.Sessions() },
	})
	client := newClient(t)

	// 1. Register a new user.
	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name":     {"Integration User"},
		"email":    {"integ@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	expectRedirect(t, resp, "/login")

	// 2. Login with the new credentials.
	resp, err = client.PostForm(srv.URL+"/login", url.Values{
		"email":    {"integ@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	expectRedirect(t, resp, "/")

	// 3. The account page shows the user.
	resp, err = client.Get(srv.URL + "/my-account")
	if err != nil {
		t.Fatalf("GET /my-account: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("my-account: expected 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "integ@example.com") {
		t.Fatal("my-account should show the user's email")
	}

	// 4. Home page shows the user name in the navbar.
	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Integration User") {
		t.Fatal("home page should show the user's name")
	}

	// 5. Logout.
	resp, err = client.Get(srv.URL + "/logout")
	if err != nil {
		t.Fatalf("GET /logout: %v", err)
	}
	expectRedirect(t, resp, "/")

	// 6. The account page redirects to login again.
	resp, err = client.Get(srv.URL + "/my-account")
	if err != nil {
		t.Fatalf("GET /my-account after logout: %v", err)
	}
	expectRedirect(t, resp, "/login")
}

func TestIntegration_LoginRegeneratesSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name":     {"Regen"},
		"email":    {"regen@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	resp.Body.Close()

	srvURL, _ := url.Parse(srv.URL)
	before := client.Jar.Cookies(srvURL)
	if len(before) != 1 {
		t.Fatalf("expected one session cookie before login, got %d", len(before))
	}

	resp, err = client.PostForm(srv.URL+"/login", url.Values{
		"email":    {"regen@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()

	after := client.Jar.Cookies(srvURL)
	if len(after) != 1 {
		t.Fatalf("expected one session cookie after login, got %d", len(after))
	}
	if after[0].Value == before[0].Value {
		t.Fatal("expected a new session cookie after login")
	}
}

func TestIntegration_LoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name":     {"Wrong PW"},
		"email":    {"wrong@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	resp.Body.Close()

	resp, err = client.PostForm(srv.URL+"/login", url.Values{
		"email":    {"wrong@example.com"},
		"password": {"badpassword"},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		resp.Body.Close()
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Incorrect password.") {
		t.Fatal("login form should explain the failure")
	}
	if !strings.Contains(body, `value="wrong@example.com"`) {
		t.Fatal("login form should keep the email")
	}

	// No identity was stored.
	resp, err = client.Get(srv.URL + "/my-account")
	if err != nil {
		t.Fatalf("GET /my-account: %v", err)
	}
	expectRedirect(t, resp, "/login")
}

func TestIntegration_LoginUnknownUser(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"password123"},
	})
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		resp.Body.Close()
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "User not found.") {
		t.Fatal("login form should report the unknown user")
	}
}

func TestIntegration_LoginRateLimited(t *testing.T) {
	srv := newTestServerWith(t, serverOptions{
		limiter: service.NewRateLimiter(0.001, 2),
	})
	client := newClient(t)

	form := url.Values{
		"email":    {"nobody@example.com"},
		"password": {"password123"},
	}
	for i := 0; i < 2; i++ {
		resp, err := client.PostForm(srv.URL+"/login", form)
		if err != nil {
			t.Fatalf("POST /login #%d: %v", i+1, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, resp.StatusCode)
		}
	}

	resp, err := client.PostForm(srv.URL+"/login", form)
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}

func TestIntegration_RegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	form := url.Values{
		"name":     {"Dup User"},
		"email":    {"dup@example.com"},
		"password": {"password123"},
	}

	resp, err := client.PostForm(srv.URL+"/register", form)
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	expectRedirect(t, resp, "/login")

	resp, err = client.PostForm(srv.URL+"/register", form)
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		resp.Body.Close()
		t.Fatalf("duplicate register: expected 422, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "already registered") {
		t.Fatal("register form should report the duplicate email")
	}

	if n := countRows(t, srv, "users"); n != 1 {
		t.Fatalf("expected 1 user row, got %d", n)
	}
}

func TestIntegration_RegisterMissingPassword(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name":  {"No PW"},
		"email": {"nopw@example.com"},
	})
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if n := countRows(t, srv, "users"); n != 0 {
		t.Fatalf("expected no user rows, got %d", n)
	}
}

func TestIntegration_CartFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	// Form body, as posted by the shop page.
	resp, err := client.PostForm(srv.URL+"/add-to-cart", url.Values{
		"id":    {"1"},
		"name":  {"Alpha"},
		"price": {"9.99"},
	})
	if err != nil {
		t.Fatalf("POST /add-to-cart: %v", err)
	}
	expectRedirect(t, resp, "/cart")

	// JSON body with numeric id and price.
	resp, err = client.Post(srv.URL+"/add-to-cart", "application/json",
		strings.NewReader(`{"id": 2, "name": "Bravo", "price": 4.99}`))
	if err != nil {
		t.Fatalf("POST /add-to-cart (json): %v", err)
	}
	expectRedirect(t, resp, "/cart")

	resp, err = client.Get(srv.URL + "/cart")
	if err != nil {
		t.Fatalf("GET /cart: %v", err)
	}
	body := readBody(t, resp)
	alpha, bravo := strings.Index(body, "Alpha"), strings.Index(body, "Bravo")
	if alpha < 0 || bravo < 0 || alpha > bravo {
		t.Fatal("cart should list Alpha then Bravo")
	}
	if !strings.Contains(body, "14.98") {
		t.Fatal("cart should show the total")
	}

	// Remove by numeric id matches the item added with a string id.
	resp, err = client.Post(srv.URL+"/remove-from-cart", "application/json", strings.NewReader(`{"id": 1}`))
	if err != nil {
		t.Fatalf("POST /remove-from-cart: %v", err)
	}
	expectRedirect(t, resp, "/cart")

	resp, err = client.Get(srv.URL + "/my-cart")
	if err != nil {
		t.Fatalf("GET /my-cart: %v", err)
	}
	body = readBody(t, resp)
	if strings.Contains(body, "Alpha") || !strings.Contains(body, "Bravo") {
		t.Fatal("only Bravo should remain in the cart")
	}

	// Clearing twice succeeds both times.
	for i := 0; i < 2; i++ {
		resp, err = client.Post(srv.URL+"/clear-cart", "application/json", nil)
		if err != nil {
			t.Fatalf("POST /clear-cart: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			t.Fatalf("clear-cart: expected 200, got %d", resp.StatusCode)
		}
		var result map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("decode clear-cart: %v", err)
		}
		resp.Body.Close()
		if !result["success"] {
			t.Fatal("expected success=true")
		}
	}

	resp, err = client.Get(srv.URL + "/cart")
	if err != nil {
		t.Fatalf("GET /cart: %v", err)
	}
	if body := readBody(t, resp); strings.Contains(body, "Bravo") {
		t.Fatal("cart should be empty after clear")
	}
}

func TestIntegration_AddToCartInvalidJSON(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(srv.URL+"/add-to-cart", "application/json", strings.NewReader(`{"id":`))
	if err != nil {
		t.Fatalf("POST /add-to-cart: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestIntegration_CartBadge(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/add-to-cart", url.Values{"id": {"1"}, "name": {"Alpha"}, "price": {"9.99"}})
	if err != nil {
		t.Fatalf("POST /add-to-cart: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/cart/badge")
	if err != nil {
		t.Fatalf("GET /cart/badge: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		resp.Body.Close()
		t.Fatalf("expected event stream, got %s", ct)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `id="cart-count"`) || !strings.Contains(body, ">1</span>") {
		t.Fatalf("badge patch should carry the cart count, got %q", body)
	}
}

func TestIntegration_ShopListsCatalog(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/shop")
	if err != nil {
		t.Fatalf("GET /shop: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	for _, name := range []string{"Producto 1", "Producto 2", "Producto 3"} {
		if !strings.Contains(body, name) {
			t.Fatalf("shop should list %s", name)
		}
	}
}

func TestIntegration_StaticPages(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/contact-us", "/register", "/login", "/shop-detail", "/wishlist", "/about", "/checkout", "/gallery"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("GET %s: expected HTML, got %s", path, ct)
		}
	}
}

func TestIntegration_UnknownPath(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_ContactForm(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.PostForm(srv.URL+"/contact", url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"subject": {"Hello"},
		"message": {"Do you ship abroad?"},
	})
	if err != nil {
		t.Fatalf("POST /contact: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body := readBody(t, resp); body != "Message sent successfully." {
		t.Fatalf("unexpected body %q", body)
	}

	if n := countRows(t, srv, "contact_form"); n != 1 {
		t.Fatalf("expected 1 contact row, got %d", n)
	}
}

func TestIntegration_ContactFormDatabaseError(t *testing.T) {
	srv := newTestServer(t)
	srv.db.Close()

	resp, err := http.PostForm(srv.URL+"/contact", url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"subject": {"Hello"},
		"message": {"Anyone there?"},
	})
	if err != nil {
		t.Fatalf("POST /contact: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if strings.Contains(body, "sql") {
		t.Fatal("database details should not leak to the client")
	}
}

func TestIntegration_SecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected X-Frame-Options DENY, got %q", got)
	}
}

func TestIntegration_JSONBodiesOnFormRoutes(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Post(srv.URL+"/register", "application/json",
		strings.NewReader(`{"name": "Json User", "email": "json@example.com", "password": "password123"}`))
	if err != nil {
		t.Fatalf("POST /register: %v", err)
	}
	expectRedirect(t, resp, "/login")

	resp, err = client.Post(srv.URL+"/login", "application/json",
		strings.NewReader(`{"email": "json@example.com", "password": "password123"}`))
	if err != nil {
		t.Fatalf("POST /login: %v", err)
	}
	expectRedirect(t, resp, "/")

	resp, err = client.Get(srv.URL + "/my-account")
	if err != nil {
		t.Fatalf("GET /my-account: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "json@example.com") {
		t.Fatal("JSON login should authenticate the session")
	}

	resp, err = client.Post(srv.URL+"/contact", "application/json",
		strings.NewReader(`{"name": "Json User", "email": "json@example.com", "subject": "Hi", "message": "Hello"}`))
	if err != nil {
		t.Fatalf("POST /contact: %v", err)
	}
	if body := readBody(t, resp); resp.StatusCode != http.StatusOK || body != "Message sent successfully." {
		t.Fatalf("expected acknowledgment, got %d %q", resp.StatusCode, body)
	}
	if n := countRows(t, srv, "contact_form"); n != 1 {
		t.Fatalf("expected 1 contact row, got %d", n)
	}
}

func TestIntegration_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t)
	huge := strings.Repeat("x", 200<<10)

	req := httptest.NewRequest(http.MethodPost, "/add-to-cart",
		strings.NewReader(`{"id": 1, "name": "`+huge+`", "price": 1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Config.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("JSON add-to-cart: expected 413, got %d", w.Code)
	}

	// The oversized item never reached the session.
	cartReq := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, c := range w.Result().Cookies() {
		cartReq.AddCookie(c)
	}
	cartW := httptest.NewRecorder()
	srv.Config.Handler.ServeHTTP(cartW, cartReq)
	if !strings.Contains(cartW.Body.String(), "Your cart is empty") {
		t.Fatal("cart should still be empty")
	}

	form := url.Values{"name": {"Visitor"}, "email": {"v@example.com"}, "subject": {"Big"}, "message": {huge}}
	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	srv.Config.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("form contact: expected 413, got %d", w.Code)
	}
	if n := countRows(t, srv, "contact_form"); n != 0 {
		t.Fatalf("expected no contact rows, got %d", n)
	}
}

func TestIntegration_RemoveFromCartComparesFormIDsAsText(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/add-to-cart", url.Values{"id": {"1"}, "name": {"Alpha"}, "price": {"9.99"}})
	if err != nil {
		t.Fatalf("POST /add-to-cart: %v", err)
	}
	resp.Body.Close()

	resp, err = client.PostForm(srv.URL+"/remove-from-cart", url.Values{"id": {"01"}})
	if err != nil {
		t.Fatalf("POST /remove-from-cart: %v", err)
	}
	expectRedirect(t, resp, "/cart")

	resp, err = client.Get(srv.URL + "/cart")
	if err != nil {
		t.Fatalf("GET /cart: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Alpha") {
		t.Fatal("text id 01 should not remove item 1")
	}

	resp, err = client.PostForm(srv.URL+"/remove-from-cart", url.Values{"id": {"1"}})
	if err != nil {
		t.Fatalf("POST /remove-from-cart: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/cart")
	if err != nil {
		t.Fatalf("GET /cart: %v", err)
	}
	if body := readBody(t, resp); strings.Contains(body, "Alpha") {
		t.Fatal("text id 1 should remove item 1")
	}
}
