package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/example/kawa-b2b/internal/adapter/cache"
	"github.com/example/kawa-b2b/internal/adapter/intake"
	"github.com/example/kawa-b2b/internal/adapter/storage"
	"github.com/example/kawa-b2b/internal/domain"
	"github.com/example/kawa-b2b/internal/usecase"
	"github.com/shopspring/decimal"
)

func stock(n int64) *int64 { return &n }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Кофе зерновой", Price: decimal.NewFromFloat(12.5), Stock: stock(5)},
		{ID: "p2", Title: "Чай листовой", Price: decimal.NewFromFloat(4.2)},
	}
}

// newTestAPI поднимает витрину целиком над памятью; точка приёма
// по умолчанию — её же /api/orders.
func newTestAPI(t *testing.T) (*Server, *httptest.Server, *http.Client) {
	t.Helper()

	kv := storage.NewMemoryKV()
	cat := cache.NewMemoryCatalogCache()
	cat.Replace(testProducts())
	carts := &usecase.CartEngine{KV: kv}
	arch := &storage.KVOrderArchive{KV: kv}
	auth := usecase.AuthConfig{
		Secret:     "test-secret",
		TTLSeconds: 3600,
		DemoCode:   "0000",
		DemoEmail:  "demo@kawa.by",
		DemoPass:   "demo123",
	}

	api := NewServer(Server{
		Products: usecase.ListProducts{Cache: cat},
		Carts:    carts,
		Start:    usecase.StartLogin{Auth: auth},
		Verify:   usecase.VerifyCode{Auth: auth},
		Login:    usecase.PasswordLogin{Auth: auth},
		Current:  usecase.CurrentSession{Auth: auth},
		Intake:   usecase.ProcessIntake{Archive: arch},
		History:  usecase.OrderHistory{Archive: arch},
		Reorder:  usecase.Reorder{Archive: arch, Catalog: cat, Carts: carts},
		KV:       kv,
	})

	srv := httptest.NewServer(api.Router)
	t.Cleanup(srv.Close)

	api.Checkout = usecase.Checkout{
		Carts:  carts,
		Intake: &intake.HTTPClient{URL: srv.URL + "/api/orders"},
		Source: "kawa.by",
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return api, srv, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func getJSON(t *testing.T, client *http.Client, url string) (int, map[string]any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func loginOTP(t *testing.T, client *http.Client, base, email string) {
	t.Helper()
	if code, _ := postJSON(t, client, base+"/api/auth/start", map[string]string{"email": email}); code != http.StatusOK {
		t.Fatalf("auth start: HTTP %d", code)
	}
	if code, body := postJSON(t, client, base+"/api/auth/verify", map[string]string{"email": email, "code": "0000"}); code != http.StatusOK {
		t.Fatalf("auth verify: HTTP %d %v", code, body)
	}
}

func cartTotalQty(body map[string]any) float64 {
	totals, _ := body["totals"].(map[string]any)
	qty, _ := totals["totalQty"].(float64)
	return qty
}

func TestProductsEndpoint(t *testing.T) {
	_, srv, client := newTestAPI(t)

	code, body := getJSON(t, client, srv.URL+"/api/b2b-products")
	if code != http.StatusOK {
		t.Fatalf("HTTP %d", code)
	}
	products, _ := body["products"].([]any)
	if len(products) != 2 {
		t.Fatalf("products = %v", body)
	}
}

func TestCartFlowOverHTTP(t *testing.T) {
	_, srv, client := newTestAPI(t)
	p := testProducts()[0] // stock 5

	// добавление сверх остатка поджимается
	postJSON(t, client, srv.URL+"/api/cart/add", map[string]any{"product": p, "qty": 3})
	code, body := postJSON(t, client, srv.URL+"/api/cart/add", map[string]any{"product": p, "qty": 10})
	if code != http.StatusOK {
		t.Fatalf("HTTP %d", code)
	}
	if got := cartTotalQty(body); got != 5 {
		t.Errorf("qty = %v, want 5", got)
	}

	// корзина привязана к cookie устройства и видна в следующем запросе
	if _, body = getJSON(t, client, srv.URL+"/api/cart"); cartTotalQty(body) != 5 {
		t.Errorf("cart not persisted across requests: %v", body)
	}

	// другой клиент — другая корзина
	jar, _ := cookiejar.New(nil)
	other := &http.Client{Jar: jar}
	if _, body = getJSON(t, other, srv.URL+"/api/cart"); cartTotalQty(body) != 0 {
		t.Errorf("carts leak between devices: %v", body)
	}

	// qty/remove/clear
	_, body = postJSON(t, client, srv.URL+"/api/cart/qty", map[string]any{"id": "p1", "qty": 2})
	if cartTotalQty(body) != 2 {
		t.Errorf("SetQty over HTTP: %v", body)
	}
	_, body = postJSON(t, client, srv.URL+"/api/cart/remove", map[string]any{"id": "p1"})
	if cartTotalQty(body) != 0 {
		t.Errorf("Remove over HTTP: %v", body)
	}
	postJSON(t, client, srv.URL+"/api/cart/add", map[string]any{"product": p})
	_, body = postJSON(t, client, srv.URL+"/api/cart/clear", nil)
	if cartTotalQty(body) != 0 {
		t.Errorf("Clear over HTTP: %v", body)
	}
}

func TestOTPMismatchLeavesGuest(t *testing.T) {
	_, srv, client := newTestAPI(t)

	if code, _ := postJSON(t, client, srv.URL+"/api/auth/start", map[string]string{"email": "a@b.com"}); code != http.StatusOK {
		t.Fatalf("start: HTTP %d", code)
	}
	code, body := postJSON(t, client, srv.URL+"/api/auth/verify", map[string]string{"email": "a@b.com", "code": "9999"})
	if code != http.StatusBadRequest {
		t.Fatalf("verify with wrong code: HTTP %d %v", code, body)
	}

	_, me := getJSON(t, client, srv.URL+"/api/auth/me")
	if auth, _ := me["authenticated"].(bool); auth {
		t.Error("me reports authenticated after a failed challenge")
	}
}

func TestOTPLoginLogout(t *testing.T) {
	_, srv, client := newTestAPI(t)
	loginOTP(t, client, srv.URL, "a@b.com")

	_, me := getJSON(t, client, srv.URL+"/api/auth/me")
	if auth, _ := me["authenticated"].(bool); !auth {
		t.Fatalf("me = %v", me)
	}
	user, _ := me["user"].(map[string]any)
	if user["email"] != "a@b.com" {
		t.Errorf("me user = %v", user)
	}

	postJSON(t, client, srv.URL+"/api/auth/logout", nil)
	_, me = getJSON(t, client, srv.URL+"/api/auth/me")
	if auth, _ := me["authenticated"].(bool); auth {
		t.Error("still authenticated after logout")
	}
}

func TestPasswordLoginEndpoint(t *testing.T) {
	_, srv, client := newTestAPI(t)

	code, _ := postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{"email": "demo@kawa.by", "password": "wrong"})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad password: HTTP %d", code)
	}
	code, body := postJSON(t, client, srv.URL+"/api/auth/login", map[string]string{"email": "demo@kawa.by", "password": "demo123"})
	if code != http.StatusOK {
		t.Fatalf("login: HTTP %d %v", code, body)
	}
}

func TestCheckoutRequiresAuth(t *testing.T) {
	_, srv, client := newTestAPI(t)
	code, _ := postJSON(t, client, srv.URL+"/api/checkout", map[string]any{})
	if code != http.StatusUnauthorized {
		t.Fatalf("HTTP %d, want 401", code)
	}
}

func TestCheckoutClearsCartOnlyOnSuccess(t *testing.T) {
	api, srv, client := newTestAPI(t)
	loginOTP(t, client, srv.URL, "buyer@kawa.by")
	p := testProducts()[0]
	postJSON(t, client, srv.URL+"/api/cart/add", map[string]any{"product": p, "qty": 2})

	customer := map[string]any{"customer": map[string]string{
		"company": "ООО Тест",
		"contact": "Иван",
		"phone":   "+375291112233",
	}}

	// точка приёма лежит: заказ не уходит, корзина цела
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Server error"}`, http.StatusInternalServerError)
	}))
	defer down.Close()
	api.Checkout.Intake = &intake.HTTPClient{URL: down.URL}

	code, _ := postJSON(t, client, srv.URL+"/api/checkout", customer)
	if code != http.StatusBadGateway {
		t.Fatalf("HTTP %d, want 502", code)
	}
	if _, body := getJSON(t, client, srv.URL+"/api/cart"); cartTotalQty(body) != 2 {
		t.Fatalf("cart changed after failed checkout: %v", body)
	}

	// точка приёма ожила: заказ принят, корзина пуста
	api.Checkout.Intake = &intake.HTTPClient{URL: srv.URL + "/api/orders"}
	code, body := postJSON(t, client, srv.URL+"/api/checkout", customer)
	if code != http.StatusOK {
		t.Fatalf("HTTP %d %v", code, body)
	}
	if body["orderId"] == "" || body["orderId"] == nil {
		t.Errorf("no orderId in %v", body)
	}
	if _, cart := getJSON(t, client, srv.URL+"/api/cart"); cartTotalQty(cart) != 0 {
		t.Errorf("cart not cleared after success: %v", cart)
	}

	// заказ виден в истории кабинета
	_, hist := getJSON(t, client, srv.URL+"/api/account/orders")
	orders, _ := hist["orders"].([]any)
	if len(orders) != 1 {
		t.Errorf("history = %v", hist)
	}
}

func TestCheckoutValidationMessage(t *testing.T) {
	_, srv, client := newTestAPI(t)
	loginOTP(t, client, srv.URL, "buyer@kawa.by")
	postJSON(t, client, srv.URL+"/api/cart/add", map[string]any{"product": testProducts()[0], "qty": 1})

	code, body := postJSON(t, client, srv.URL+"/api/checkout", map[string]any{
		"customer": map[string]string{"company": "ООО Тест"},
	})
	if code != http.StatusBadRequest {
		t.Fatalf("HTTP %d %v", code, body)
	}
	msg, _ := body["error"].(string)
	for _, field := range []string{"Контактное лицо", "Телефон"} {
		if !bytes.Contains([]byte(msg), []byte(field)) {
			t.Errorf("error %q misses %q", msg, field)
		}
	}
}

func TestIntakeEndpointValidation(t *testing.T) {
	_, srv, client := newTestAPI(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty items", map[string]any{"customer": map[string]string{}, "items": []any{}}, http.StatusBadRequest},
		{"bad item", map[string]any{"items": []map[string]any{{"id": "", "qty": 1}}}, http.StatusBadRequest},
		{"ok", map[string]any{
			"customer": map[string]string{"email": "x@y.z"},
			"items":    []map[string]any{{"id": "p1", "qty": 2, "price": 12.5}},
			"totalQty": 2,
		}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := postJSON(t, client, srv.URL+"/api/orders", tt.body)
			if code != tt.want {
				t.Errorf("HTTP %d, want %d (%v)", code, tt.want, body)
			}
			if tt.want == http.StatusOK && body["orderId"] == nil {
				t.Errorf("accepted order without id: %v", body)
			}
		})
	}
}

func TestReorderOverHTTP(t *testing.T) {
	_, srv, client := newTestAPI(t)
	loginOTP(t, client, srv.URL, "buyer@kawa.by")

	// прошлый заказ на 10 единиц при текущем остатке 5
	code, body := postJSON(t, client, srv.URL+"/api/orders", map[string]any{
		"customer": map[string]string{"email": "buyer@kawa.by"},
		"items":    []map[string]any{{"id": "p1", "title": "Кофе зерновой", "qty": 10, "price": 12.5}},
	})
	if code != http.StatusOK {
		t.Fatalf("intake: HTTP %d %v", code, body)
	}

	code, body = postJSON(t, client, srv.URL+"/api/account/reorder", map[string]any{"orderId": body["orderId"]})
	if code != http.StatusOK {
		t.Fatalf("reorder: HTTP %d %v", code, body)
	}
	notes, _ := body["notes"].([]any)
	if len(notes) != 1 {
		t.Errorf("notes = %v, want one capping note", notes)
	}
	if _, cart := getJSON(t, client, srv.URL+"/api/cart"); cartTotalQty(cart) != 5 {
		t.Errorf("cart = %v, want qty 5", cart)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	_, srv, client := newTestAPI(t)
	loginOTP(t, client, srv.URL, "buyer@kawa.by")

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/profile",
		bytes.NewReader([]byte(`{"company":"ООО Тест","contact":"Иван","phone":"+375","email":"buyer@kawa.by"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	_, body := getJSON(t, client, srv.URL+"/api/profile")
	if body["company"] != "ООО Тест" {
		t.Errorf("profile = %v", body)
	}
}

func TestWholesaleApply(t *testing.T) {
	_, srv, client := newTestAPI(t)

	if code, _ := getJSON(t, client, srv.URL+"/api/wholesale-apply"); code != http.StatusOK {
		t.Errorf("GET: HTTP %d", code)
	}
	code, body := postJSON(t, client, srv.URL+"/api/wholesale-apply", map[string]string{"company": "ООО Опт"})
	if code != http.StatusOK {
		t.Fatalf("POST: HTTP %d", code)
	}
	if ok, _ := body["success"].(bool); !ok {
		t.Errorf("body = %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, srv, client := newTestAPI(t)
	code, _ := getJSON(t, client, srv.URL+"/api/orders")
	if code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/orders: HTTP %d, want 405", code)
	}
}
