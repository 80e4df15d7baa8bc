// Package httpapi — HTTP-поверхность витрины: каталог, корзина,
// демо-вход, оформление и приём заказов, кабинет оптовика.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/example/kawa-b2b/internal/domain"
	"github.com/example/kawa-b2b/internal/usecase"
	"github.com/gorilla/mux"
)

const (
	defaultSessionCookie = "kawa_session"
	defaultCartCookie    = "kawa_cart_id"
)

type Server struct {
	Router *mux.Router

	Products usecase.ListProducts
	Carts    *usecase.CartEngine
	Start    usecase.StartLogin
	Verify   usecase.VerifyCode
	Login    usecase.PasswordLogin
	Current  usecase.CurrentSession
	Checkout usecase.Checkout
	Intake   usecase.ProcessIntake
	History  usecase.OrderHistory
	Reorder  usecase.Reorder

	// профили покупателей и заявки оптовиков живут прямо в KV
	KV domain.KV

	SessionCookie string
	CartCookie    string
	TTLSeconds    int64
	SecureCookies bool
}

func NewServer(s Server) *Server {
	if s.SessionCookie == "" {
		s.SessionCookie = defaultSessionCookie
	}
	if s.CartCookie == "" {
		s.CartCookie = defaultCartCookie
	}
	if s.TTLSeconds <= 0 {
		s.TTLSeconds = 7 * 24 * 3600
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/b2b-products", s.handleProducts).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/api/cart", s.handleCartGet).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/add", s.handleCartAdd).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/qty", s.handleCartQty).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/remove", s.handleCartRemove).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/clear", s.handleCartClear).Methods(http.MethodPost)

	r.HandleFunc("/api/auth/start", s.handleAuthStart).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/verify", s.handleAuthVerify).Methods(http.MethodPost, http.MethodDelete)
	r.HandleFunc("/api/auth/login", s.handleAuthLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", s.handleAuthLogout).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", s.handleAuthMe).Methods(http.MethodGet)

	r.HandleFunc("/api/orders", s.handleIntake).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout", s.requireAuth(s.handleCheckout)).Methods(http.MethodPost)

	r.HandleFunc("/api/account/orders", s.requireAuth(s.handleAccountOrders)).Methods(http.MethodGet)
	r.HandleFunc("/api/account/reorder", s.requireAuth(s.handleAccountReorder)).Methods(http.MethodPost)
	r.HandleFunc("/api/profile", s.requireAuth(s.handleProfileGet)).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", s.requireAuth(s.handleProfilePut)).Methods(http.MethodPut)

	r.HandleFunc("/api/wholesale-apply", s.handleWholesaleApply).Methods(http.MethodGet, http.MethodPost)

	// не тот метод на известном /api-пути; catch-all ниже перехватил бы
	// его раньше, чем сработал бы MethodNotAllowedHandler
	r.PathPrefix("/api/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("web")))

	s.Router = r
	return &s
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"products": s.Products.Execute()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
