package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/example/kawa-b2b/internal/domain"
	"github.com/google/uuid"
)

// handleIntake — точка приёма заказов: структурная проверка позиций,
// остальное (наличие на складе) здесь сознательно не сверяется.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if err := readJSON(r, &o); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	accepted, err := s.Intake.Execute(r.Context(), o)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("wholesale order received: %s (%d items, qty %d)", accepted.OrderID, len(accepted.Items), accepted.TotalQty)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "orderId": accepted.OrderID})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var req struct {
		Customer domain.Customer `json:"customer"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Customer.Email == "" {
		req.Customer.Email = sess.Email
	}

	key := s.cartKey(w, r)
	o, err := s.Checkout.Execute(r.Context(), key, req.Customer)
	if err != nil {
		var fe *domain.FieldsError
		if errors.As(err, &fe) || errors.Is(err, domain.ErrEmptyCart) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// точка приёма отказала или недоступна; корзина цела, можно повторить
		writeError(w, http.StatusBadGateway, "Не удалось отправить заказ: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "orderId": o.OrderID})
}

func (s *Server) handleAccountOrders(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	orders := s.History.Execute(sess.Email)
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "orders": orders})
}

func (s *Server) handleAccountReorder(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := readJSON(r, &req); err != nil || req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	key := s.cartKey(w, r)
	notes, cart, err := s.Reorder.Execute(key, req.OrderID, sess.Email)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if notes == nil {
		notes = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "notes": notes, "cart": reply(cart)})
}

const profileKeyPrefix = "profile.v1:"

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var p domain.Customer
	s.KV.Get(profileKeyPrefix+sess.Subject, &p)
	if p.Email == "" {
		p.Email = sess.Email
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request, sess domain.Session) {
	var p domain.Customer
	if err := readJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	s.KV.Set(profileKeyPrefix+sess.Subject, p)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleWholesaleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	var form map[string]any
	if err := readJSON(r, &form); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Ошибка обработки заявки",
		})
		return
	}
	log.Printf("Заявка от оптовика: %v", form)
	s.KV.Set("apply.v1:"+uuid.NewString(), form)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Заявка успешно отправлена",
	})
}
