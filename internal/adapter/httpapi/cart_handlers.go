package httpapi

import (
	"net/http"

	"github.com/example/kawa-b2b/internal/domain"
)

type cartReply struct {
	Lines  []domain.CartLine `json:"lines"`
	Totals domain.CartTotals `json:"totals"`
}

func reply(c domain.Cart) cartReply {
	lines := c.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartReply{Lines: lines, Totals: c.Totals()}
}

func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	key := s.cartKey(w, r)
	writeJSON(w, http.StatusOK, reply(s.Carts.Get(key)))
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product domain.Product `json:"product"`
		Qty     *int64         `json:"qty"`
	}
	if err := readJSON(r, &req); err != nil || req.Product.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	delta := int64(1)
	if req.Qty != nil {
		delta = *req.Qty
	}
	key := s.cartKey(w, r)
	writeJSON(w, http.StatusOK, reply(s.Carts.Add(key, req.Product, delta)))
}

func (s *Server) handleCartQty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  string `json:"id"`
		Qty int64  `json:"qty"`
	}
	if err := readJSON(r, &req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	key := s.cartKey(w, r)
	writeJSON(w, http.StatusOK, reply(s.Carts.SetQty(key, req.ID, req.Qty)))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := readJSON(r, &req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	key := s.cartKey(w, r)
	writeJSON(w, http.StatusOK, reply(s.Carts.Remove(key, req.ID)))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	key := s.cartKey(w, r)
	writeJSON(w, http.StatusOK, reply(s.Carts.Clear(key)))
}
