package httpapi

import (
	"net/http"

	"github.com/example/kawa-b2b/internal/domain"
	"github.com/google/uuid"
)

// cartKey возвращает идентификатор корзины устройства из cookie,
// выдавая новый при первом обращении. Аналог привязки корзины
// к браузеру через localStorage.
func (s *Server) cartKey(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.CartCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.CartCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) setSessionCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.SessionCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(s.TTLSeconds),
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) session(r *http.Request) (domain.Session, bool) {
	c, err := r.Cookie(s.SessionCookie)
	if err != nil {
		return domain.Session{}, false
	}
	return s.Current.Execute(c.Value)
}

// requireAuth пускает дальше только с живой сессией.
func (s *Server) requireAuth(next func(w http.ResponseWriter, r *http.Request, sess domain.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.session(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Нужна авторизация")
			return
		}
		next(w, r, sess)
	}
}
