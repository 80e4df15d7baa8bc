package domain

// Session — подтверждённая личность покупателя.
// Живёт в подписанном cookie-токене, серверного состояния нет.
type Session struct {
	Subject   string `json:"sub"`
	Email     string `json:"email,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
